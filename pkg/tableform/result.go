package tableform

import (
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/validation"
)

// Status is the outcome of a submission.
type Status string

const (
	// StatusInvalid means a rule failed; the submit handler was not called.
	StatusInvalid Status = "invalid"
	// StatusSucceeded means the handler reported success.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the handler reported failure, returned an error or
	// panicked.
	StatusFailed Status = "failed"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message meant to be shown once.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Result reports what happened to one submission.
type Result struct {
	Status       Status            `json:"status"`
	Values       model.Values      `json:"values"`
	FieldErrors  validation.Errors `json:"fieldErrors,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	// Err is the handler error behind a failed submission, kept for logging.
	Err error `json:"-"`
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSucceeded
}

// State returns the render state that redisplays the submitted values with
// their errors.
func (r Result) State() State {
	return State{Values: r.Values, Errors: r.FieldErrors}
}

// State is the per-request data a form is rendered with.
type State struct {
	Values     model.Values
	Errors     map[string][]string
	FormErrors []string
}
