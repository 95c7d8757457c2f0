package tableform

import (
	"errors"
	"fmt"
	"strings"
)

// Messages are the notification texts a form emits.
type Messages struct {
	// Success is shown when the handler returns true.
	Success string
	// Failure is shown when the handler returns false without a reason.
	Failure string
	// FailureDetail formats a Rejection reason; it must contain one %s verb.
	FailureDetail string
	// Unexpected is shown when the handler errors or panics.
	Unexpected string
}

// DefaultMessages are used for any empty entry of a form's Messages.
var DefaultMessages = Messages{
	Success:       "Guardado correctamente.",
	Failure:       "Hubo un error al guardar.",
	FailureDetail: "Hubo un error al guardar: %s",
	Unexpected:    "Hubo un error al guardar, si el error persiste contacte a soporte.",
}

// EntityMessages builds the messages used by the entity edit pages, e.g.
// EntityMessages("editar", "la empresa", "Empresa editada").
func EntityMessages(verb, subject, done string) Messages {
	return Messages{
		Success:       done + " correctamente.",
		Failure:       fmt.Sprintf("Hubo un error al %s %s.", verb, subject),
		FailureDetail: fmt.Sprintf("Hubo un error al %s %s: %%s", verb, subject),
		Unexpected:    fmt.Sprintf("Hubo un error al %s %s, si el error persiste contacte a soporte.", verb, subject),
	}
}

func (m Messages) withDefaults() Messages {
	if strings.TrimSpace(m.Success) == "" {
		m.Success = DefaultMessages.Success
	}
	if strings.TrimSpace(m.Failure) == "" {
		m.Failure = DefaultMessages.Failure
	}
	if !strings.Contains(m.FailureDetail, "%s") {
		m.FailureDetail = DefaultMessages.FailureDetail
	}
	if strings.TrimSpace(m.Unexpected) == "" {
		m.Unexpected = DefaultMessages.Unexpected
	}
	return m
}

// Rejection is a handled failure: the handler knows why the submission was
// refused and the reason is safe to show.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return "tableform: rejected: " + r.Reason
}

// Reject wraps reason as a Rejection. Return it as (false, Reject(reason)) to
// surface the reason in the failure notification.
func Reject(reason string) error {
	return &Rejection{Reason: strings.TrimSpace(reason)}
}

// ErrNoSubmit is returned by New when no submit handler is supplied.
var ErrNoSubmit = errors.New("tableform: submit handler is required")
