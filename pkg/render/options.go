package render

import "github.com/syms-residuos/backoffice/pkg/model"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form spec.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty keeps the current location.
	Action string
	// Method overrides the default POST. Renderers translate verbs browsers
	// cannot submit (PATCH/PUT/DELETE) into POST plus a hidden _method input.
	Method string
	// Values pre-populates rendered controls keyed by field name.
	Values model.Values
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Hidden fields are emitted verbatim, sorted by name.
	Hidden map[string]string
	// SubmitLabel overrides the spec's submit label.
	SubmitLabel string
}
