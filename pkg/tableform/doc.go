// Package tableform turns a model.FormSpec into a working entry form: it
// renders the fields through a render.Renderer, validates submissions against
// the spec's schema and only then hands the values to a caller supplied
// SubmitFunc. Every submission produces a typed Result carrying the outcome,
// the per-field messages and a one-shot Notification; deciding how to present
// it (toast, inline errors, redirect) is left to the caller.
//
// EditForm specialises Form for existing records, converting record fields to
// form values through FieldAdapters and back again on submit.
package tableform
