package tableform

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/render"
	"github.com/syms-residuos/backoffice/pkg/validation"
)

// SubmitFunc persists validated values. It returns true on success and false
// for a reported failure; wrap a displayable reason with Reject. Any other
// error is treated as unexpected.
type SubmitFunc func(ctx context.Context, values model.Values) (bool, error)

// Observer is notified after every submission.
type Observer func(formID string, result Result)

// Option configures a Form.
type Option func(*Form)

// WithInitialValues seeds the values shown on first render.
func WithInitialValues(values model.Values) Option {
	return func(f *Form) {
		f.initial = values.Clone()
	}
}

// WithRenderer sets the renderer used by Render.
func WithRenderer(renderer render.Renderer) Option {
	return func(f *Form) {
		if renderer != nil {
			f.renderer = renderer
		}
	}
}

// WithValidator replaces the shared validator.
func WithValidator(v *validation.Validator) Option {
	return func(f *Form) {
		if v != nil {
			f.validator = v
		}
	}
}

// WithLogger sets the logger used for unexpected submission failures.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMessages overrides notification texts; empty entries keep defaults.
func WithMessages(messages Messages) Option {
	return func(f *Form) {
		f.messages = messages.withDefaults()
	}
}

// WithAction sets the URL and HTTP method the rendered form submits to.
func WithAction(action, method string) Option {
	return func(f *Form) {
		f.action = action
		f.method = method
	}
}

// WithHiddenFields adds hidden inputs to every render.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(f *Form) {
		f.hidden = render.MergeHiddenFields(f.hidden, fields...)
	}
}

// WithObserver registers a callback run after every submission.
func WithObserver(observer Observer) Option {
	return func(f *Form) {
		if observer != nil {
			f.observers = append(f.observers, observer)
		}
	}
}

// Form is a validated, renderable entry form for one spec. A Form holds no
// per-request state and is safe for concurrent use.
type Form struct {
	spec      model.FormSpec
	onSubmit  SubmitFunc
	initial   model.Values
	renderer  render.Renderer
	validator *validation.Validator
	logger    *zap.Logger
	messages  Messages
	action    string
	method    string
	hidden    map[string]string
	observers []Observer
}

// New builds a Form. The spec must pass model.FormSpec.Check.
func New(spec model.FormSpec, onSubmit SubmitFunc, opts ...Option) (*Form, error) {
	if onSubmit == nil {
		return nil, ErrNoSubmit
	}
	if err := spec.Check(); err != nil {
		return nil, fmt.Errorf("tableform: %w", err)
	}

	f := &Form{
		spec:      spec,
		onSubmit:  onSubmit,
		validator: validation.New(),
		logger:    zap.NewNop(),
		messages:  DefaultMessages,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Spec returns the form's spec.
func (f *Form) Spec() model.FormSpec {
	return f.spec
}

// InitialValues returns a copy of the values shown on first render.
func (f *Form) InitialValues() model.Values {
	return f.initial.Clone()
}

// Validate checks values against the spec's schema without submitting.
// Values are trimmed first, as Submit does.
func (f *Form) Validate(values model.Values) validation.Errors {
	return f.validator.Validate(f.spec.Schema, values.Trimmed())
}

// Submit trims surrounding whitespace, validates the trimmed values and, when
// every rule passes, calls the submit handler exactly once with them. Submit
// never panics and never returns an error: all outcomes are reported through
// the Result.
func (f *Form) Submit(ctx context.Context, values model.Values) Result {
	result := f.submit(ctx, values)
	for _, observe := range f.observers {
		observe(f.spec.ID, result)
	}
	return result
}

func (f *Form) submit(ctx context.Context, values model.Values) Result {
	values = values.Trimmed()
	result := Result{Values: values.Clone()}

	if errs := f.Validate(values); !errs.Empty() {
		result.Status = StatusInvalid
		result.FieldErrors = errs
		return result
	}

	ok, err := f.call(ctx, values.Clone())
	var rejection *Rejection
	switch {
	case err == nil && ok:
		result.Status = StatusSucceeded
		result.Notification = &Notification{Level: LevelSuccess, Message: f.messages.Success}
	case err == nil:
		result.Status = StatusFailed
		result.Notification = &Notification{Level: LevelError, Message: f.messages.Failure}
	case errors.As(err, &rejection):
		result.Status = StatusFailed
		result.Err = err
		message := f.messages.Failure
		if rejection.Reason != "" {
			message = fmt.Sprintf(f.messages.FailureDetail, rejection.Reason)
		}
		result.Notification = &Notification{Level: LevelError, Message: message}
	default:
		f.logger.Error("form submission failed",
			zap.String("form", f.spec.ID),
			zap.Error(err),
		)
		result.Status = StatusFailed
		result.Err = err
		result.Notification = &Notification{Level: LevelError, Message: f.messages.Unexpected}
	}
	return result
}

func (f *Form) call(ctx context.Context, values model.Values) (ok bool, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			ok = false
			err = fmt.Errorf("tableform: submit handler panicked: %v", recovered)
		}
	}()
	return f.onSubmit(ctx, values)
}

// Render renders the form. A zero State renders the initial values.
func (f *Form) Render(ctx context.Context, state State) ([]byte, error) {
	if f.renderer == nil {
		return nil, errors.New("tableform: renderer is not configured")
	}
	values := state.Values
	if values == nil {
		values = f.initial
	}
	return f.renderer.Render(ctx, f.spec, render.RenderOptions{
		Action:     f.action,
		Method:     f.method,
		Values:     values,
		Errors:     state.Errors,
		FormErrors: state.FormErrors,
		Hidden:     f.hidden,
	})
}

// ContentType reports the renderer's content type.
func (f *Form) ContentType() string {
	if f.renderer == nil {
		return ""
	}
	return f.renderer.ContentType()
}

// ValuesFromForm extracts the spec's fields from decoded request values.
// Undeclared keys are dropped; missing fields are absent from the map.
func ValuesFromForm(spec model.FormSpec, form url.Values) model.Values {
	values := make(model.Values, len(spec.Fields))
	for _, name := range spec.Names() {
		if raw, ok := form[name]; ok && len(raw) > 0 {
			values[name] = raw[0]
		}
	}
	return values
}
