package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/render"
	"github.com/syms-residuos/backoffice/pkg/renderers/vanilla"
	"github.com/syms-residuos/backoffice/pkg/tableform"
	"github.com/syms-residuos/backoffice/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithForms sets the store form ids are resolved against.
func WithForms(store *formspec.Store) Option {
	return func(o *Orchestrator) {
		o.forms = store
	}
}

// WithSources registers the option loaders used to populate catalog selects.
func WithSources(sources formspec.Sources) Option {
	return func(o *Orchestrator) {
		o.sources = sources
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run after options are bound and
// before rendering. The widget registry is always applied first.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithFormOptions adds tableform options applied to every form built, ahead of
// per-request options.
func WithFormOptions(opts ...tableform.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, opts...)
	}
}

// Orchestrator builds ready-to-use forms from form ids. It is safe for
// concurrent use once constructed.
type Orchestrator struct {
	forms           *formspec.Store
	sources         formspec.Sources
	registry        *render.Registry
	defaultRenderer string
	widgets         *widgets.Registry
	decorators      []model.Decorator
	formOptions     []tableform.Option
	initialiseErr   error
}

// New constructs an Orchestrator. Without WithRegistry a registry holding the
// vanilla renderer is created.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		widgets:         widgets.NewRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form to build.
type Request struct {
	// FormID selects the definition in the form store.
	FormID string

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// Submit handles validated submissions.
	Submit tableform.SubmitFunc

	// Record pre-fills an edit form. Ignored by Form.
	Record model.Record

	// Adapters convert record fields for edit forms.
	Adapters []tableform.FieldAdapter

	// Options are appended after the orchestrator-wide form options.
	Options []tableform.Option
}

// Definition returns the stored spec for formID without binding sources or
// running decorators.
func (o *Orchestrator) Definition(formID string) (model.FormSpec, bool) {
	return o.forms.Form(formID)
}

// FormIDs lists the known form ids.
func (o *Orchestrator) FormIDs() []string {
	return o.forms.IDs()
}

// Spec resolves formID, binds catalog options and applies decorators. The
// returned spec is a copy; the store is never mutated.
func (o *Orchestrator) Spec(ctx context.Context, formID string) (model.FormSpec, error) {
	if err := o.initialiseErr; err != nil {
		return model.FormSpec{}, err
	}
	if formID == "" {
		return model.FormSpec{}, errors.New("orchestrator: form id is required")
	}
	spec, ok := o.forms.Form(formID)
	if !ok {
		return model.FormSpec{}, fmt.Errorf("orchestrator: form %q not found", formID)
	}

	bound, err := formspec.Bind(ctx, spec, o.sources)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("orchestrator: %w", err)
	}
	if err := o.applyDecorators(&bound); err != nil {
		return model.FormSpec{}, err
	}
	return bound, nil
}

// Form builds an empty entry form.
func (o *Orchestrator) Form(ctx context.Context, req Request) (*tableform.Form, error) {
	spec, opts, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	form, err := tableform.New(spec, req.Submit, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return form, nil
}

// Edit builds a form pre-filled from req.Record.
func (o *Orchestrator) Edit(ctx context.Context, req Request) (*tableform.EditForm, error) {
	if req.Record == nil {
		return nil, errors.New("orchestrator: edit form requires a record")
	}
	spec, opts, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	form, err := tableform.NewEdit(spec, req.Record, req.Submit, req.Adapters, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build edit form: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (model.FormSpec, []tableform.Option, error) {
	if ctx == nil {
		return model.FormSpec{}, nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormSpec{}, nil, err
	}
	spec, err := o.Spec(ctx, req.FormID)
	if err != nil {
		return model.FormSpec{}, nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return model.FormSpec{}, nil, err
	}

	opts := make([]tableform.Option, 0, len(o.formOptions)+len(req.Options)+1)
	opts = append(opts, tableform.WithRenderer(renderer))
	opts = append(opts, o.formOptions...)
	opts = append(opts, req.Options...)
	return spec, opts, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	renderer, err = o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no usable renderer: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormSpec) error {
	if err := o.widgets.Decorate(form); err != nil {
		return fmt.Errorf("orchestrator: resolve widgets: %w", err)
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.forms == nil {
		o.forms = &formspec.Store{}
	}
	if o.registry == nil {
		renderer, err := vanilla.New(vanilla.WithWidgetRegistry(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
