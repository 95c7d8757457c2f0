package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/render"
	rendertemplate "github.com/syms-residuos/backoffice/pkg/render/template"
	"github.com/syms-residuos/backoffice/pkg/render/template/gotemplate"
	"github.com/syms-residuos/backoffice/pkg/renderers/vanilla/components"
	"github.com/syms-residuos/backoffice/pkg/widgets"
)

const defaultSubmitLabel = "Guardar"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
}

// WithTemplatesFS layers an alternate template bundle over the embedded one.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads override templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default input/select components.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgetRegistry replaces the registry used to pick input types.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// Renderer emits server-rendered HTML forms.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	widgets    *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithExtension(".tmpl")}
		if cfg.templateFS != nil {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templateFS))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(TemplatesFS()))
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	return &Renderer{templates: templates, components: cfg.components, widgets: cfg.widgets}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type formView struct {
	ID          string               `json:"id"`
	Method      string               `json:"method"`
	Action      string               `json:"action,omitempty"`
	Hidden      []render.HiddenField `json:"hidden,omitempty"`
	FormErrors  []string             `json:"formErrors,omitempty"`
	Fields      []fieldView          `json:"fields"`
	SubmitLabel string               `json:"submitLabel"`
}

type fieldView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Control  string   `json:"control"`
	Help     string   `json:"help,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Render produces the form markup. Field values and errors come from options;
// the spec itself is not modified.
func (r *Renderer) Render(_ context.Context, form model.FormSpec, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := r.widgets.Decorate(&form); err != nil {
		return nil, fmt.Errorf("vanilla renderer: decorate: %w", err)
	}

	method, override := render.FormMethod(options.Method)
	hidden := options.Hidden
	if override != nil {
		hidden = render.MergeHiddenFields(hidden, *override)
	}

	view := formView{
		ID:          formID(form.ID),
		Method:      method,
		Action:      options.Action,
		Hidden:      render.SortedHiddenFields(hidden),
		FormErrors:  render.MergeFormErrors(options.FormErrors),
		SubmitLabel: firstNonEmpty(options.SubmitLabel, form.SubmitLabel, defaultSubmitLabel),
	}

	for _, field := range form.Fields {
		fv, err := r.renderField(form, field, options)
		if err != nil {
			return nil, err
		}
		view.Fields = append(view.Fields, fv)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{"form": view})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(form model.FormSpec, field model.Field, options render.RenderOptions) (fieldView, error) {
	id := controlID(form.ID, field.Name)
	errs := render.MergeFormErrors(options.Errors[field.Name])
	help := sanitizeHelp(field.HelpText)

	var describedBy []string
	if help != "" {
		describedBy = append(describedBy, id+"-help")
	}
	if len(errs) > 0 {
		describedBy = append(describedBy, id+"-error")
	}

	value := options.Values.Get(field.Name)
	control := components.Control{
		ID:          id,
		Name:        field.Name,
		Label:       field.Label,
		Type:        field.Metadata[widgets.MetadataKey],
		Value:       value,
		Placeholder: field.Placeholder,
		Required:    form.Schema.IsRequired(field.Name),
		Invalid:     len(errs) > 0,
		DescribedBy: strings.Join(describedBy, " "),
	}

	componentName := components.NameInput
	if field.Kind == model.FieldKindSelect {
		componentName = components.NameSelect
		for _, opt := range field.Options {
			control.Options = append(control.Options, components.ControlOption{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == value,
			})
		}
	}

	descriptor, ok := r.components.Descriptor(componentName)
	if !ok {
		return fieldView{}, fmt.Errorf("vanilla renderer: component %q not registered for field %q", componentName, field.Name)
	}
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, control, r.templates); err != nil {
		return fieldView{}, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
	}

	return fieldView{
		ID:       id,
		Name:     field.Name,
		Label:    field.Label,
		Required: control.Required,
		Control:  strings.TrimSpace(buf.String()),
		Help:     help,
		Errors:   errs,
	}, nil
}

func formID(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return "entry-form"
	}
	return id + "-form"
}

func controlID(formID, name string) string {
	if formID = strings.TrimSpace(formID); formID == "" {
		return "fld-" + name
	}
	return formID + "-" + name
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
