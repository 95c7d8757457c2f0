package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/render"
	"github.com/syms-residuos/backoffice/pkg/validation"
)

// Renderer implements render.Renderer for terminal sessions: rendering a form
// means prompting for every field and serializing the collected values.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	errorPrefix  string
	validator    *validation.Validator
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		errorPrefix:  "✗ ",
		validator:    validation.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	case OutputFormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Render prompts for each field, seeded with opts.Values, and serializes the
// answers in the configured format.
func (r *Renderer) Render(ctx context.Context, form model.FormSpec, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts.Values, opts.Errors)
	if err != nil {
		return nil, err
	}
	return r.serialize(form, values)
}

// Collect prompts for every field in declaration order. Inputs are validated
// against the field's rules as they are typed; selects present option labels
// and store the chosen value. Errors from a previous attempt are printed next
// to the field they belong to.
func (r *Renderer) Collect(ctx context.Context, form model.FormSpec, initial model.Values, errs map[string][]string) (model.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values := initial.Clone()
	if values == nil {
		values = make(model.Values, len(form.Fields))
	}

	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, msg := range errs[field.Name] {
			if err := r.driver.Info(ctx, r.errorPrefix+msg); err != nil {
				return nil, err
			}
		}

		rules := form.Schema.RulesFor(field.Name)
		var (
			answer string
			err    error
		)
		switch field.Kind {
		case model.FieldKindSelect:
			answer, err = r.promptSelect(ctx, field, values.Get(field.Name), rules)
		default:
			answer, err = r.promptInput(ctx, field, values.Get(field.Name), rules)
		}
		if err != nil {
			return nil, err
		}
		values[field.Name] = answer
	}
	return values, nil
}

func (r *Renderer) promptInput(ctx context.Context, field model.Field, current string, rules []model.Rule) (string, error) {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message: promptLabel(field),
		Default: current,
		Help:    helpText(field),
		Validator: func(value string) error {
			if msgs := r.validator.Field(rules, value); len(msgs) > 0 {
				return errors.New(msgs[0])
			}
			return nil
		},
	})
	if err != nil {
		return "", fmt.Errorf("tui: field %q: %w", field.Name, err)
	}
	return strings.TrimSpace(answer), nil
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, current string, rules []model.Rule) (string, error) {
	if len(field.Options) == 0 {
		for _, rule := range rules {
			if rule.Kind == model.RuleRequired {
				return "", fmt.Errorf("tui: field %q: %w", field.Name, ErrNoOptions)
			}
		}
		return "", nil
	}

	labels := make([]string, len(field.Options))
	defaultIdx := 0
	for idx, opt := range field.Options {
		labels[idx] = optionLabel(opt)
		if opt.Value == current {
			defaultIdx = idx
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(field),
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         helpText(field),
		PageSize:     10,
	})
	if err != nil {
		return "", fmt.Errorf("tui: field %q: %w", field.Name, err)
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", fmt.Errorf("tui: field %q: selection %d out of range", field.Name, idx)
	}
	return field.Options[idx].Value, nil
}

func (r *Renderer) serialize(form model.FormSpec, values model.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, name := range form.Names() {
			encoded.Set(name, values.Get(name))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			display := values.Get(field.Name)
			if label, ok := field.Options.Label(display); ok {
				display = label
			}
			fmt.Fprintf(&b, "%s: %s\n", labelOrName(field), display)
		}
		return []byte(b.String()), nil
	case OutputFormatYAML:
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range form.Names() {
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values.Get(name)},
			)
		}
		return yaml.Marshal(doc)
	default:
		out := make(map[string]string, len(form.Fields))
		for _, name := range form.Names() {
			out[name] = values.Get(name)
		}
		return json.Marshal(out)
	}
}

func promptLabel(field model.Field) string {
	label := labelOrName(field)
	if field.Placeholder != "" && field.Kind == model.FieldKindInput {
		return fmt.Sprintf("%s (%s)", label, field.Placeholder)
	}
	return label
}

func labelOrName(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.Name
}

func helpText(field model.Field) string {
	return strings.TrimSpace(field.HelpText)
}

func optionLabel(opt model.Option) string {
	if strings.TrimSpace(opt.Label) != "" {
		return opt.Label
	}
	return opt.Value
}
