package components

import (
	"bytes"
	"fmt"

	rendertemplate "github.com/syms-residuos/backoffice/pkg/render/template"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry with the input and select
// components backed by the embedded templates.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateRenderer(templatePrefix + "input.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateRenderer(templatePrefix + "select.tmpl"),
	})
	return registry
}

func templateRenderer(name string) Renderer {
	return func(buf *bytes.Buffer, control Control, templates rendertemplate.TemplateRenderer) error {
		if templates == nil {
			return fmt.Errorf("components: template renderer not configured for %q", name)
		}
		if _, err := templates.RenderTemplate(name, map[string]any{"control": control}, buf); err != nil {
			return fmt.Errorf("components: render template %q: %w", name, err)
		}
		return nil
	}
}
