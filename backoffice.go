// Package backoffice is the entry point for embedding the residuos entry
// forms: it exposes the bundled form definitions and templates and builds a
// ready orchestrator over them.
package backoffice

import (
	"io/fs"

	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
	"github.com/syms-residuos/backoffice/pkg/render"
	"github.com/syms-residuos/backoffice/pkg/renderers/vanilla"
)

// Form ids of the bundled definitions.
const (
	FormEmpresa       = forms.Empresa
	FormTransportista = forms.Transportista
)

// RenderOptions aliases render.RenderOptions for callers rendering forms
// directly.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedForms exposes the bundled form definitions.
func EmbeddedForms() fs.FS {
	return forms.Embedded()
}

// LoadForms parses the bundled definitions, overlaid with those in dir when
// dir is set.
func LoadForms(dir string) (*formspec.Store, error) {
	return forms.Load(dir)
}

// NewOrchestrator builds an orchestrator over the bundled definitions. The
// options are applied after the defaults, so WithForms replaces them.
func NewOrchestrator(sources formspec.Sources, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	specs, err := forms.Load("")
	if err != nil {
		return nil, err
	}
	base := []orchestrator.Option{
		orchestrator.WithForms(specs),
		orchestrator.WithSources(sources),
	}
	return orchestrator.New(append(base, options...)...), nil
}
