package server

import (
	"embed"
	"io/fs"

	"github.com/syms-residuos/backoffice/pkg/render/template"
	"github.com/syms-residuos/backoffice/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates returns the embedded page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewPages builds the page template engine. Templates in dir, when set,
// override the embedded ones.
func NewPages(dir string) (template.TemplateRenderer, error) {
	opts := []gotemplate.Option{
		gotemplate.WithSetName("pages"),
		gotemplate.WithFS(Templates()),
		gotemplate.WithGlobalData(map[string]any{"brand": Brand}),
	}
	if dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(dir))
	}
	return gotemplate.New(opts...)
}
