package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers and page handlers rely on.
// Named templates resolve against the engine's loaders; data is converted to
// a template context by the implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
