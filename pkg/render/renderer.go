package render

import (
	"context"

	"github.com/syms-residuos/backoffice/pkg/model"
)

// Renderer converts a FormSpec into a byte representation (HTML, terminal
// transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormSpec, options RenderOptions) ([]byte, error)
}
