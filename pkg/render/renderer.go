package render

import (
	"context"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
)

// Renderer turns a decorated FormModel into bytes (HTML, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
