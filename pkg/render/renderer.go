package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/field"
)

// Renderer converts a field set into a byte representation (HTML, terminal
// transcript, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, set field.Set, options RenderOptions) ([]byte, error)
}
