// Package formgen is the convenience entry point: it re-exports the types
// most callers need and wraps the orchestrator for one-shot rendering and
// decoding of SSi controller forms.
package formgen

import (
	"context"
	"io/fs"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-ssi/pkg/orchestrator"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// RenderOptions carries stored values, errors and hidden fields into a
// renderer.
type RenderOptions = render.RenderOptions

// Submission is a decoded form: raw register values plus messages keyed by
// field path.
type Submission = render.Submission

// Request describes where a form comes from and how to render it.
type Request = orchestrator.Request

// NewOrchestrator constructs an orchestrator with the built-in loader,
// adapters and renderers unless overridden.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders formID from source with the vanilla renderer,
// prefilled with values. An empty formID works for single-form documents.
func GenerateHTML(ctx context.Context, source schema.Source, formID string, values map[string]any, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:        source,
		FormID:        formID,
		Renderer:      vanilla.Name,
		RenderOptions: render.RenderOptions{Values: values},
	})
}

// Decode turns a submitted form body back into register values.
func Decode(ctx context.Context, source schema.Source, formID string, form url.Values, options ...orchestrator.Option) (Submission, error) {
	return orchestrator.New(options...).Decode(ctx, orchestrator.DecodeRequest{
		Request: orchestrator.Request{Source: source, FormID: formID},
		Form:    form,
	})
}

// WithThemeSelector wires a go-theme selector into the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks replaces the partials used when a theme omits a key.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the vanilla stylesheet for serving over HTTP.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
