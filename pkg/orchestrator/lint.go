package orchestrator

import (
	"context"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/validation"
)

// Lint resolves the document and adapter named by req and checks every form
// the document holds. Load and adapter errors are returned; schema problems
// are reported in the result.
func (o *Orchestrator) Lint(ctx context.Context, req Request) (validation.SchemaValidationResult, error) {
	adapter, doc, err := o.resolveAdapter(ctx, req)
	if err != nil {
		return validation.SchemaValidationResult{}, err
	}
	result := validation.ValidateSchema(ctx, adapter, doc, validation.SchemaOptions{
		Normalize: schema.NormalizeOptions{FormID: req.FormID, Endpoint: req.Endpoint},
		Builder:   o.builder,
		Widgets:   o.widgets,
	})
	o.logger.WithField("source", doc.Source().String()).
		WithField("issues", len(result.Issues)).
		Debug("schema linted")
	return result, nil
}
