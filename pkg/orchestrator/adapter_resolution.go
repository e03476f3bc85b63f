package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// resolveAdapter honours an explicit format, otherwise sniffs the payload.
// Zero matches fall back to the default adapter; several matches are an
// error since the caller has to pick.
func (o *Orchestrator) resolveAdapter(ctx context.Context, req Request) (schema.FormatAdapter, schema.Document, error) {
	if format := strings.TrimSpace(req.Format); format != "" {
		adapter, err := o.adapters.Get(format)
		if err != nil {
			return nil, schema.Document{}, err
		}
		doc, err := o.resolveDocument(ctx, req)
		return adapter, doc, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, schema.Document{}, err
	}

	matches := o.adapters.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		if o.defaultAdapter == "" {
			return nil, schema.Document{}, errors.New("orchestrator: unable to detect format")
		}
		adapter, err := o.adapters.Get(o.defaultAdapter)
		return adapter, doc, err
	case 1:
		return matches[0], doc, nil
	default:
		return nil, schema.Document{}, fmt.Errorf("orchestrator: multiple adapters matched payload (%s), specify format", formatAdapterNames(matches))
	}
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source.IsZero() {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// selectForm picks the requested form, or the only one when no id is given.
func selectForm(ir schema.SchemaIR, id string) (schema.Form, error) {
	if id = strings.TrimSpace(id); id != "" {
		form, ok := ir.Form(id)
		if !ok {
			return schema.Form{}, fmt.Errorf("%w: %q (available: %s)", ErrFormNotFound, id, formatFormRefs(ir.FormRefs()))
		}
		return form, nil
	}
	refs := ir.FormRefs()
	if len(refs) != 1 {
		return schema.Form{}, fmt.Errorf("orchestrator: document holds %d forms (%s), specify one", len(refs), formatFormRefs(refs))
	}
	form, _ := ir.Form(refs[0].ID)
	return form, nil
}

func formatFormRefs(refs []schema.FormRef) string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func formatAdapterNames(adapters []schema.FormatAdapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		if name := strings.TrimSpace(adapter.Name()); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
