package schema

import (
	"context"
	"sort"
)

// NormalizeOptions steer how an adapter names and addresses forms.
type NormalizeOptions struct {
	// FormID selects one form from multi-form documents, or names the single
	// form of a JSON Schema document.
	FormID string
	// Endpoint overrides the submission target of the normalised forms.
	Endpoint string
}

// Form is one editable controller parameter set.
type Form struct {
	ID          string
	Method      string
	Endpoint    string
	Title       string
	Description string
	Schema      Schema
	Extensions  map[string]any
}

// Schema is the canonical node consumed by the model builder. Keys the schema
// dialect does not define (json-editor options, controller options, vendor
// extensions) are kept verbatim in Extensions.
type Schema struct {
	Type             string
	Format           string
	Title            string
	Description      string
	Default          any
	Enum             []any
	Required         []string
	Properties       map[string]Schema
	Items            *Schema
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	ReadOnly         bool
	Extensions       map[string]any `json:"Extensions,omitempty"`
}

// SchemaIR is the set of forms extracted from one document.
type SchemaIR struct {
	Forms map[string]Form
}

// FormRef lists an available form without its schema.
type FormRef struct {
	ID    string
	Title string
}

func NewSchemaIR() SchemaIR {
	return SchemaIR{Forms: make(map[string]Form)}
}

// Add stores form under its id, replacing any previous entry.
func (ir *SchemaIR) Add(form Form) {
	if ir.Forms == nil {
		ir.Forms = make(map[string]Form)
	}
	ir.Forms[form.ID] = form
}

// Form looks up a form by id.
func (ir SchemaIR) Form(id string) (Form, bool) {
	form, ok := ir.Forms[id]
	return form, ok
}

// FormRefs returns the forms sorted by id.
func (ir SchemaIR) FormRefs() []FormRef {
	refs := make([]FormRef, 0, len(ir.Forms))
	for id, form := range ir.Forms {
		refs = append(refs, FormRef{ID: id, Title: form.Title})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

// FormatAdapter turns a document of one schema dialect into the IR.
type FormatAdapter interface {
	Name() string
	Detect(src Source, raw []byte) bool
	Load(ctx context.Context, src Source) (Document, error)
	Normalize(ctx context.Context, doc Document, opts NormalizeOptions) (SchemaIR, error)
}
