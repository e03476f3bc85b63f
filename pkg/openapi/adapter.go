package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// DefaultAdapterName is the registry key of the OpenAPI adapter.
const DefaultAdapterName = "openapi"

// ErrNoForms is returned when no operation declares a request body.
var ErrNoForms = errors.New("openapi: document has no operations with a request body")

var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Adapter parses OpenAPI documents with kin-openapi.
type Adapter struct {
	loader       schema.Loader
	externalRefs bool
	validate     bool
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithExternalRefs lets kin-openapi follow references to other documents.
func WithExternalRefs(enabled bool) AdapterOption {
	return func(a *Adapter) {
		a.externalRefs = enabled
	}
}

// WithValidation validates the document before extracting forms.
func WithValidation(enabled bool) AdapterOption {
	return func(a *Adapter) {
		a.validate = enabled
	}
}

func NewAdapter(loader schema.Loader, options ...AdapterOption) *Adapter {
	a := &Adapter{loader: loader}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect accepts JSON with an openapi/swagger key and YAML mentioning either.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return false
		}
		_, isOpenAPI := payload["openapi"]
		_, isSwagger := payload["swagger"]
		return isOpenAPI || isSwagger
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

func (a *Adapter) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if a == nil || a.loader == nil {
		return schema.Document{}, errors.New("openapi adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Normalize extracts one form per operation request body. opts.FormID keeps a
// single operation; opts.Endpoint replaces the operation path.
func (a *Adapter) Normalize(ctx context.Context, doc schema.Document, opts schema.NormalizeOptions) (schema.SchemaIR, error) {
	kin := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: a.externalRefs}
	spec, err := kin.LoadFromData(doc.Raw())
	if err != nil {
		return schema.SchemaIR{}, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}
	if a.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return schema.SchemaIR{}, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	ir := schema.NewSchemaIR()
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				form, ok := formFromOperation(strings.ToUpper(method), path, op)
				if !ok {
					continue
				}
				ir.Add(form)
			}
		}
	}
	if len(ir.Forms) == 0 {
		return schema.SchemaIR{}, ErrNoForms
	}

	if id := strings.TrimSpace(opts.FormID); id != "" {
		form, ok := ir.Form(id)
		if !ok {
			return schema.SchemaIR{}, fmt.Errorf("openapi: form %q not found", id)
		}
		ir = schema.NewSchemaIR()
		ir.Add(form)
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		for id, form := range ir.Forms {
			form.Endpoint = endpoint
			ir.Forms[id] = form
		}
	}
	return ir, nil
}

func formFromOperation(method, path string, op *openapi3.Operation) (schema.Form, bool) {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return schema.Form{}, false
	}
	body := requestSchema(op.RequestBody.Value.Content)
	if body == nil {
		return schema.Form{}, false
	}

	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	converted := convertSchema(body)
	title := strings.TrimSpace(op.Summary)
	if title == "" {
		title = converted.Title
	}
	return schema.Form{
		ID:          id,
		Method:      method,
		Endpoint:    path,
		Title:       title,
		Description: op.Description,
		Schema:      converted,
		Extensions:  cloneExtensions(op.Extensions),
	}, true
}

func requestSchema(content openapi3.Content) *openapi3.SchemaRef {
	for _, mediaType := range preferredMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	for _, mt := range content {
		if mt != nil {
			return mt.Schema
		}
	}
	return nil
}

func convertSchema(ref *openapi3.SchemaRef) schema.Schema {
	if ref == nil || ref.Value == nil {
		return schema.Schema{}
	}
	src := ref.Value
	out := schema.Schema{
		Type:             schemaType(src.Type),
		Format:           src.Format,
		Title:            src.Title,
		Description:      src.Description,
		Default:          src.Default,
		ReadOnly:         src.ReadOnly,
		ExclusiveMinimum: src.ExclusiveMin,
		ExclusiveMaximum: src.ExclusiveMax,
		Extensions:       cloneExtensions(src.Extensions),
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if src.Min != nil {
		value := *src.Min
		out.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		out.Maximum = &value
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]schema.Schema, len(src.Properties))
		for name, property := range src.Properties {
			out.Properties[name] = convertSchema(property)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items)
		out.Items = &items
	}
	return out
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func cloneExtensions(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
