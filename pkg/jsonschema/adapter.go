package jsonschema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// DefaultAdapterName is the registry key of the JSON Schema adapter.
const DefaultAdapterName = "jsonschema"

const defaultFormMethod = "POST"

var supportedDialects = []string{
	"json-schema.org/draft-04/schema",
	"json-schema.org/draft-06/schema",
	"json-schema.org/draft-07/schema",
	"json-schema.org/draft/2019-09/schema",
	"json-schema.org/draft/2020-12/schema",
}

// Adapter normalises json-editor style JSON Schema documents. Each document
// yields a single form.
type Adapter struct {
	loader      schema.Loader
	maxRefDepth int
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithMaxRefDepth overrides DefaultMaxRefDepth.
func WithMaxRefDepth(depth int) AdapterOption {
	return func(a *Adapter) {
		if depth > 0 {
			a.maxRefDepth = depth
		}
	}
}

// NewAdapter returns an adapter reading documents through loader.
func NewAdapter(loader schema.Loader, options ...AdapterOption) *Adapter {
	a := &Adapter{loader: loader, maxRefDepth: DefaultMaxRefDepth}
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

// Detect reports whether raw looks like a JSON Schema object rather than an
// OpenAPI document.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err != nil || payload == nil {
		return false
	}
	if _, ok := payload["openapi"]; ok {
		return false
	}
	if _, ok := payload["swagger"]; ok {
		return false
	}
	for _, key := range []string{"$schema", "$id", "type", "properties", "items", "definitions", "$defs"} {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}

func (a *Adapter) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if a == nil || a.loader == nil {
		return schema.Document{}, errors.New("jsonschema adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Normalize resolves local references and converts the root schema into a
// form. The form id comes from opts.FormID, then $id, then the title.
func (a *Adapter) Normalize(ctx context.Context, doc schema.Document, opts schema.NormalizeOptions) (schema.SchemaIR, error) {
	if err := ctx.Err(); err != nil {
		return schema.SchemaIR{}, err
	}
	payload, err := parseJSONSchema(doc.Raw())
	if err != nil {
		return schema.SchemaIR{}, err
	}
	if err := validateDialect(payload); err != nil {
		return schema.SchemaIR{}, err
	}

	resolver := &refResolver{root: payload, maxDepth: a.maxRefDepth}
	resolved, err := resolver.resolve(payload, "#", nil)
	if err != nil {
		return schema.SchemaIR{}, err
	}
	root, err := schemaFromNode(resolved, "#")
	if err != nil {
		return schema.SchemaIR{}, err
	}
	if root.Type != "" && root.Type != "object" {
		return schema.SchemaIR{}, fmt.Errorf("jsonschema: root schema must be an object, got %q", root.Type)
	}

	id := formID(payload, root, opts.FormID)
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = "/forms/" + id
	}

	ir := schema.NewSchemaIR()
	ir.Add(schema.Form{
		ID:          id,
		Method:      defaultFormMethod,
		Endpoint:    endpoint,
		Title:       root.Title,
		Description: root.Description,
		Schema:      root,
		Extensions:  root.Extensions,
	})
	return ir, nil
}

func parseJSONSchema(raw []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, schema.ErrEmptyDocument
	}
	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("jsonschema: parse schema: %w", err)
	}
	if payload == nil {
		return nil, errors.New("jsonschema: schema is null")
	}
	return payload, nil
}

// validateDialect accepts documents without $schema.
func validateDialect(payload map[string]any) error {
	value := strings.TrimSpace(readString(payload, "$schema"))
	if value == "" {
		return nil
	}
	normalised := strings.TrimSuffix(value, "#")
	normalised = strings.TrimPrefix(strings.TrimPrefix(normalised, "https://"), "http://")
	for _, dialect := range supportedDialects {
		if normalised == dialect {
			return nil
		}
	}
	return fmt.Errorf("jsonschema: unsupported $schema %q", value)
}

func formID(payload map[string]any, root schema.Schema, requested string) string {
	if id := strings.TrimSpace(requested); id != "" {
		return id
	}
	for _, key := range []string{"$id", "id"} {
		if raw := strings.TrimSpace(readString(payload, key)); raw != "" {
			base := path.Base(strings.TrimSuffix(raw, "#"))
			if slug := slugify(strings.TrimSuffix(base, path.Ext(base))); slug != "" {
				return slug
			}
		}
	}
	if slug := slugify(root.Title); slug != "" {
		return slug
	}
	return "root"
}

func slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
