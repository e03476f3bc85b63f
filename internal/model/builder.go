package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

// defaultPropertyOrder matches json-editor: unordered properties sort after
// ordered ones.
const defaultPropertyOrder = 1000

// Builder converts normalised forms into form models.
type Builder struct {
	opts Options
}

// New creates a Builder. Zero-valued options fall back to the defaults.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if strings.TrimSpace(options.RootPath) != "" {
		opts.RootPath = strings.TrimSpace(options.RootPath)
	}
	return &Builder{opts: opts}
}

// Build maps form into a FormModel. Controller options land in field
// metadata, bounds in validation rules.
func (b *Builder) Build(form schema.Form) (FormModel, error) {
	if err := validateForm(form); err != nil {
		return FormModel{}, err
	}

	out := FormModel{
		ID:          form.ID,
		Endpoint:    form.Endpoint,
		Method:      strings.ToUpper(form.Method),
		Title:       form.Title,
		Description: form.Description,
	}
	out.Metadata, out.UIHints = ParseExtensions(form.Extensions)

	fields, err := b.fieldsFromObject(b.opts.RootPath, form.Schema)
	if err != nil {
		return FormModel{}, fmt.Errorf("model builder: form %q: %w", form.ID, err)
	}
	out.Fields = fields
	return out, nil
}

func (b *Builder) fieldsFromObject(path string, node schema.Schema) ([]Field, error) {
	required := make(map[string]struct{}, len(node.Required))
	for _, name := range node.Required {
		required[name] = struct{}{}
	}

	fields := make([]Field, 0, len(node.Properties))
	for _, name := range orderedProperties(node.Properties) {
		_, isRequired := required[name]
		field, err := b.fieldFromSchema(name, path+"."+name, node.Properties[name], isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (b *Builder) fieldFromSchema(name, path string, node schema.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Path:        path,
		Type:        fieldType(node),
		Format:      node.Format,
		Required:    required,
		ReadOnly:    node.ReadOnly,
		Label:       node.Title,
		Description: node.Description,
		Default:     node.Default,
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}
	if len(node.Enum) > 0 {
		field.Enum = append([]any(nil), node.Enum...)
		field.EnumTitles = EnumTitles(node.Extensions)
	}
	applyValidations(&field, node)

	field.Metadata, field.UIHints = ParseExtensions(node.Extensions)
	if field.Metadata["readonly"] == "true" || field.Metadata["readOnly"] == "true" {
		field.ReadOnly = true
	}
	if label := field.UIHints["label"]; label != "" {
		field.Label = label
	}

	switch field.Type {
	case FieldTypeObject:
		nested, err := b.fieldsFromObject(path, node)
		if err != nil {
			return Field{}, err
		}
		field.Nested = nested
	default:
		if items := b.itemsField(name, node); items != nil {
			field.Items = items
		}
	}
	return field, nil
}

// itemsField builds the item template of arrays and of integer bit
// registers. Registers may declare members through items.enum or through
// x-formgen.enum without an items schema.
func (b *Builder) itemsField(name string, node schema.Schema) *Field {
	if node.Items != nil {
		item := node.Items
		field := &Field{
			Name:        name + "Item",
			Type:        mapType(item.Type),
			Format:      item.Format,
			Label:       item.Title,
			Description: item.Description,
		}
		if len(item.Enum) > 0 {
			field.Enum = append([]any(nil), item.Enum...)
			field.EnumTitles = EnumTitles(item.Extensions)
		}
		field.Metadata, field.UIHints = ParseExtensions(item.Extensions)
		return field
	}
	if enum := extensionEnum(node.Extensions); len(enum) > 0 {
		return &Field{
			Name:       name + "Item",
			Type:       FieldTypeString,
			Enum:       append([]any(nil), enum...),
			EnumTitles: EnumTitles(node.Extensions),
		}
	}
	return nil
}

func orderedProperties(props map[string]schema.Schema) []string {
	names := make([]string, 0, len(props))
	order := make(map[string]float64, len(props))
	for name, prop := range props {
		names = append(names, name)
		order[name] = propertyOrder(prop)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if order[names[i]] != order[names[j]] {
			return order[names[i]] < order[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func propertyOrder(node schema.Schema) float64 {
	metadata, _ := ParseExtensions(node.Extensions)
	if raw, ok := metadata[MetadataPropertyOrder]; ok {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return value
		}
	}
	return defaultPropertyOrder
}

func fieldType(node schema.Schema) FieldType {
	if node.Type == "" && len(node.Properties) > 0 {
		return FieldTypeObject
	}
	return mapType(node.Type)
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, node schema.Schema) {
	add := func(kind string, bound *float64, exclusive bool) {
		if bound == nil {
			return
		}
		params := map[string]string{"value": strconv.FormatFloat(*bound, 'f', -1, 64)}
		if exclusive {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{Kind: kind, Params: params})
	}
	add(ValidationRuleMin, node.Minimum, node.ExclusiveMinimum)
	add(ValidationRuleMax, node.Maximum, node.ExclusiveMaximum)
}
