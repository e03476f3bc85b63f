package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMin = "min"
	ValidationRuleMax = "max"
)

// Canonical metadata keys for controller options. Schemas may spell them in
// any case (ShowDisableCheckBox, showdisablecheckbox, x-formgen-step, ...);
// the builder folds every spelling onto these keys.
const (
	MetadataShowDisableCheckBox  = "showDisableCheckBox"
	MetadataDisabledValue        = "disabledValue"
	MetadataStep                 = "step"
	MetadataImpliedDecimalPoints = "impliedDecimalPoints"
	MetadataPropertyOrder        = "propertyOrder"
)

// ValidationRule is a single constraint. Numeric bounds keep their threshold
// in Params["value"]; exclusive bounds add Params["exclusive"] = "true".
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models one input of a controller form. Path is the dotted address
// used for input names and validation issues (root.heatDelay).
type Field struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	ReadOnly    bool              `json:"readOnly,omitempty"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	EnumTitles  []string          `json:"enumTitles,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level structure renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// Walk visits every field depth first, nested fields after their parent.
func (m FormModel) Walk(fn func(*Field)) {
	var visit func(fields []Field)
	visit = func(fields []Field) {
		for idx := range fields {
			fn(&fields[idx])
			visit(fields[idx].Nested)
		}
	}
	visit(m.Fields)
}

// Lookup finds a field by path.
func (m FormModel) Lookup(path string) (*Field, bool) {
	var found *Field
	m.Walk(func(field *Field) {
		if found == nil && field.Path == path {
			found = field
		}
	})
	return found, found != nil
}
