package uischema

import "strings"

// Store holds parsed overlays by form id. It is read-only after LoadFS and
// safe for concurrent use.
type Store struct {
	forms map[string]Overlay
}

// Overlay is the set of overrides for one form.
type Overlay struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig overrides form-level copy.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	UIHints     map[string]string `json:"uiHints" yaml:"uiHints"`
}

// FieldConfig overrides one field. Keys of Overlay.Fields are paths below
// the form root (heatDelay, fan.speed, alarmMask.items).
type FieldConfig struct {
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText    string   `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string   `json:"widget,omitempty" yaml:"widget,omitempty"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	CSSClass    string   `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	ReadOnly    *bool    `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Order       *int     `json:"order,omitempty" yaml:"order,omitempty"`
	EnumTitles  []string `json:"enumTitles,omitempty" yaml:"enumTitles,omitempty"`
	// Options carry controller options (ShowDisableCheckBox, disabledValue,
	// step, impliedDecimalPoints) spelled as in a schema.
	Options      map[string]any    `json:"options,omitempty" yaml:"options,omitempty"`
	UIHints      map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	OriginalPath string            `json:"-" yaml:"-"`
}

// NormalizeFieldPath converts overlay keys into dotted paths below the root.
// Bracketed segments become dots, [] becomes .items and a leading root.
// segment is dropped.
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"[].", ".items.",
		"[]", ".items",
		"[", ".",
		"]", "",
		"/", ".",
	)
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	normalised = strings.Trim(normalised, ".")
	return strings.TrimPrefix(normalised, "root.")
}
