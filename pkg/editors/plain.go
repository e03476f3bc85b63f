package editors

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
)

// Choice is one option of an enumerated plain field.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// PlainView is the display state of a field without a controller widget.
type PlainView struct {
	Name      string   `json:"name"`
	InputType string   `json:"inputType"`
	Value     string   `json:"value"`
	Checked   bool     `json:"checked"`
	Choices   []Choice `json:"choices,omitempty"`
	Required  bool     `json:"required"`
	ReadOnly  bool     `json:"readOnly"`
	Box       Box      `json:"box"`
}

// Plain edits strings, numbers, booleans and enumerations with a single input.
type Plain struct {
	widget string
	field  model.Field
	box    Box
}

func NewPlain(field model.Field, widget string) *Plain {
	p := &Plain{widget: widget, field: field}
	if field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber {
		p.box = boxOf(transcode.BuildInputBox(nil, nil, inputOptions(field), transcode.MaxInt16))
	}
	return p
}

func (e *Plain) Widget() string {
	if e.widget == "" {
		return "input"
	}
	return e.widget
}

func (e *Plain) inputType() string {
	if hinted := strings.TrimSpace(e.field.UIHints["inputType"]); hinted != "" {
		return hinted
	}
	switch {
	case len(e.field.Enum) > 0:
		return "select"
	case e.field.Type == model.FieldTypeBoolean:
		return "checkbox"
	case e.field.Type == model.FieldTypeInteger, e.field.Type == model.FieldTypeNumber:
		return "number"
	default:
		return "text"
	}
}

func (e *Plain) View(path string, value any) any {
	if value == nil {
		value = e.field.Default
	}
	view := PlainView{
		Name:      path,
		InputType: e.inputType(),
		Value:     stringify(value),
		Required:  e.field.Required,
		ReadOnly:  e.field.ReadOnly,
		Box:       e.box,
	}
	if e.field.Type == model.FieldTypeBoolean {
		view.Checked, _ = value.(bool)
	}
	for idx, option := range e.field.Enum {
		key := stringify(option)
		label := key
		if idx < len(e.field.EnumTitles) && e.field.EnumTitles[idx] != "" {
			label = e.field.EnumTitles[idx]
		}
		view.Choices = append(view.Choices, Choice{Value: key, Label: label, Selected: key == view.Value})
	}
	return view
}

// Decode returns a value typed after the field: booleans from checkbox
// state, integers and numbers parsed (0 when malformed), enum members in
// their declared type.
func (e *Plain) Decode(path string, form url.Values) (any, bool) {
	if e.field.Type == model.FieldTypeBoolean {
		return checked(form, path), true
	}
	if !present(form, path) {
		return nil, false
	}
	raw := strings.TrimSpace(form.Get(path))
	for _, option := range e.field.Enum {
		if stringify(option) == raw {
			return option, true
		}
	}
	switch e.field.Type {
	case model.FieldTypeInteger:
		return transcode.Floor(raw), true
	case model.FieldTypeNumber:
		value, _ := transcode.Number(raw)
		return value, true
	default:
		return raw, true
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
