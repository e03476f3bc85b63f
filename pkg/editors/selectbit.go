package editors

import (
	"net/url"
	"strconv"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
	"github.com/goliatone/go-formgen-ssi/pkg/widgets"
)

// BitOption is one checkbox of a bit register.
type BitOption struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// SelectBitView is the display state of a bit register.
type SelectBitView struct {
	Name     string      `json:"name"`
	Options  []BitOption `json:"options"`
	Columns  int         `json:"columns"`
	Raw      int         `json:"raw"`
	ReadOnly bool        `json:"readOnly"`
}

// SelectBit edits a 16-bit register as a set of checkboxes, one per enum
// member, bit i for member i.
type SelectBit struct {
	set      transcode.BitFlagSet
	title    string
	readOnly bool
}

// NewSelectBit reads members from the item enum and its enum titles.
func NewSelectBit(field model.Field) *SelectBit {
	var (
		enum   []any
		titles []string
	)
	if field.Items != nil {
		enum, titles = field.Items.Enum, field.Items.EnumTitles
	}
	return &SelectBit{
		set:      transcode.NewBitFlagSet(enum, titles),
		title:    field.Label,
		readOnly: field.ReadOnly,
	}
}

func (e *SelectBit) Widget() string { return widgets.WidgetSelectBit }

// Set exposes the member list, used by the terminal renderer.
func (e *SelectBit) Set() transcode.BitFlagSet { return e.set }

func (e *SelectBit) View(path string, value any) any {
	raw := int(int16(transcode.Floor(value)))
	selected := make(map[string]struct{})
	for _, key := range e.set.Selected(raw) {
		selected[key] = struct{}{}
	}

	options := make([]BitOption, 0, len(e.set.Members))
	for idx, member := range e.set.Members {
		if idx >= transcode.MaxMembers {
			break
		}
		_, on := selected[member.Key]
		options = append(options, BitOption{
			ID:      path + strconv.Itoa(idx),
			Key:     member.Key,
			Label:   member.Label,
			Checked: on,
		})
	}
	return SelectBitView{
		Name:     path,
		Options:  options,
		Columns:  e.set.Columns(e.title),
		Raw:      raw,
		ReadOnly: e.readOnly,
	}
}

// Decode reads the checked member keys submitted under path. An absent
// input decodes to 0 since browsers omit unchecked checkboxes.
func (e *SelectBit) Decode(path string, form url.Values) (any, bool) {
	return int(e.set.Raw(form[path])), true
}
