package editors

import (
	"net/url"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
	"github.com/goliatone/go-formgen-ssi/pkg/widgets"
)

// SetPointView is the display state of a scaled set point.
type SetPointView struct {
	Name         string `json:"name"`
	DisabledName string `json:"disabledName"`
	DisabledID   string `json:"disabledId"`
	Text         string `json:"text"`
	Raw          int    `json:"raw"`
	Hidden       bool   `json:"hidden"`
	ShowDisable  bool   `json:"showDisable"`
	ReadOnly     bool   `json:"readOnly"`
	Box          Box    `json:"box"`
}

// SetPoint edits a register holding a decimal scaled by 10^impliedDecimalPoints.
type SetPoint struct {
	codec    transcode.SetPointCodec
	box      Box
	readOnly bool
	ids      IDFunc
}

func NewSetPoint(field model.Field, ids IDFunc) *SetPoint {
	return &SetPoint{
		codec: transcode.SetPointCodec{
			Disable:              disableConfig(field),
			ImpliedDecimalPoints: impliedDecimalPoints(field),
		},
		box:      boxOf(transcode.BuildInputBox(nil, nil, inputOptions(field), transcode.MaxInt16)),
		readOnly: field.ReadOnly,
		ids:      ids,
	}
}

func (e *SetPoint) Widget() string { return widgets.WidgetSetPoint }

// Codec exposes the transcoder, used by the terminal renderer.
func (e *SetPoint) Codec() transcode.SetPointCodec { return e.codec }

func (e *SetPoint) View(path string, value any) any {
	raw, _ := transcode.Number(value)
	result := e.codec.Display(raw)
	return SetPointView{
		Name:         path,
		DisabledName: path + SuffixDisabled,
		DisabledID:   e.ids(path),
		Text:         result.Text,
		Raw:          result.Raw,
		Hidden:       result.Hidden,
		ShowDisable:  e.codec.Disable.Enabled,
		ReadOnly:     e.readOnly,
		Box:          e.box,
	}
}

func (e *SetPoint) Decode(path string, form url.Values) (any, bool) {
	if !present(form, path, path+SuffixDisabled) {
		return nil, false
	}
	disable := e.codec.Disable.Enabled && checked(form, path+SuffixDisabled)
	raw := e.codec.Raw(form.Get(path), disable)
	return e.codec.Display(float64(raw)).Raw, true
}
