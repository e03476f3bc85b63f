package editors

import (
	"net/url"

	"github.com/goliatone/go-formgen-ssi/pkg/model"
	"github.com/goliatone/go-formgen-ssi/pkg/transcode"
	"github.com/goliatone/go-formgen-ssi/pkg/widgets"
)

// HourMinuteView is the display state of a minutes register.
type HourMinuteView struct {
	HoursName    string `json:"hoursName"`
	MinutesName  string `json:"minutesName"`
	DisabledName string `json:"disabledName"`
	DisabledID   string `json:"disabledId"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Raw          int    `json:"raw"`
	Disabled     bool   `json:"disabled"`
	ShowDisable  bool   `json:"showDisable"`
	ReadOnly     bool   `json:"readOnly"`
	HoursBox     Box    `json:"hoursBox"`
	MinutesBox   Box    `json:"minutesBox"`
}

// HourMinute edits a register holding total minutes as hours and minutes.
type HourMinute struct {
	codec      transcode.HourMinuteCodec
	hoursBox   Box
	minutesBox Box
	readOnly   bool
	ids        IDFunc
}

// NewHourMinute builds the editor. The schema maximum bounds the hours
// input; minutes are always 0..59.
func NewHourMinute(field model.Field, ids IDFunc) *HourMinute {
	opts := inputOptions(field)
	return &HourMinute{
		codec:      transcode.HourMinuteCodec{Disable: disableConfig(field)},
		hoursBox:   boxOf(transcode.BuildInputBox(intPtr(0), nil, opts, transcode.MaxMinutes)),
		minutesBox: boxOf(transcode.BuildInputBox(intPtr(0), intPtr(59), opts, transcode.MaxMinutes)),
		readOnly:   field.ReadOnly,
		ids:        ids,
	}
}

func (e *HourMinute) Widget() string { return widgets.WidgetHourMinute }

// Codec exposes the transcoder, used by the terminal renderer.
func (e *HourMinute) Codec() transcode.HourMinuteCodec { return e.codec }

func (e *HourMinute) View(path string, value any) any {
	total, _ := transcode.Number(value)
	result := e.codec.Display(total)
	return HourMinuteView{
		HoursName:    path + SuffixHours,
		MinutesName:  path + SuffixMinutes,
		DisabledName: path + SuffixDisabled,
		DisabledID:   e.ids(path),
		Hours:        result.Value.Hours,
		Minutes:      result.Value.Minutes,
		Raw:          result.Raw,
		Disabled:     result.Disabled,
		ShowDisable:  e.codec.Disable.Enabled,
		ReadOnly:     e.readOnly,
		HoursBox:     e.hoursBox,
		MinutesBox:   e.minutesBox,
	}
}

func (e *HourMinute) Decode(path string, form url.Values) (any, bool) {
	if !present(form, path+SuffixHours, path+SuffixMinutes, path+SuffixDisabled) {
		return nil, false
	}
	disable := e.codec.Disable.Enabled && checked(form, path+SuffixDisabled)
	raw := e.codec.Raw(form.Get(path+SuffixHours), form.Get(path+SuffixMinutes), disable)
	return e.codec.Display(float64(raw)).Raw, true
}
