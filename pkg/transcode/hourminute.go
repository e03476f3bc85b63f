package transcode

import "math"

// HourMinute is the operator-facing split of a minutes register.
type HourMinute struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Total returns the number of minutes represented by hm.
func (hm HourMinute) Total() int {
	return hm.Hours*60 + hm.Minutes
}

// HourMinuteResult is the outcome of displaying a minutes register. Raw is
// the value the editor keeps after normalisation.
type HourMinuteResult struct {
	Value    HourMinute `json:"value"`
	Raw      int        `json:"raw"`
	Disabled bool       `json:"disabled"`
}

// HourMinuteCodec converts between total minutes and hours/minutes.
type HourMinuteCodec struct {
	Disable DisableConfig
}

// MinutesRange is the domain of the hour/minute editor.
func MinutesRange() NumericRange {
	return NumericRange{Minimum: 0, Maximum: MaxMinutes}
}

// Display splits total into hours and minutes. Negative values other than the
// sentinel clamp to zero and large values clamp to MaxMinutes; this is lossy
// on purpose.
func (c HourMinuteCodec) Display(total float64) HourMinuteResult {
	if c.Disable.isDisabledNumber(total) {
		return c.disabled()
	}

	// Only the unfloored value is compared with the sentinel, so -0.5 clamps
	// to zero instead of disabling the field.
	raw := MinutesRange().Clamp(floorInt(total))

	var value HourMinute
	if raw >= 60 {
		value = HourMinute{Hours: raw / 60, Minutes: raw % 60}
	} else {
		value = HourMinute{Minutes: raw}
	}
	return HourMinuteResult{Value: value, Raw: raw}
}

// Raw combines the submitted hours and minutes. A checked disable box yields
// the sentinel. Inputs that are not integers count as zero. Each part and the
// total saturate at +-MaxMinutes, so oversized input never wraps into a
// different valid duration.
func (c HourMinuteCodec) Raw(hours, minutes any, disableChecked bool) int {
	if disableChecked {
		sentinel, _ := c.Disable.ResolveDisabledValue(nil)
		return sentinel
	}
	return partSpan.Clamp(minutePart(hours)*60 + minutePart(minutes))
}

var partSpan = NumericRange{Minimum: -MaxMinutes, Maximum: MaxMinutes}

func minutePart(value any) int {
	if n, ok := Integer(value); ok {
		return partSpan.Clamp(n)
	}
	if f, ok := Number(value); ok && f == math.Trunc(f) {
		return floorInt(partSpan.ClampFloat(f))
	}
	return 0
}

func (c HourMinuteCodec) disabled() HourMinuteResult {
	return HourMinuteResult{Raw: c.Disable.Sentinel(), Disabled: true}
}
