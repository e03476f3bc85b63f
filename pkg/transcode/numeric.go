package transcode

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Register bounds.
const (
	MinInt16 = -32768
	MaxInt16 = 32767

	// MaxMinutes is the upper bound of the hour/minute editor. It sits one
	// above MaxInt16 and is kept as-is to match the controller tables.
	MaxMinutes = 32768
)

// NumericRange is an inclusive integer interval.
type NumericRange struct {
	Minimum int `json:"minimum"`
	Maximum int `json:"maximum"`
}

// Int16Range returns the signed 16-bit register domain.
func Int16Range() NumericRange {
	return NumericRange{Minimum: MinInt16, Maximum: MaxInt16}
}

// NewRange clamps both bounds into [lower, upper]. When the clamped minimum
// exceeds the maximum the minimum is lowered to the maximum.
func NewRange(minimum, maximum, lower, upper int) NumericRange {
	bounds := NumericRange{Minimum: lower, Maximum: upper}
	r := NumericRange{
		Minimum: bounds.Clamp(minimum),
		Maximum: bounds.Clamp(maximum),
	}
	if r.Minimum > r.Maximum {
		r.Minimum = r.Maximum
	}
	return r
}

// Clamp returns v limited to the range.
func (r NumericRange) Clamp(v int) int {
	if v < r.Minimum {
		return r.Minimum
	}
	if v > r.Maximum {
		return r.Maximum
	}
	return v
}

// ClampFloat is Clamp for float values. NaN collapses to zero before clamping.
func (r NumericRange) ClampFloat(v float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Max(float64(r.Minimum), math.Min(float64(r.Maximum), v))
}

// Contains reports whether v lies inside the range.
func (r NumericRange) Contains(v int) bool {
	return v >= r.Minimum && v <= r.Maximum
}

// Number coerces value into a finite float64. Strings are trimmed and parsed;
// booleans, empty strings, NaN and infinities are rejected.
func Number(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int8:
		out = float64(v)
	case int16:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint:
		out = float64(v)
	case uint8:
		out = float64(v)
	case uint16:
		out = float64(v)
	case uint32:
		out = float64(v)
	case uint64:
		out = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

// Integer coerces value into an int. Only integral numbers and strings made of
// an optional sign followed by digits are accepted.
func Integer(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	f, ok := Number(value)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// floorInt floors v after limiting it to the int32 domain so the conversion
// cannot overflow.
func floorInt(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(math.MinInt32, math.Min(math.MaxInt32, v))
	return int(math.Floor(v))
}

// Floor coerces value with Number and floors the result. Values that are not
// numbers become 0; the result stays inside the int32 domain.
func Floor(value any) int {
	if v, ok := Integer(value); ok {
		return v
	}
	f, ok := Number(value)
	if !ok {
		return 0
	}
	return floorInt(f)
}
