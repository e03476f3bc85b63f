package transcode

import "math"

// DefaultDisabledValue is the sentinel used when a field does not configure
// one.
const DefaultDisabledValue = -1

// DisableConfig describes the disabled-value convention of a field.
//
// DisabledValue holds the configured sentinel exactly as it was declared (it
// may be nil, an integer, or something malformed). DefaultDisabledValue is
// used whenever DisabledValue is absent or not a valid integer.
type DisableConfig struct {
	Enabled              bool
	DisabledValue        any
	DefaultDisabledValue int
}

// NewDisableConfig builds a config from the ShowDisableCheckBox and
// disabledValue options. A nil show flag means the checkbox is shown.
func NewDisableConfig(show *bool, disabledValue any) DisableConfig {
	return DisableConfig{
		Enabled:              show == nil || *show,
		DisabledValue:        disabledValue,
		DefaultDisabledValue: DefaultDisabledValue,
	}
}

// Sentinel returns the effective disabled value.
func (c DisableConfig) Sentinel() int {
	if c.DisabledValue != nil {
		if value, ok := Integer(c.DisabledValue); ok {
			return value
		}
	}
	return c.DefaultDisabledValue
}

// IsDisabled reports whether value marks the field as disabled.
func (c DisableConfig) IsDisabled(value int) bool {
	return c.Enabled && value == c.Sentinel()
}

// ResolveDisabledValue returns the sentinel and true when value is nil or is
// itself the sentinel. Any other value returns false: the caller keeps its
// normal value.
func (c DisableConfig) ResolveDisabledValue(value *int) (int, bool) {
	if value == nil || c.IsDisabled(*value) {
		return c.Sentinel(), true
	}
	return 0, false
}

func (c DisableConfig) isDisabledNumber(value float64) bool {
	if math.IsNaN(value) || value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return false
	}
	return c.IsDisabled(int(value))
}
