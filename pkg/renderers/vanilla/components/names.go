package components

// Component names registered by NewDefaultRegistry. The controller widgets
// share their names with the widget registry.
const (
	NameInput      = "input"
	NameHourMinute = "hour-minute"
	NameSetPoint   = "set-point"
	NameSelectBit  = "select-bit"
	NameObject     = "object"
)
