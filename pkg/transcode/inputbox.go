package transcode

import "strconv"

// InputOptions are the schema options that shape a number input.
type InputOptions struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	// Step is the raw configured step; nil means absent.
	Step any
}

// InputBox holds the attributes of a rendered number input.
type InputBox struct {
	Type string  `json:"type"`
	Step string  `json:"step"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// MinAttr formats Min for an HTML attribute.
func (b InputBox) MinAttr() string {
	return strconv.FormatFloat(b.Min, 'f', -1, 64)
}

// MaxAttr formats Max for an HTML attribute.
func (b InputBox) MaxAttr() string {
	return strconv.FormatFloat(b.Max, 'f', -1, 64)
}

// BuildInputBox resolves the attributes of a number input. Explicit min/max
// overrides win over the schema bounds; exclusive schema bounds move one step
// inward. The minimum never drops below MinInt16 and the maximum never exceeds
// upper. A missing or non-numeric step becomes "1".
func BuildInputBox(min, max *int, opts InputOptions, upper int) InputBox {
	box := InputBox{
		Type: "number",
		Step: "1",
		Min:  MinInt16,
		Max:  float64(upper),
	}

	if step, ok := Number(opts.Step); ok && opts.Step != nil {
		box.Step = strconv.FormatFloat(step, 'f', -1, 64)
	}

	switch {
	case min != nil:
		box.Min = float64(*min)
	case opts.Minimum != nil:
		box.Min = *opts.Minimum
		if opts.ExclusiveMinimum {
			box.Min++
		}
	}
	if box.Min < MinInt16 {
		box.Min = MinInt16
	}

	switch {
	case max != nil:
		box.Max = float64(*max)
	case opts.Maximum != nil:
		box.Max = *opts.Maximum
		if opts.ExclusiveMaximum {
			box.Max--
		}
	}
	if box.Max > float64(upper) {
		box.Max = float64(upper)
	}

	if box.Min > box.Max {
		box.Min = box.Max
	}
	return box
}
