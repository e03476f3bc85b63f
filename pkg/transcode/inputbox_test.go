package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildInputBox_Defaults(t *testing.T) {
	box := BuildInputBox(nil, nil, InputOptions{}, MaxInt16)

	assert.Equal(t, InputBox{Type: "number", Step: "1", Min: MinInt16, Max: MaxInt16}, box)
}

func TestBuildInputBox_SchemaBounds(t *testing.T) {
	box := BuildInputBox(nil, nil, InputOptions{
		Minimum:          floatPtr(-2),
		Maximum:          floatPtr(10019),
		ExclusiveMinimum: true,
		ExclusiveMaximum: true,
		Step:             0.01,
	}, MaxInt16)

	assert.Equal(t, float64(-1), box.Min)
	assert.Equal(t, float64(10018), box.Max)
	assert.Equal(t, "0.01", box.Step)
	assert.Equal(t, "-1", box.MinAttr())
	assert.Equal(t, "10018", box.MaxAttr())
}

func TestBuildInputBox_OverridesAndClamps(t *testing.T) {
	lo, hi := 0, 59
	box := BuildInputBox(&lo, &hi, InputOptions{Minimum: floatPtr(-50), Maximum: floatPtr(100)}, MaxMinutes)
	assert.Equal(t, float64(0), box.Min)
	assert.Equal(t, float64(59), box.Max)

	box = BuildInputBox(nil, nil, InputOptions{Minimum: floatPtr(-90000), Maximum: floatPtr(90000)}, MaxMinutes)
	assert.Equal(t, float64(MinInt16), box.Min)
	assert.Equal(t, float64(MaxMinutes), box.Max)

	box = BuildInputBox(nil, nil, InputOptions{Maximum: floatPtr(90000)}, MaxInt16)
	assert.Equal(t, float64(MaxInt16), box.Max)
}

func TestBuildInputBox_Step(t *testing.T) {
	assert.Equal(t, "1", BuildInputBox(nil, nil, InputOptions{Step: "fast"}, MaxInt16).Step)
	assert.Equal(t, "5", BuildInputBox(nil, nil, InputOptions{Step: "5"}, MaxInt16).Step)
	assert.Equal(t, "0.5", BuildInputBox(nil, nil, InputOptions{Step: 0.5}, MaxInt16).Step)
}

func TestBuildInputBox_MinimumNeverExceedsMaximum(t *testing.T) {
	box := BuildInputBox(nil, nil, InputOptions{Minimum: floatPtr(500), Maximum: floatPtr(100)}, MaxInt16)
	assert.Equal(t, box.Max, box.Min)
}

func TestNewRange(t *testing.T) {
	assert.Equal(t, NumericRange{Minimum: MinInt16, Maximum: MaxInt16}, NewRange(-90000, 90000, MinInt16, MaxInt16))
	assert.Equal(t, NumericRange{Minimum: 0, Maximum: MaxMinutes}, NewRange(0, 90000, MinInt16, MaxMinutes))
	assert.Equal(t, NumericRange{Minimum: 10, Maximum: 10}, NewRange(20, 10, MinInt16, MaxInt16))
	assert.True(t, Int16Range().Contains(-32768))
	assert.False(t, Int16Range().Contains(32768))
	assert.True(t, MinutesRange().Contains(32768), "hour/minute domain keeps its inclusive upper bound")
}

func TestNumberAndInteger(t *testing.T) {
	v, ok := Number(" 12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = Number("NaN")
	assert.False(t, ok)
	_, ok = Number(true)
	assert.False(t, ok)
	_, ok = Number("")
	assert.False(t, ok)

	i, ok := Integer(float64(42))
	assert.True(t, ok)
	assert.Equal(t, 42, i)
	_, ok = Integer(42.5)
	assert.False(t, ok)
	_, ok = Integer("4.0")
	assert.False(t, ok)
	i, ok = Integer("-7")
	assert.True(t, ok)
	assert.Equal(t, -7, i)
}

func TestFloor(t *testing.T) {
	assert.Equal(t, 12, Floor("12.9"))
	assert.Equal(t, -13, Floor(-12.1))
	assert.Equal(t, 7, Floor("7"))
	assert.Equal(t, 0, Floor("seven"))
	assert.Equal(t, 0, Floor(nil))
}
