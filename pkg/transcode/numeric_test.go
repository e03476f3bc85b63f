package transcode

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{name: "float", value: 1.5, want: 1.5, ok: true},
		{name: "int16", value: int16(-7), want: -7, ok: true},
		{name: "json number", value: json.Number("2150"), want: 2150, ok: true},
		{name: "padded string", value: " 12.34 ", want: 12.34, ok: true},
		{name: "empty string", value: "", ok: false},
		{name: "word", value: "abc", ok: false},
		{name: "bool", value: true, ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "nan", value: math.NaN(), ok: false},
		{name: "inf", value: math.Inf(1), ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Number(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInteger(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{name: "int", value: -32768, want: -32768, ok: true},
		{name: "integral float", value: 90.0, want: 90, ok: true},
		{name: "fractional float", value: 1.5, ok: false},
		{name: "signed string", value: "-1", want: -1, ok: true},
		{name: "decimal string", value: "1.0", ok: false},
		{name: "json number", value: json.Number("12"), want: 12, ok: true},
		{name: "fractional json number", value: json.Number("1.5"), ok: false},
		{name: "word", value: "two", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Integer(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFloorAndRanges(t *testing.T) {
	assert.Equal(t, 1, Floor("1.9"))
	assert.Equal(t, -2, Floor(-1.5))
	assert.Equal(t, 0, Floor("x"))
	assert.Equal(t, math.MaxInt32, Floor(1e12))

	r := NewRange(-40000, 40000, MinInt16, MaxInt16)
	assert.Equal(t, Int16Range(), r)
	assert.Equal(t, NumericRange{Minimum: 10, Maximum: 10}, NewRange(20, 10, 0, 100))
	assert.True(t, r.Contains(0))
	assert.False(t, r.Contains(MaxMinutes))
	assert.Equal(t, 0.0, r.ClampFloat(math.NaN()))
}
