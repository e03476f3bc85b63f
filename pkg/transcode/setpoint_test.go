package transcode

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetPointCodec_Display(t *testing.T) {
	cases := []struct {
		name     string
		places   int
		raw      float64
		expected SetPointResult
	}{
		{name: "two implied places", places: 2, raw: 1234, expected: SetPointResult{Text: "12.34", Raw: 1234}},
		{name: "trailing zeros kept", places: 2, raw: 1200, expected: SetPointResult{Text: "12.00", Raw: 1200}},
		{name: "small negative", places: 2, raw: -5, expected: SetPointResult{Text: "-0.05", Raw: -5}},
		{name: "one place", places: 1, raw: 7, expected: SetPointResult{Text: "0.7", Raw: 7}},
		{name: "integer display", places: 0, raw: 1234, expected: SetPointResult{Text: "1234", Raw: 1234}},
		{name: "negative places are integers", places: -3, raw: 42, expected: SetPointResult{Text: "42", Raw: 42}},
		{name: "clamps high before formatting", places: 0, raw: 40000, expected: SetPointResult{Text: "32767", Raw: 32767}},
		{name: "clamps high with places", places: 2, raw: 40000, expected: SetPointResult{Text: "327.67", Raw: 32767}},
		{name: "clamps low", places: 0, raw: -40000, expected: SetPointResult{Text: "-32768", Raw: -32768}},
		{name: "sentinel hides", places: 2, raw: -1, expected: SetPointResult{Text: "0", Raw: -1, Hidden: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec := SetPointCodec{Disable: NewDisableConfig(nil, nil), ImpliedDecimalPoints: tc.places}
			assert.Equal(t, tc.expected, codec.Display(tc.raw))
		})
	}
}

func TestSetPointCodec_Raw(t *testing.T) {
	codec := SetPointCodec{Disable: NewDisableConfig(nil, nil), ImpliedDecimalPoints: 2}

	assert.Equal(t, 1234, codec.Raw("12.34", false))
	assert.Equal(t, 1234, codec.Raw(12.34, false))
	assert.Equal(t, 1230, codec.Raw("12.3", false))
	assert.Equal(t, 1234, codec.Raw("12.349", false), "scaled value floors")
	assert.Equal(t, -1235, codec.Raw("-12.345", false))
	assert.Equal(t, 0, codec.Raw("warm", false))
	assert.Equal(t, 0, codec.Raw(nil, false))
	assert.Equal(t, 32767, codec.Raw("400", false), "scaled value clamps")
	assert.Equal(t, -32768, codec.Raw("-99999", false))
	assert.Equal(t, -1, codec.Raw("12.34", true))

	plain := SetPointCodec{Disable: NewDisableConfig(nil, nil)}
	assert.Equal(t, 12, plain.Raw("12.9", false))
	assert.Equal(t, 32767, plain.Raw("40000", false))
}

func TestSetPointCodec_RawExtremeExponents(t *testing.T) {
	codec := SetPointCodec{Disable: NewDisableConfig(nil, nil), ImpliedDecimalPoints: 2}

	cases := []struct {
		input    string
		expected int
	}{
		{input: "1e10000000", expected: 32767},
		{input: "-1e10000000", expected: -32768},
		{input: "1e-10000000", expected: 0},
		{input: "-1e-10000000", expected: -1},
		{input: "12.34e0", expected: 1234},
		{input: "1" + strings.Repeat("0", 80), expected: 32767},
		{input: "-1" + strings.Repeat("0", 80), expected: -32768},
		{input: "0." + strings.Repeat("0", 80) + "1", expected: 0},
	}
	for _, tc := range cases {
		start := time.Now()
		assert.Equal(t, tc.expected, codec.Raw(tc.input, false), "input %.20s", tc.input)
		assert.Less(t, time.Since(start), time.Second, "input %.20s", tc.input)
	}
}

func TestSetPointCodec_CustomSentinel(t *testing.T) {
	codec := SetPointCodec{Disable: NewDisableConfig(nil, -9999), ImpliedDecimalPoints: 1}

	assert.Equal(t, -9999, codec.Raw("", true))
	assert.True(t, codec.Display(-9999).Hidden)
	assert.False(t, codec.Display(-1).Hidden)
}

func TestSetPointCodec_Idempotent(t *testing.T) {
	for _, places := range []int{0, 1, 2, 3} {
		codec := SetPointCodec{Disable: NewDisableConfig(nil, nil), ImpliedDecimalPoints: places}
		for _, raw := range []float64{0, 1, 99, 1234, -250, 32767, -32768} {
			first := codec.Display(raw)
			again := codec.Display(float64(codec.Raw(first.Text, false)))
			assert.Equal(t, first, again, "places=%d raw=%v", places, raw)
		}
	}
}
