package transcode

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SetPointResult is the outcome of displaying a scaled set point.
type SetPointResult struct {
	Text   string `json:"text"`
	Raw    int    `json:"raw"`
	Hidden bool   `json:"hidden"`
}

// SetPointCodec converts between a register holding a scaled integer and the
// decimal an operator edits. ImpliedDecimalPoints below one means the value is
// shown as a plain integer.
type SetPointCodec struct {
	Disable              DisableConfig
	ImpliedDecimalPoints int
}

func (c SetPointCodec) places() int32 {
	if c.ImpliedDecimalPoints <= 0 {
		return 0
	}
	return int32(c.ImpliedDecimalPoints)
}

// Display formats raw for editing. The register is clamped to the int16
// domain first; with implied decimal points the text always carries exactly
// that many fractional digits.
func (c SetPointCodec) Display(raw float64) SetPointResult {
	if c.Disable.isDisabledNumber(raw) {
		return SetPointResult{Text: "0", Raw: c.Disable.Sentinel(), Hidden: true}
	}

	domain := Int16Range()
	value := domain.Clamp(floorInt(domain.ClampFloat(raw)))

	places := c.places()
	if places == 0 {
		return SetPointResult{Text: strconv.Itoa(value), Raw: value}
	}
	return SetPointResult{
		Text: decimal.New(int64(value), -places).StringFixed(places),
		Raw:  value,
	}
}

// Raw converts a submitted display value back into the register value. The
// display value is clamped before scaling and the scaled result is floored and
// clamped again.
func (c SetPointCodec) Raw(display any, disableChecked bool) int {
	value := clampDecimal(decimalFrom(display))
	if disableChecked {
		sentinel, _ := c.Disable.ResolveDisabledValue(nil)
		return sentinel
	}
	if places := c.places(); places > 0 {
		value = value.Shift(places)
	}
	return int(clampDecimal(value.Floor()).IntPart())
}

var (
	decimalMin = decimal.NewFromInt(MinInt16)
	decimalMax = decimal.NewFromInt(MaxInt16)
)

func clampDecimal(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimalMin) {
		return decimalMin
	}
	if d.GreaterThan(decimalMax) {
		return decimalMax
	}
	return d
}

// Longer text is parsed as a float; no register value needs more digits.
const maxDecimalText = 64

// decimalFrom parses value without going through binary floating point when
// it arrives as text, so "12.34" scales to exactly 1234. The result is
// bounded before any arithmetic.
func decimalFrom(value any) decimal.Decimal {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if len(s) > maxDecimalText {
			return decimalFromLongText(s)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return bounded(d)
	}
	f, ok := Number(value)
	if !ok {
		return decimal.Zero
	}
	return bounded(decimal.NewFromFloat(f))
}

// decimalFromLongText parses s as a float. Overflow saturates by sign and
// anything unparsable is zero.
func decimalFromLongText(s string) decimal.Decimal {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return decimal.Zero
	}
	switch {
	case math.IsInf(f, 1):
		return decimalMax
	case math.IsInf(f, -1):
		return decimalMin
	}
	return bounded(decimal.NewFromFloat(f))
}

// bounded keeps the exponent of d small. Comparing or shifting a decimal
// rescales it to the other operand's exponent, which costs 10^|exponent|.
// Magnitudes past 10^6 saturate to the int16 bound of their sign; magnitudes
// under 10^-30 keep only their sign so flooring still rounds them correctly.
func bounded(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	magnitude := int64(d.Exponent()) + int64(d.NumDigits())
	switch {
	case magnitude > 6 && d.Sign() < 0:
		return decimalMin
	case magnitude > 6:
		return decimalMax
	case magnitude < -30:
		return decimal.New(int64(d.Sign()), -30)
	}
	return d
}
