// Package transcode converts between the compact integer values stored by SSi
// 9xxx controllers and the representations operators edit: hours and minutes,
// scaled decimal set points and bit-flag selections.
//
// Every function is pure. Invalid input is coerced to zero, out-of-range input
// is clamped to the signed 16-bit register domain and malformed configuration
// falls back to defaults, so callers never handle errors from this package.
//
// A field may reserve a sentinel value (the "disabled value", -1 unless
// configured) that marks the register as administratively disabled. The
// DisableConfig type carries that rule and is shared by the hour/minute and
// set-point codecs.
package transcode
