// Package editors adapts the transcode codecs to form fields. An Editor turns
// a stored register value into the state a renderer displays (View) and a
// submitted form back into the register value (Decode). Decode always passes
// its result through the same normalisation View applies, so decoding a
// submission and viewing it again is stable.
//
// Input names follow the field path: "<path>" for single inputs and bit
// checkboxes, "<path>.hours" and "<path>.minutes" for the hour/minute pair,
// and "<path>.disabled" for the disable checkbox.
package editors
