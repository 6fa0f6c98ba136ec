// Package eq provides a multi-channel parametric equalizer built from
// biquad bands, plus fractional-octave graphic layouts.
//
// Every band runs one biquad.Band per channel so channel histories never
// mix. The equalizer is not safe for concurrent use; change bands between
// Process calls.
package eq
