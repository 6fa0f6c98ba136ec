// Package biquad provides the recursive second-order (biquad) filter used for
// sidechain conditioning and parametric EQ.
//
// A [Filter] couples an RBJ cookbook design ([Kind], frequency, Q, gain,
// sample rate) with Direct Form I processing state. Every design setter
// recomputes the coefficients; [Filter.Reset] clears only the history.
// [Band] cascades 1, 2, 4 or 8 filters with staggered centre frequencies for
// steeper EQ slopes.
//
// Magnitude and phase queries evaluate H(z) at z = e^{jw} for arbitrary
// frequencies; [Filter.SpectrumDB] returns an FFT of the impulse response for
// analyzer displays.
package biquad
