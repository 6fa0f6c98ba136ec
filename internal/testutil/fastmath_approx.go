//go:build fastmath

package testutil

// DBTolerance bounds the error of core's dB and linear conversions when
// they run on the algo-approx kernels.
const DBTolerance = 1e-3
