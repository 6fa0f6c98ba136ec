//go:build !fastmath

package testutil

// DBTolerance bounds the error of core's dB and linear conversions in this
// build.
const DBTolerance = 1e-10
