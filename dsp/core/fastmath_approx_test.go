//go:build fastmath

package core

// The algo-approx log and exp kernels are accurate to about 1e-4 dB.
const dbTolerance = 1e-3
