//go:build !fastmath

package core

import "math"

func log10(x float64) float64 {
	return math.Log10(x)
}

func pow10(x float64) float64 {
	return math.Pow(10, x)
}

// Sqrt computes sqrt(x) on the hot path.
func Sqrt[F Float](x F) F {
	return F(math.Sqrt(float64(x)))
}
