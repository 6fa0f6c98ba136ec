//go:build fastmath

package core

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10.
const ln10 = 2.302585092994045684017991454684

func log10(x float64) float64 {
	return approx.FastLog(x) / ln10
}

func pow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}

// Sqrt computes sqrt(x) on the hot path.
func Sqrt[F Float](x F) F {
	if x <= 0 {
		return F(math.Sqrt(float64(x)))
	}

	return F(approx.FastSqrt(float64(x)))
}
