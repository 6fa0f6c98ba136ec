package core

import "math"

const defaultEpsilon = 1e-12

// Float is the sample type constraint shared by every generic processor.
type Float interface {
	~float32 | ~float64
}

// Clamp limits value to the inclusive range [lo, hi].
func Clamp[F Float](value, lo, hi F) F {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Recursive envelope and filter state decays toward zero and would otherwise
// spend its tail in the denormal range.
func FlushDenormals[F Float](x F) F {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear[F Float](db F) F {
	return F(pow10(float64(db) / 20))
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB[F Float](linear F) F {
	if linear < 0 {
		return F(math.NaN())
	}

	if linear == 0 {
		return F(math.Inf(-1))
	}

	return F(20 * log10(float64(linear)))
}

// LinearToDBFloor converts linear amplitude to dB, never returning less than
// floorDB. Magnitudes are taken so negative excursions are measured as level.
func LinearToDBFloor[F Float](linear, floorDB F) F {
	if linear < 0 {
		linear = -linear
	}

	if linear <= 0 {
		return floorDB
	}

	db := F(20 * log10(float64(linear)))
	if db < floorDB {
		return floorDB
	}

	return db
}

// TimeCoefficient returns the one-pole smoothing coefficient exp(-1/(seconds*sampleRate)).
// A zero time constant yields 0 (instant response).
func TimeCoefficient[F Float](seconds, sampleRate F) F {
	samples := float64(seconds) * float64(sampleRate)
	if samples <= 0 {
		return 0
	}

	return F(math.Exp(-1 / samples))
}
