package biquad

import "math"

// ButterworthQ is the Q of a maximally flat second-order section.
const ButterworthQ = 1 / math.Sqrt2

// Coefficients holds the unnormalized transfer function of one section:
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (A0 + A1*z^-1 + A2*z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A0, A1, A2 float64 // feedback (denominator)
}

// Identity returns the coefficients of a unity-gain passthrough.
func Identity() Coefficients {
	return Coefficients{B0: 1, A0: 1}
}

// Normalized returns c scaled so that A0 == 1. A zero or non-finite A0
// yields the identity section.
func (c Coefficients) Normalized() Coefficients {
	if c.A0 == 0 || math.IsNaN(c.A0) || math.IsInf(c.A0, 0) {
		return Identity()
	}

	inv := 1 / c.A0

	return Coefficients{
		B0: c.B0 * inv,
		B1: c.B1 * inv,
		B2: c.B2 * inv,
		A0: 1,
		A1: c.A1 * inv,
		A2: c.A2 * inv,
	}
}

// Design computes RBJ cookbook coefficients for kind at freq (Hz) with
// quality factor q and gain in dB (ignored by kinds without gain).
//
// A non-positive or non-finite Q falls back to ButterworthQ. A frequency
// outside (0, Nyquist) or an invalid sample rate yields the identity section.
func Design(kind Kind, freq, q, gainDB, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Identity()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	switch kind {
	case Lowpass:
		return Coefficients{
			B0: (1 - cw) / 2, B1: 1 - cw, B2: (1 - cw) / 2,
			A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		}
	case Highpass:
		return Coefficients{
			B0: (1 + cw) / 2, B1: -(1 + cw), B2: (1 + cw) / 2,
			A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		}
	case Bandpass:
		// constant 0 dB peak gain
		return Coefficients{
			B0: alpha, B1: 0, B2: -alpha,
			A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		}
	case Allpass:
		return Coefficients{
			B0: 1 - alpha, B1: -2 * cw, B2: 1 + alpha,
			A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		}
	case Notch:
		return Coefficients{
			B0: 1, B1: -2 * cw, B2: 1,
			A0: 1 + alpha, A1: -2 * cw, A2: 1 - alpha,
		}
	case LowShelf:
		beta := 2 * math.Sqrt(a) * alpha

		return Coefficients{
			B0: a * ((a + 1) - (a-1)*cw + beta),
			B1: 2 * a * ((a - 1) - (a+1)*cw),
			B2: a * ((a + 1) - (a-1)*cw - beta),
			A0: (a + 1) + (a-1)*cw + beta,
			A1: -2 * ((a - 1) + (a+1)*cw),
			A2: (a + 1) + (a-1)*cw - beta,
		}
	case HighShelf:
		beta := 2 * math.Sqrt(a) * alpha

		return Coefficients{
			B0: a * ((a + 1) + (a-1)*cw + beta),
			B1: -2 * a * ((a - 1) + (a+1)*cw),
			B2: a * ((a + 1) + (a-1)*cw - beta),
			A0: (a + 1) - (a-1)*cw + beta,
			A1: 2 * ((a - 1) - (a+1)*cw),
			A2: (a + 1) - (a-1)*cw - beta,
		}
	case Bell:
		return peaking(alpha, a, cw)
	case AnalogBell:
		return peaking(sw/(2*q*a), a, cw)
	default:
		return Identity()
	}
}

func peaking(alpha, a, cw float64) Coefficients {
	return Coefficients{
		B0: 1 + alpha*a, B1: -2 * cw, B2: 1 - alpha*a,
		A0: 1 + alpha/a, A1: -2 * cw, A2: 1 - alpha/a,
	}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return ButterworthQ
	}

	return q
}
