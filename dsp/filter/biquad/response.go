package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(c.A0, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	n := c.Normalized()
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := n.B0, n.B1, n.B2
	a1, a2 := n.A1, n.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// Magnitude returns |H(f)|.
func (c Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians, in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of h[n] without touching any filter state.
func (c Coefficients) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)
	ir[0] = 1
	c.filterInPlace(ir)

	return ir
}

func (c Coefficients) filterInPlace(buf []float64) {
	nc := c.Normalized()

	var x1, x2, y1, y2 float64
	for i, x := range buf {
		y := nc.B0*x + nc.B1*x1 + nc.B2*x2 - nc.A1*y1 - nc.A2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}
}

// Response evaluates the filter's transfer function at freqHz.
func (f *Filter[F]) Response(freqHz float64) complex128 {
	return f.coeffs.Response(freqHz, f.sampleRate)
}

// Magnitude returns the linear magnitude response at freqHz.
func (f *Filter[F]) Magnitude(freqHz float64) float64 {
	return f.coeffs.Magnitude(freqHz, f.sampleRate)
}

// MagnitudeDB returns the magnitude response at freqHz in dB.
func (f *Filter[F]) MagnitudeDB(freqHz float64) float64 {
	return f.coeffs.MagnitudeDB(freqHz, f.sampleRate)
}

// Phase returns the phase response at freqHz in radians.
func (f *Filter[F]) Phase(freqHz float64) float64 {
	return f.coeffs.Phase(freqHz, f.sampleRate)
}

// ImpulseResponse computes n samples of the filter's impulse response.
// The processing history is not modified.
func (f *Filter[F]) ImpulseResponse(n int) []float64 {
	return f.coeffs.ImpulseResponse(n)
}
