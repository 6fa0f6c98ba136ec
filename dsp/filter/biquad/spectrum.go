package biquad

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minSpectrumDB floors analyzer output so silent bins stay finite.
const minSpectrumDB = -240.0

// SpectrumDB returns the magnitude (dB) of the FFT of the first n impulse
// response samples, bins 0..n/2. n must be a power of two >= 2.
func (f *Filter[F]) SpectrumDB(n int) ([]float64, error) {
	return spectrumDB(f.ImpulseResponse(n), n)
}

// SpectrumDB returns the magnitude (dB) of the FFT of the first n samples of
// the cascade impulse response, bins 0..n/2.
func (b *Band[F]) SpectrumDB(n int) ([]float64, error) {
	return spectrumDB(b.ImpulseResponse(n), n)
}

// BinFrequency returns the centre frequency of bin k for an n-point spectrum.
func BinFrequency(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(n)
}

func spectrumDB(ir []float64, n int) ([]float64, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("spectrum size must be a power of two >= 2: %d", n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum plan: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range ir {
		buf[i] = complex(v, 0)
	}

	freq := make([]complex128, n)

	err = plan.Forward(freq, buf)
	if err != nil {
		return nil, fmt.Errorf("spectrum forward: %w", err)
	}

	out := make([]float64, n/2+1)
	for k := range out {
		mag := cmplx.Abs(freq[k])
		if mag <= 0 {
			out[k] = minSpectrumDB
			continue
		}

		out[k] = math.Max(20*math.Log10(mag), minSpectrumDB)
	}

	return out, nil
}
