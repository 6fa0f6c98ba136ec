package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// Sine generates a deterministic sine wave.
func Sine[F core.Float](freqHz, sampleRate, amplitude float64, length int) []F {
	out := make([]F, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = F(amplitude * math.Sin(step*float64(i)))
	}

	return out
}

// Noise generates white noise with a fixed seed.
func Noise[F core.Float](seed int64, amplitude float64, length int) []F {
	out := make([]F, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = F((rng.Float64()*2 - 1) * amplitude)
	}

	return out
}

// Impulse generates a unit impulse at pos.
func Impulse[F core.Float](length, pos int) []F {
	out := make([]F, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC generates a constant signal.
func DC[F core.Float](value float64, length int) []F {
	out := make([]F, length)
	core.Fill(out, F(value))

	return out
}

// Step holds lowDB until onset, then highDB, as linear DC levels.
func Step[F core.Float](lowDB, highDB float64, onset, length int) []F {
	out := DC[F](core.DBToLinear(lowDB), length)
	if onset < 0 {
		onset = 0
	}

	for i := onset; i < length; i++ {
		out[i] = F(core.DBToLinear(highDB))
	}

	return out
}

// Burst is a sine of amplitude 1 gated on between start and stop (samples)
// and silent elsewhere.
func Burst[F core.Float](freqHz, sampleRate float64, start, stop, length int) []F {
	out := Sine[F](freqHz, sampleRate, 1, length)
	for i := range out {
		if i < start || i >= stop {
			out[i] = 0
		}
	}

	return out
}
