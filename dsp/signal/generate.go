// Package signal generates deterministic excitation signals for exercising
// dynamics processors: tones, noise, gated bursts and level staircases.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// ErrEmpty is returned when a signal would have no samples.
var ErrEmpty = errors.New("signal: no samples")

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() float64 { return g.cfg.SampleRate }

// Samples converts a duration in seconds to a sample count.
func (g *Generator) Samples(seconds float64) int {
	return int(math.Round(seconds * g.cfg.SampleRate))
}

// Sine generates a sine wave with peak level levelDB (dBFS).
func (g *Generator) Sine(freqHz, levelDB, seconds float64) ([]float64, error) {
	n := g.Samples(seconds)
	if n <= 0 {
		return nil, fmt.Errorf("%w: %f s", ErrEmpty, seconds)
	}

	if freqHz < 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("signal: frequency must be in [0, %f): %f", g.cfg.SampleRate/2, freqHz)
	}

	amp := core.DBToLinear(levelDB)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise with peak level levelDB.
func (g *Generator) WhiteNoise(levelDB, seconds float64) ([]float64, error) {
	n := g.Samples(seconds)
	if n <= 0 {
		return nil, fmt.Errorf("%w: %f s", ErrEmpty, seconds)
	}

	amp := core.DBToLinear(levelDB)
	rng := rand.New(rand.NewSource(g.seed))

	out := make([]float64, n)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amp
	}

	return out, nil
}

// Burst generates a tone at levelDB gated on between start and stop
// (seconds) and silent elsewhere. The tone starts at zero phase at start.
func (g *Generator) Burst(freqHz, levelDB, start, stop, seconds float64) ([]float64, error) {
	if start < 0 || stop < start {
		return nil, fmt.Errorf("signal: burst window must satisfy 0 <= start <= stop: %f, %f", start, stop)
	}

	tone, err := g.Sine(freqHz, levelDB, seconds)
	if err != nil {
		return nil, err
	}

	on, off := g.Samples(start), min(g.Samples(stop), len(tone))
	out := make([]float64, len(tone))

	if on < off {
		copy(out[on:off], tone)
	}

	return out, nil
}

// Segment is one stair of a level staircase.
type Segment struct {
	LevelDB float64
	Seconds float64
}

// Steps concatenates tone segments of freqHz at the given levels. Phase is
// continuous across segment boundaries. freqHz 0 gives DC steps.
func (g *Generator) Steps(freqHz float64, segments ...Segment) ([]float64, error) {
	total := 0
	for _, s := range segments {
		total += max(g.Samples(s.Seconds), 0)
	}

	if total == 0 {
		return nil, ErrEmpty
	}

	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	out := make([]float64, 0, total)

	for _, s := range segments {
		amp := core.DBToLinear(s.LevelDB)
		for range max(g.Samples(s.Seconds), 0) {
			i := len(out)
			if freqHz == 0 {
				out = append(out, amp)
			} else {
				out = append(out, amp*math.Sin(step*float64(i)))
			}
		}
	}

	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, ErrEmpty
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}

// Convert copies data into a slice of another sample type.
func Convert[F core.Float](data []float64) []F {
	out := make([]F, len(data))
	for i, v := range data {
		out[i] = F(v)
	}

	return out
}
