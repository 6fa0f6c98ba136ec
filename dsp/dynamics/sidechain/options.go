package sidechain

import (
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/detector"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/reduction"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
)

// FilterConfig describes the optional sidechain conditioning filter.
type FilterConfig struct {
	Kind      biquad.Kind
	Frequency float64
	Q         float64
	GainDB    float64
}

// Config collects the construction parameters of a Sidechain.
type Config struct {
	ComputerTopology ComputerTopology
	DetectorTopology DetectorTopology
	Envelope         detector.Topology
	RMS              bool
	Dynamics         computer.Kind
	Reduction        reduction.Kind
	Filter           *FilterConfig
}

// DefaultConfig returns a feedforward, return-to-zero compressor with a
// branching envelope and no reduction filter.
func DefaultConfig() Config {
	return Config{
		ComputerTopology: FeedForward,
		DetectorTopology: ReturnToZero,
		Envelope:         detector.Branching,
		Dynamics:         computer.Compress,
		Reduction:        reduction.None,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithComputerTopology selects feedforward or feedback detection.
func WithComputerTopology(t ComputerTopology) Option {
	return func(c *Config) { c.ComputerTopology = t }
}

// WithDetectorTopology selects the detector operating point.
func WithDetectorTopology(t DetectorTopology) Option {
	return func(c *Config) { c.DetectorTopology = t }
}

// WithEnvelope selects the envelope recurrence.
func WithEnvelope(t detector.Topology) Option {
	return func(c *Config) { c.Envelope = t }
}

// WithRMS wraps the envelope in an RMS detector.
func WithRMS(enabled bool) Option {
	return func(c *Config) { c.RMS = enabled }
}

// WithDynamics selects compression or expansion.
func WithDynamics(kind computer.Kind) Option {
	return func(c *Config) { c.Dynamics = kind }
}

// WithReduction selects the gain reduction post filter.
func WithReduction(kind reduction.Kind) Option {
	return func(c *Config) { c.Reduction = kind }
}

// WithFilter conditions the detector input with a biquad, e.g. a highpass
// that keeps low end from pumping the compressor.
func WithFilter(cfg FilterConfig) Option {
	return func(c *Config) {
		f := cfg
		c.Filter = &f
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}
