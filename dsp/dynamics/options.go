package dynamics

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/sidechain"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// Config collects the construction parameters of a Processor.
type Config struct {
	core.ProcessorConfig

	// Model selects a hardware emulation. Generic uses Sidechain and the
	// continuous parameters.
	Model     sidechain.Model
	Sidechain sidechain.Config

	// Values seeds the parameter state. The sample rate is taken from
	// ProcessorConfig.
	Values state.Values[float64]

	StereoLink    bool
	MakeupDB      float64
	QueueCapacity int
}

// DefaultConfig returns a stereo, linked, generic compressor.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Model:           sidechain.Generic,
		Sidechain:       sidechain.DefaultConfig(),
		Values:          state.DefaultValues[float64](),
		StereoLink:      true,
		QueueCapacity:   state.DefaultQueueCapacity,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithProcessorOptions applies shared core options (sample rate, block size,
// channels).
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *Config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&c.ProcessorConfig)
			}
		}
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return WithProcessorOptions(core.WithSampleRate(sampleRate))
}

// WithChannels sets the channel count.
func WithChannels(channels int) Option {
	return WithProcessorOptions(core.WithChannels(channels))
}

// WithBlockSize sets the largest block processed without splitting.
func WithBlockSize(blockSize int) Option {
	return WithProcessorOptions(core.WithBlockSize(blockSize))
}

// WithModel selects a hardware emulation.
func WithModel(m sidechain.Model) Option {
	return func(c *Config) { c.Model = m }
}

// WithSidechain sets sidechain options for the generic model.
func WithSidechain(opts ...sidechain.Option) Option {
	return func(c *Config) {
		for _, opt := range opts {
			opt(&c.Sidechain)
		}
	}
}

// WithComputerTopology selects feedforward or feedback detection.
func WithComputerTopology(t sidechain.ComputerTopology) Option {
	return WithSidechain(sidechain.WithComputerTopology(t))
}

// WithDetectorTopology selects the detector operating point.
func WithDetectorTopology(t sidechain.DetectorTopology) Option {
	return WithSidechain(sidechain.WithDetectorTopology(t))
}

// WithDynamics selects compression or expansion.
func WithDynamics(kind computer.Kind) Option {
	return WithSidechain(sidechain.WithDynamics(kind))
}

// WithValues seeds the parameter state.
func WithValues(v state.Values[float64]) Option {
	return func(c *Config) { c.Values = v }
}

// WithStereoLink applies the deepest channel's gain to every channel.
func WithStereoLink(enabled bool) Option {
	return func(c *Config) { c.StereoLink = enabled }
}

// WithMakeup sets the output makeup gain in dB.
func WithMakeup(dB float64) Option {
	return func(c *Config) { c.MakeupDB = dB }
}

// WithQueueCapacity sizes the control event queue.
func WithQueueCapacity(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.QueueCapacity = n
		}
	}
}
