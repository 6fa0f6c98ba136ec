package eq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
)

const maxGainDB = 48.0

var (
	// ErrBandIndex is returned for band indices outside [0, Len()).
	ErrBandIndex = errors.New("eq: band index out of range")
	// ErrInvalidBand is returned when a band configuration cannot be designed.
	ErrInvalidBand = errors.New("eq: invalid band")
)

// BandConfig describes one equalizer band.
type BandConfig struct {
	Kind      biquad.Kind
	Frequency float64
	Q         float64
	GainDB    float64
	// Order is the number of cascaded stages: 1, 2, 4 or 8.
	Order  int
	Bypass bool
}

// Bell returns a single-stage peaking band.
func Bell(freq, q, gainDB float64) BandConfig {
	return BandConfig{Kind: biquad.Bell, Frequency: freq, Q: q, GainDB: gainDB, Order: 1}
}

// Equalizer is a list of bands applied in series to every channel.
type Equalizer[F core.Float] struct {
	sampleRate float64
	channels   int

	configs []BandConfig
	bands   [][]*biquad.Band[F] // [band][channel]
}

// New returns an empty equalizer. Sample rate and channel count come from
// the shared processor options.
func New[F core.Float](opts ...core.ProcessorOption) *Equalizer[F] {
	cfg := core.ApplyProcessorOptions(opts...)

	return &Equalizer[F]{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
	}
}

// SampleRate returns the design sample rate.
func (e *Equalizer[F]) SampleRate() float64 { return e.sampleRate }

// Channels returns the number of channels processed.
func (e *Equalizer[F]) Channels() int { return e.channels }

// Len returns the number of bands.
func (e *Equalizer[F]) Len() int { return len(e.configs) }

// Bands returns a copy of the band configurations.
func (e *Equalizer[F]) Bands() []BandConfig {
	return append([]BandConfig(nil), e.configs...)
}

// Band returns the configuration of band i.
func (e *Equalizer[F]) Band(i int) (BandConfig, error) {
	if i < 0 || i >= len(e.configs) {
		return BandConfig{}, fmt.Errorf("%w: %d", ErrBandIndex, i)
	}

	return e.configs[i], nil
}

// AddBand appends a band and returns its index.
func (e *Equalizer[F]) AddBand(cfg BandConfig) (int, error) {
	if err := e.validate(cfg); err != nil {
		return -1, err
	}

	filters := make([]*biquad.Band[F], e.channels)
	for ch := range filters {
		b, err := biquad.NewBand[F](cfg.Kind, cfg.Frequency, cfg.Q, cfg.GainDB, e.sampleRate, cfg.Order)
		if err != nil {
			return -1, err
		}

		filters[ch] = b
	}

	e.configs = append(e.configs, cfg)
	e.bands = append(e.bands, filters)

	return len(e.configs) - 1, nil
}

// SetBand replaces the configuration of band i. Filter history is kept
// unless the order changes.
func (e *Equalizer[F]) SetBand(i int, cfg BandConfig) error {
	if i < 0 || i >= len(e.configs) {
		return fmt.Errorf("%w: %d", ErrBandIndex, i)
	}

	if err := e.validate(cfg); err != nil {
		return err
	}

	for _, b := range e.bands[i] {
		if b.Order() != cfg.Order {
			if err := b.SetOrder(cfg.Order); err != nil {
				return err
			}
		}

		b.SetKind(cfg.Kind)
		b.Set(cfg.Frequency, cfg.Q, cfg.GainDB)
	}

	e.configs[i] = cfg

	return nil
}

// SetGain changes only the gain of band i.
func (e *Equalizer[F]) SetGain(i int, gainDB float64) error {
	cfg, err := e.Band(i)
	if err != nil {
		return err
	}

	cfg.GainDB = gainDB

	return e.SetBand(i, cfg)
}

// SetBypass excludes band i from processing and from the response.
func (e *Equalizer[F]) SetBypass(i int, bypass bool) error {
	if i < 0 || i >= len(e.configs) {
		return fmt.Errorf("%w: %d", ErrBandIndex, i)
	}

	e.configs[i].Bypass = bypass

	return nil
}

// RemoveBand deletes band i.
func (e *Equalizer[F]) RemoveBand(i int) error {
	if i < 0 || i >= len(e.configs) {
		return fmt.Errorf("%w: %d", ErrBandIndex, i)
	}

	e.configs = append(e.configs[:i], e.configs[i+1:]...)
	e.bands = append(e.bands[:i], e.bands[i+1:]...)

	return nil
}

// SetSampleRate redesigns every band for a new sample rate. Bands whose
// frequency no longer fits below Nyquist become identity filters.
func (e *Equalizer[F]) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("eq: sample rate must be positive and finite: %f", sampleRate)
	}

	e.sampleRate = sampleRate

	for _, filters := range e.bands {
		for _, b := range filters {
			b.SetSampleRate(sampleRate)
		}
	}

	return nil
}

// Process filters buf in place. Channels beyond Channels() are untouched.
func (e *Equalizer[F]) Process(buf *buffer.Buffer[F]) {
	channels := min(buf.Channels(), e.channels)

	for i, filters := range e.bands {
		if e.configs[i].Bypass {
			continue
		}

		for ch := range channels {
			filters[ch].ProcessBlock(buf.Channel(ch))
		}
	}
}

// ProcessChannel filters one channel's samples in place.
func (e *Equalizer[F]) ProcessChannel(ch int, samples []F) {
	if ch < 0 || ch >= e.channels {
		return
	}

	for i, filters := range e.bands {
		if !e.configs[i].Bypass {
			filters[ch].ProcessBlock(samples)
		}
	}
}

// Reset clears all filter history.
func (e *Equalizer[F]) Reset() {
	for _, filters := range e.bands {
		for _, b := range filters {
			b.Reset()
		}
	}
}

// MagnitudeDB returns the summed magnitude response of the active bands.
func (e *Equalizer[F]) MagnitudeDB(freqHz float64) float64 {
	db := 0.0

	for i, filters := range e.bands {
		if !e.configs[i].Bypass {
			db += filters[0].MagnitudeDB(freqHz)
		}
	}

	return db
}

// Phase returns the summed phase response in radians, wrapped to [-pi, pi].
func (e *Equalizer[F]) Phase(freqHz float64) float64 {
	phase := 0.0

	for i, filters := range e.bands {
		if !e.configs[i].Bypass {
			phase += filters[0].Phase(freqHz)
		}
	}

	return math.Remainder(phase, 2*math.Pi)
}

// SpectrumDB returns the combined n-point FFT magnitude of the active bands'
// impulse responses (n/2+1 bins). n must be a power of two.
func (e *Equalizer[F]) SpectrumDB(n int) ([]float64, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("eq: spectrum size must be a power of 2: %d", n)
	}

	total := make([]float64, n/2+1)

	for i, filters := range e.bands {
		if e.configs[i].Bypass {
			continue
		}

		s, err := filters[0].SpectrumDB(n)
		if err != nil {
			return nil, err
		}

		for k := range total {
			total[k] += s[k]
		}
	}

	return total, nil
}

func (e *Equalizer[F]) validate(cfg BandConfig) error {
	switch {
	case !cfg.Kind.Valid():
		return fmt.Errorf("%w: kind %d", ErrInvalidBand, int(cfg.Kind))
	case !(cfg.Frequency > 0 && cfg.Frequency < e.sampleRate/2):
		return fmt.Errorf("%w: frequency must be in (0, %f): %f", ErrInvalidBand, e.sampleRate/2, cfg.Frequency)
	case !(cfg.Q > 0) || math.IsInf(cfg.Q, 0):
		return fmt.Errorf("%w: q must be positive and finite: %f", ErrInvalidBand, cfg.Q)
	case !(math.Abs(cfg.GainDB) <= maxGainDB):
		return fmt.Errorf("%w: gain must be in [%f, %f]: %f", ErrInvalidBand, -maxGainDB, maxGainDB, cfg.GainDB)
	case !biquad.ValidOrder(cfg.Order):
		return fmt.Errorf("%w: %w: %d", ErrInvalidBand, biquad.ErrInvalidOrder, cfg.Order)
	}

	return nil
}
