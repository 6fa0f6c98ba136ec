package biquad

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// StaggerOctaves is the spacing, in octaves, between the centre frequencies
// of neighbouring stages in a multi-order band.
const StaggerOctaves = 0.015

// ErrInvalidOrder is returned for band orders other than 1, 2, 4 or 8.
var ErrInvalidOrder = errors.New("biquad: band order must be 1, 2, 4 or 8")

// Band is an EQ band built from a cascade of identical-kind filters.
// Stage centre frequencies are spread symmetrically around the band
// frequency and gain-bearing kinds split the band gain evenly across stages.
type Band[F core.Float] struct {
	kind       Kind
	freq       float64
	q          float64
	gainDB     float64
	sampleRate float64
	stages     []Filter[F]
}

// ValidOrder reports whether order is a supported band order.
func ValidOrder(order int) bool {
	switch order {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// NewBand returns a band with order stages.
func NewBand[F core.Float](kind Kind, freq, q, gainDB, sampleRate float64, order int) (*Band[F], error) {
	if !ValidOrder(order) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	b := &Band[F]{
		kind:       kind,
		freq:       freq,
		q:          q,
		gainDB:     gainDB,
		sampleRate: sampleRate,
		stages:     make([]Filter[F], order),
	}
	b.redesign()

	return b, nil
}

// Kind returns the band's filter kind.
func (b *Band[F]) Kind() Kind { return b.kind }

// Frequency returns the band centre frequency in Hz.
func (b *Band[F]) Frequency() float64 { return b.freq }

// Q returns the per-stage quality factor.
func (b *Band[F]) Q() float64 { return b.q }

// Gain returns the total band gain in dB.
func (b *Band[F]) Gain() float64 { return b.gainDB }

// Order returns the number of cascaded stages.
func (b *Band[F]) Order() int { return len(b.stages) }

// Stage returns the i-th stage for inspection.
func (b *Band[F]) Stage(i int) *Filter[F] { return &b.stages[i] }

// SetKind changes the response shape of every stage.
func (b *Band[F]) SetKind(kind Kind) {
	b.kind = kind
	b.redesign()
}

// Set changes frequency, Q and gain together.
func (b *Band[F]) Set(freq, q, gainDB float64) {
	b.freq, b.q, b.gainDB = freq, q, gainDB
	b.redesign()
}

// SetSampleRate changes the sample rate of every stage.
func (b *Band[F]) SetSampleRate(sampleRate float64) {
	b.sampleRate = sampleRate
	b.redesign()
}

// SetOrder changes the number of stages. History is cleared when the order changes.
func (b *Band[F]) SetOrder(order int) error {
	if !ValidOrder(order) {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if order != len(b.stages) {
		b.stages = make([]Filter[F], order)
	}

	b.redesign()

	return nil
}

// Process cascades one sample through all stages.
func (b *Band[F]) Process(x F) F {
	for i := range b.stages {
		x = b.stages[i].Process(x)
	}

	return x
}

// ProcessBlock filters buf in place through the full cascade.
func (b *Band[F]) ProcessBlock(buf []F) {
	for i := range b.stages {
		b.stages[i].ProcessBlock(buf)
	}
}

// Reset clears the history of every stage.
func (b *Band[F]) Reset() {
	for i := range b.stages {
		b.stages[i].Reset()
	}
}

// Response returns the cascaded complex response at freqHz.
func (b *Band[F]) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for i := range b.stages {
		h *= b.stages[i].Response(freqHz)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (b *Band[F]) MagnitudeDB(freqHz float64) float64 {
	db := 0.0
	for i := range b.stages {
		db += b.stages[i].MagnitudeDB(freqHz)
	}

	return db
}

// Phase returns the cascaded phase response in radians, wrapped to [-pi, pi].
func (b *Band[F]) Phase(freqHz float64) float64 {
	phase := 0.0
	for i := range b.stages {
		phase += b.stages[i].Phase(freqHz)
	}

	return math.Remainder(phase, 2*math.Pi)
}

// ImpulseResponse computes n samples of the cascade's impulse response
// without touching the processing history.
func (b *Band[F]) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)
	ir[0] = 1

	for i := range b.stages {
		b.stages[i].coeffs.filterInPlace(ir)
	}

	return ir
}

func (b *Band[F]) redesign() {
	n := len(b.stages)
	stageGain := b.gainDB
	if b.kind.HasGain() {
		stageGain /= float64(n)
	}

	center := float64(n-1) / 2
	for i := range b.stages {
		s := &b.stages[i]
		s.kind = b.kind
		s.freq = b.freq * math.Exp2(StaggerOctaves*(float64(i)-center))
		s.q = b.q
		s.gainDB = stageGain
		s.sampleRate = b.sampleRate
		s.redesign()
	}
}
