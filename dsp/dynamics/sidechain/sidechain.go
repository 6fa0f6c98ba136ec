package sidechain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/detector"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/reduction"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
)

const (
	// GainReductionFloorDB bounds the accumulated feedback gain reduction.
	GainReductionFloorDB = -96.0

	// LevelFloorDB is the lowest level the detector path reports.
	LevelFloorDB = -120.0
)

// ErrNilState is returned when a sidechain is built without a state.
var ErrNilState = errors.New("sidechain: state must not be nil")

type detacher interface {
	Detach()
}

// Sidechain computes the gain for one channel. It is not safe for concurrent
// use; give each channel its own instance and share only the state.
type Sidechain[F core.Float] struct {
	st  *state.State[F]
	det detector.Detector[F]
	cmp *computer.Switchable[F]
	red reduction.Filter[F]

	filter    *biquad.Filter[F]
	filterSub *state.Subscription

	computerTopology ComputerTopology
	detectorTopology DetectorTopology

	grDB F

	detachers []detacher
}

// New builds a sidechain bound to st.
func New[F core.Float](st *state.State[F], opts ...Option) (*Sidechain[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var det detector.Detector[F]

	follower, err := detector.NewFollower(st, cfg.Envelope)
	if err != nil {
		return nil, err
	}

	det = follower
	detachers := []detacher{follower}

	if cfg.RMS {
		rms, err := detector.NewRMS[F](st, follower)
		if err != nil {
			return nil, err
		}

		det = rms
		detachers = append(detachers, rms)
	}

	s, err := assemble(st, det, cfg.Dynamics, cfg.Reduction)
	if err != nil {
		return nil, err
	}

	s.detachers = append(detachers, s.detachers...)
	s.computerTopology = cfg.ComputerTopology
	s.detectorTopology = cfg.DetectorTopology

	if cfg.Filter != nil {
		s.SetFilter(*cfg.Filter)
	}

	return s, nil
}

func assemble[F core.Float](
	st *state.State[F], det detector.Detector[F], dynamics computer.Kind, red reduction.Kind,
) (*Sidechain[F], error) {
	cmp, err := computer.NewSwitchable(st, dynamics)
	if err != nil {
		return nil, err
	}

	rf, err := reduction.New(red, st)
	if err != nil {
		return nil, fmt.Errorf("sidechain: %w", err)
	}

	s := &Sidechain[F]{
		st:  st,
		det: det,
		cmp: cmp,
		red: rf,
	}

	if d, ok := rf.(detacher); ok {
		s.detachers = append(s.detachers, d)
	}

	return s, nil
}

// State returns the shared parameter state.
func (s *Sidechain[F]) State() *state.State[F] { return s.st }

// Detector returns the envelope detector.
func (s *Sidechain[F]) Detector() detector.Detector[F] { return s.det }

// Computer returns the switchable gain computer.
func (s *Sidechain[F]) Computer() *computer.Switchable[F] { return s.cmp }

// ComputerTopology returns the active computer topology.
func (s *Sidechain[F]) ComputerTopology() ComputerTopology { return s.computerTopology }

// SetComputerTopology switches between feedforward and feedback. The
// feedback memory is cleared.
func (s *Sidechain[F]) SetComputerTopology(t ComputerTopology) {
	if t != s.computerTopology {
		s.grDB = 0
	}

	s.computerTopology = t
}

// DetectorTopology returns the active detector topology.
func (s *Sidechain[F]) DetectorTopology() DetectorTopology { return s.detectorTopology }

// SetDetectorTopology switches the detector operating point. Detector
// history is cleared because its meaning changes.
func (s *Sidechain[F]) SetDetectorTopology(t DetectorTopology) {
	if t != s.detectorTopology {
		s.det.Reset()
	}

	s.detectorTopology = t
}

// DynamicsType returns whether the sidechain compresses or expands.
func (s *Sidechain[F]) DynamicsType() computer.Kind { return s.cmp.Kind() }

// SetDynamicsType selects compression or expansion.
func (s *Sidechain[F]) SetDynamicsType(kind computer.Kind) { s.cmp.SetKind(kind) }

// Filter returns the conditioning filter, or nil.
func (s *Sidechain[F]) Filter() *biquad.Filter[F] { return s.filter }

// SetFilter installs or redesigns the conditioning filter. The filter follows
// the state's sample rate.
func (s *Sidechain[F]) SetFilter(cfg FilterConfig) {
	if s.filter == nil {
		s.filter = biquad.New[F](cfg.Kind, cfg.Frequency, cfg.Q, cfg.GainDB, float64(s.st.SampleRate()))
		s.filterSub = s.st.Subscribe(state.FieldSampleRate, func(e state.Event[F]) {
			if s.filter != nil {
				s.filter.SetSampleRate(float64(e.Value))
			}
		})

		return
	}

	s.filter.SetKind(cfg.Kind)
	s.filter.Set(cfg.Frequency, cfg.Q, cfg.GainDB)
}

// ClearFilter removes the conditioning filter.
func (s *Sidechain[F]) ClearFilter() {
	s.filterSub.Cancel()
	s.filterSub = nil
	s.filter = nil
}

// CurrentGainReduction returns the last gain reduction in dB (zero or
// negative for a compressor).
func (s *Sidechain[F]) CurrentGainReduction() F { return s.grDB }

// Process consumes one input sample and returns the linear gain for it.
func (s *Sidechain[F]) Process(x F) F {
	if s.filter != nil {
		x = s.filter.Process(x)
	}

	rect := x
	if rect < 0 {
		rect = -rect
	}

	if s.computerTopology == FeedBack {
		rect *= core.DBToLinear(s.grDB)
	}

	switch s.detectorTopology {
	case ReturnToThreshold:
		thr := core.DBToLinear(s.st.Threshold())
		level := s.det.Process(rect-thr) + thr
		s.update(s.rawReduction(level), rect)
	case AlternateReturnToThreshold:
		rectDB := core.LinearToDBFloor(rect, LevelFloorDB)
		raw := s.cmp.Process(rectDB) - rectDB
		depth := s.det.Process(-raw)
		s.grDB = s.red.Adjust(-depth)
	default:
		level := s.det.Process(rect)
		s.update(s.rawReduction(level), rect)
	}

	return core.DBToLinear(s.grDB)
}

// Reset clears the detector, the reduction filter, the conditioning filter
// and the feedback memory. Parameters are kept.
func (s *Sidechain[F]) Reset() {
	s.det.Reset()
	s.red.Reset()

	if s.filter != nil {
		s.filter.Reset()
	}

	s.grDB = 0
}

// Detach cancels every state subscription held by the sidechain and its
// components.
func (s *Sidechain[F]) Detach() {
	for _, d := range s.detachers {
		d.Detach()
	}

	s.filterSub.Cancel()
}

func (s *Sidechain[F]) rawReduction(level F) F {
	levelDB := core.LinearToDBFloor(level, LevelFloorDB)
	return s.cmp.Process(levelDB) - levelDB
}

// update stores the adjusted reduction. Feedforward replaces it.
//
// Feedback integrates it within [GainReductionFloorDB, 0]. While the detector
// asks for reduction, the step is limited to what the instantaneous level
// still needs, so a lagging envelope cannot drive the loop past the knee.
// Once the detector asks for none, the reduction releases toward 0 dB with
// the release coefficient.
func (s *Sidechain[F]) update(raw, rect F) {
	if s.computerTopology != FeedBack {
		s.grDB = s.red.Adjust(raw)
		return
	}

	step := max(raw, s.rawReduction(rect))
	adjusted := s.red.Adjust(step)

	switch {
	case raw >= 0:
		s.grDB -= (1 - s.st.ReleaseCoefficient1()) * s.grDB
	case step < 0:
		s.grDB += adjusted
	}

	s.grDB = core.FlushDenormals(core.Clamp(s.grDB, GainReductionFloorDB, 0))
}
