package sidechain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/detector"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/reduction"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

var (
	// ErrNotHardware is returned by NewHardware for the Generic model.
	ErrNotHardware = errors.New("sidechain: model has no hardware profile")
	// ErrStepOutOfRange is returned for preset or step indices outside the
	// model's tables.
	ErrStepOutOfRange = errors.New("sidechain: step out of range")
)

// Model selects a modelled unit. Generic is the continuously adjustable
// sidechain built by New.
type Model int

const (
	Generic Model = iota
	FET1176
	SSLBus
	ModernBus
)

var modelNames = [...]string{
	Generic:   "generic",
	FET1176:   "fet1176",
	SSLBus:    "sslbus",
	ModernBus: "modernbus",
}

func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("Model(%d)", int(m))
	}

	return modelNames[m]
}

// ParseModel resolves a model by name (case-insensitive).
func ParseModel(name string) (Model, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modelNames {
		if n == name {
			return Model(i), nil
		}
	}

	return 0, fmt.Errorf("unknown model: %q", name)
}

// Models lists every model, Generic first.
func Models() []Model {
	return []Model{Generic, FET1176, SSLBus, ModernBus}
}

// Profile is the fixed configuration of a hardware model. The last release
// step is the auto (dual-stage) release.
type Profile struct {
	ComputerTopology ComputerTopology
	DetectorTopology DetectorTopology
	Reduction        reduction.Kind
	AutoRelease      detector.AutoReleaseConfig

	Presets      []computer.Curve[float64]
	AttackSteps  []float64 // seconds
	ReleaseSteps []float64 // seconds; the last entry is a placeholder for Auto

	DefaultPreset  int
	DefaultAttack  int
	DefaultRelease int
}

// AutoStep returns the index of the auto release step.
func (p Profile) AutoStep() int { return len(p.ReleaseSteps) - 1 }

var profiles = map[Model]Profile{
	FET1176: {
		ComputerTopology: FeedBack,
		DetectorTopology: ReturnToZero,
		Reduction:        reduction.FET,
		AutoRelease:      detector.SSLAutoRelease,
		Presets: []computer.Curve[float64]{
			{Kind: computer.Compress, Ratio: 4, Threshold: -18, KneeWidth: 6},
			{Kind: computer.Compress, Ratio: 8, Threshold: -15, KneeWidth: 4},
			{Kind: computer.Compress, Ratio: 12, Threshold: -12, KneeWidth: 3},
			{Kind: computer.Compress, Ratio: 20, Threshold: -10, KneeWidth: 2},
			// all buttons in
			{Kind: computer.Compress, Ratio: 30, Threshold: -14, KneeWidth: 10},
		},
		AttackSteps:    []float64{20e-6, 50e-6, 100e-6, 200e-6, 400e-6, 800e-6},
		ReleaseSteps:   []float64{0.05, 0.15, 0.4, 1.1, detector.SSLAutoRelease.FastRelease},
		DefaultPreset:  0,
		DefaultAttack:  2,
		DefaultRelease: 2,
	},
	SSLBus: {
		ComputerTopology: FeedForward,
		DetectorTopology: AlternateReturnToThreshold,
		Reduction:        reduction.VCA,
		AutoRelease:      detector.SSLAutoRelease,
		Presets: []computer.Curve[float64]{
			{Kind: computer.Compress, Ratio: 1.5, Threshold: -10, KneeWidth: 6},
			{Kind: computer.Compress, Ratio: 2, Threshold: -12, KneeWidth: 6},
			{Kind: computer.Compress, Ratio: 3, Threshold: -14, KneeWidth: 4},
			{Kind: computer.Compress, Ratio: 4, Threshold: -16, KneeWidth: 4},
			{Kind: computer.Compress, Ratio: 10, Threshold: -20, KneeWidth: 2},
		},
		AttackSteps:    []float64{0.1e-3, 0.3e-3, 1e-3, 3e-3, 10e-3, 30e-3},
		ReleaseSteps:   []float64{0.1, 0.3, 0.6, 1.2, detector.SSLAutoRelease.FastRelease},
		DefaultPreset:  3,
		DefaultAttack:  4,
		DefaultRelease: 4,
	},
	ModernBus: {
		ComputerTopology: FeedForward,
		DetectorTopology: AlternateReturnToThreshold,
		Reduction:        reduction.VCA,
		AutoRelease:      detector.ModernAutoRelease,
		Presets: []computer.Curve[float64]{
			{Kind: computer.Compress, Ratio: 1.5, Threshold: -8, KneeWidth: 10},
			{Kind: computer.Compress, Ratio: 2, Threshold: -10, KneeWidth: 8},
			{Kind: computer.Compress, Ratio: 4, Threshold: -14, KneeWidth: 6},
			{Kind: computer.Compress, Ratio: 6, Threshold: -16, KneeWidth: 4},
			{Kind: computer.Compress, Ratio: 10, Threshold: -20, KneeWidth: 2},
		},
		AttackSteps:    []float64{0.1e-3, 0.3e-3, 1e-3, 3e-3, 10e-3, 30e-3},
		ReleaseSteps:   []float64{0.1, 0.3, 0.6, 1.2, detector.ModernAutoRelease.FastRelease},
		DefaultPreset:  2,
		DefaultAttack:  3,
		DefaultRelease: 4,
	},
}

// ProfileOf returns the hardware profile of m.
func ProfileOf(m Model) (Profile, error) {
	p, ok := profiles[m]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrNotHardware, m)
	}

	return p, nil
}

// PresetEvents returns the state changes that select preset i of m.
func PresetEvents[F core.Float](m Model, i int) ([]state.Event[F], error) {
	p, err := ProfileOf(m)
	if err != nil {
		return nil, err
	}

	if i < 0 || i >= len(p.Presets) {
		return nil, fmt.Errorf("%w: preset %d of %d", ErrStepOutOfRange, i, len(p.Presets))
	}

	c := p.Presets[i]

	return []state.Event[F]{
		state.ValueEvent(state.FieldRatio, F(c.Ratio)),
		state.ValueEvent(state.FieldThreshold, F(c.Threshold)),
		state.ValueEvent(state.FieldKneeWidth, F(c.KneeWidth)),
	}, nil
}

// AttackStepEvents returns the state changes that select attack step i of m.
func AttackStepEvents[F core.Float](m Model, i int) ([]state.Event[F], error) {
	p, err := ProfileOf(m)
	if err != nil {
		return nil, err
	}

	if i < 0 || i >= len(p.AttackSteps) {
		return nil, fmt.Errorf("%w: attack step %d of %d", ErrStepOutOfRange, i, len(p.AttackSteps))
	}

	return []state.Event[F]{
		state.AttackEvent[F](state.Stepped(i, p.AttackSteps[i])),
	}, nil
}

// ReleaseStepEvents returns the state changes that select release step i of
// m. The auto step enables the dual-stage release.
func ReleaseStepEvents[F core.Float](m Model, i int) ([]state.Event[F], error) {
	p, err := ProfileOf(m)
	if err != nil {
		return nil, err
	}

	if i < 0 || i >= len(p.ReleaseSteps) {
		return nil, fmt.Errorf("%w: release step %d of %d", ErrStepOutOfRange, i, len(p.ReleaseSteps))
	}

	return []state.Event[F]{
		state.ReleaseEvent[F](state.Stepped(i, p.ReleaseSteps[i])),
		state.FlagEvent[F](state.FieldAutoReleaseEnabled, i == p.AutoStep()),
	}, nil
}

// Hardware is a sidechain frozen to a modelled unit. Only the quantized
// preset, attack and release controls are exposed.
type Hardware[F core.Float] struct {
	sc      *Sidechain[F]
	model   Model
	profile Profile

	preset, attack, release int
}

// NewHardware builds the sidechain of model m bound to st and selects the
// model's default steps.
func NewHardware[F core.Float](m Model, st *state.State[F]) (*Hardware[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	p, err := ProfileOf(m)
	if err != nil {
		return nil, err
	}

	st.SetHasAutoRelease(true)

	var det detector.Detector[F]

	switch m {
	case FET1176:
		det, err = detector.NewFET(st, p.AutoRelease)
	default:
		det, err = detector.NewAutoRelease(st, p.AutoRelease)
	}

	if err != nil {
		return nil, err
	}

	sc, err := assemble(st, det, computer.Compress, p.Reduction)
	if err != nil {
		return nil, err
	}

	if d, ok := det.(detacher); ok {
		sc.detachers = append(sc.detachers, d)
	}

	sc.computerTopology = p.ComputerTopology
	sc.detectorTopology = p.DetectorTopology

	h := &Hardware[F]{sc: sc, model: m, profile: p}

	if err := h.SetPreset(p.DefaultPreset); err != nil {
		return nil, err
	}

	if err := h.SetAttackStep(p.DefaultAttack); err != nil {
		return nil, err
	}

	if err := h.SetReleaseStep(p.DefaultRelease); err != nil {
		return nil, err
	}

	return h, nil
}

// Model returns the modelled unit.
func (h *Hardware[F]) Model() Model { return h.model }

// Profile returns the model's fixed configuration.
func (h *Hardware[F]) Profile() Profile { return h.profile }

// State returns the shared parameter state.
func (h *Hardware[F]) State() *state.State[F] { return h.sc.st }

// Preset returns the selected preset index.
func (h *Hardware[F]) Preset() int { return h.preset }

// AttackStep returns the selected attack step.
func (h *Hardware[F]) AttackStep() int { return h.attack }

// ReleaseStep returns the selected release step.
func (h *Hardware[F]) ReleaseStep() int { return h.release }

// SetPreset selects one of the model's ratio/threshold/knee presets.
func (h *Hardware[F]) SetPreset(i int) error {
	events, err := PresetEvents[F](h.model, i)
	if err != nil {
		return err
	}

	h.apply(events)
	h.preset = i

	return nil
}

// SetAttackStep selects one of the model's attack times.
func (h *Hardware[F]) SetAttackStep(i int) error {
	events, err := AttackStepEvents[F](h.model, i)
	if err != nil {
		return err
	}

	h.apply(events)
	h.attack = i

	return nil
}

// SetReleaseStep selects one of the model's release times. The last step
// is the auto release.
func (h *Hardware[F]) SetReleaseStep(i int) error {
	events, err := ReleaseStepEvents[F](h.model, i)
	if err != nil {
		return err
	}

	h.apply(events)
	h.release = i

	return nil
}

// Process consumes one input sample and returns the linear gain for it.
func (h *Hardware[F]) Process(x F) F { return h.sc.Process(x) }

// CurrentGainReduction returns the last gain reduction in dB.
func (h *Hardware[F]) CurrentGainReduction() F { return h.sc.CurrentGainReduction() }

// Reset clears all history. The selected steps are kept.
func (h *Hardware[F]) Reset() { h.sc.Reset() }

// Detach cancels every state subscription.
func (h *Hardware[F]) Detach() { h.sc.Detach() }

func (h *Hardware[F]) apply(events []state.Event[F]) {
	for _, e := range events {
		h.sc.st.Apply(e)
	}
}
