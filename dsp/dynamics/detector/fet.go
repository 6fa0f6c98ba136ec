package detector

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// FETSmoothing is the time constant of the fixed output pole of the FET
// detector network.
const FETSmoothing = 200e-6

// FET models a two-stage FET detector: a branching-smooth stage driven by the
// user attack/release followed by a fixed fast smoothing pole. With auto
// release enabled the first stage becomes a dual-stage network.
type FET[F core.Float] struct {
	st     *state.State[F]
	cfg    AutoReleaseConfig
	weight F
	sub    *state.Subscription

	smooth F // output pole coefficient

	temp F
	dual dualStage[F]
	y    F
}

// NewFET binds a FET detector to st. cfg is used for the auto release step.
func NewFET[F core.Float](st *state.State[F], cfg AutoReleaseConfig) (*FET[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	d := &FET[F]{
		st:     st,
		cfg:    cfg,
		weight: core.Clamp(F(cfg.Weight), 0, 1),
	}
	d.sub = st.SubscribeAll(d.update,
		state.FieldAttack, state.FieldRelease, state.FieldSampleRate, state.FieldAutoReleaseEnabled)

	return d, nil
}

// Process advances the envelope by one sample.
func (d *FET[F]) Process(x F) F {
	a1, r1 := d.st.AttackCoefficient1(), d.st.ReleaseCoefficient1()

	var stage F
	if d.st.AutoReleaseEnabled() {
		stage = d.dual.process(x, d.weight, a1, r1, d.st.AttackCoefficient2(), d.st.ReleaseCoefficient2())
	} else {
		d.temp = core.FlushDenormals(branchingSmooth(x, d.temp, a1, r1))
		stage = d.temp
	}

	d.y = core.FlushDenormals(d.smooth*d.y + (1-d.smooth)*stage)

	return d.y
}

// Reset zeroes every stage.
func (d *FET[F]) Reset() {
	d.temp, d.y = 0, 0
	d.dual.reset()
}

// Detach cancels the detector's state subscriptions.
func (d *FET[F]) Detach() { d.sub.Cancel() }

func (d *FET[F]) update(state.Event[F]) {
	autoCoefficients(d.st, d.cfg)
	d.smooth = core.TimeCoefficient(F(FETSmoothing), d.st.SampleRate())
}
