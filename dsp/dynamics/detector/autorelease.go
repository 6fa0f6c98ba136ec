package detector

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// AutoReleaseConfig describes a dual-stage release network. The fast stage
// carries Weight of the input and releases with FastRelease; the slow stage
// carries the remainder, attacks AttackMultiplier times slower than the user
// attack and releases with SlowRelease.
type AutoReleaseConfig struct {
	FastRelease      float64
	SlowRelease      float64
	AttackMultiplier float64
	Weight           float64
}

// SSLAutoRelease approximates the program-dependent release of a classic
// console bus compressor.
var SSLAutoRelease = AutoReleaseConfig{
	FastRelease:      0.043,
	SlowRelease:      2.0,
	AttackMultiplier: 14.47,
	Weight:           0.5,
}

// ModernAutoRelease has the same fast stage with a much longer tail.
var ModernAutoRelease = AutoReleaseConfig{
	FastRelease:      0.043,
	SlowRelease:      5.1,
	AttackMultiplier: 14.47,
	Weight:           0.5,
}

type dualStage[F core.Float] struct {
	fast, slow F
}

func (d *dualStage[F]) process(x, weight, a1, r1, a2, r2 F) F {
	d.fast = core.FlushDenormals(branching(weight*x, d.fast, a1, r1))
	d.slow = core.FlushDenormals(branching((1-weight)*x, d.slow, a2, r2))

	return d.fast + d.slow
}

func (d *dualStage[F]) reset() {
	d.fast, d.slow = 0, 0
}

// autoCoefficients derives both coefficient pairs. With auto release off the
// first pair follows the user release.
func autoCoefficients[F core.Float](st *state.State[F], cfg AutoReleaseConfig) {
	fs := st.SampleRate()
	attack := st.Attack().Seconds

	release1 := st.Release().Seconds
	if st.AutoReleaseEnabled() {
		release1 = cfg.FastRelease
	}

	st.SetAttackCoefficients(
		core.TimeCoefficient(F(attack), fs),
		core.TimeCoefficient(F(attack*cfg.AttackMultiplier), fs),
	)
	st.SetReleaseCoefficients(
		core.TimeCoefficient(F(release1), fs),
		core.TimeCoefficient(F(cfg.SlowRelease), fs),
	)
}

// AutoRelease is a branching detector that switches to a dual-stage network
// while the state's auto release is enabled. The two stages run in parallel
// on complementary shares of the input and their outputs are summed.
type AutoRelease[F core.Float] struct {
	st     *state.State[F]
	cfg    AutoReleaseConfig
	weight F
	sub    *state.Subscription

	dual dualStage[F]
}

// NewAutoRelease binds an auto-release detector to st.
func NewAutoRelease[F core.Float](st *state.State[F], cfg AutoReleaseConfig) (*AutoRelease[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	d := &AutoRelease[F]{
		st:     st,
		cfg:    cfg,
		weight: core.Clamp(F(cfg.Weight), 0, 1),
	}
	d.sub = st.SubscribeAll(d.update,
		state.FieldAttack, state.FieldRelease, state.FieldSampleRate, state.FieldAutoReleaseEnabled)

	return d, nil
}

// Config returns the release network constants.
func (d *AutoRelease[F]) Config() AutoReleaseConfig { return d.cfg }

// Process advances the envelope by one sample.
func (d *AutoRelease[F]) Process(x F) F {
	a1, r1 := d.st.AttackCoefficient1(), d.st.ReleaseCoefficient1()

	if !d.st.AutoReleaseEnabled() {
		d.dual.slow = 0
		d.dual.fast = core.FlushDenormals(branching(x, d.dual.fast, a1, r1))

		return d.dual.fast
	}

	return d.dual.process(x, d.weight, a1, r1, d.st.AttackCoefficient2(), d.st.ReleaseCoefficient2())
}

// Reset zeroes both stages.
func (d *AutoRelease[F]) Reset() { d.dual.reset() }

// Detach cancels the detector's state subscriptions.
func (d *AutoRelease[F]) Detach() { d.sub.Cancel() }

func (d *AutoRelease[F]) update(state.Event[F]) {
	autoCoefficients(d.st, d.cfg)
}
