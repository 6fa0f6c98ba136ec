package detector

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// Follower is the base envelope follower. It keeps the state's first
// attack/release coefficient pair derived from the attack, release and
// sample rate fields.
type Follower[F core.Float] struct {
	st       *state.State[F]
	topology Topology
	sub      *state.Subscription

	y     F // output history
	yTemp F // peak-hold stage of the decoupled topologies
}

// NewFollower binds a follower to st.
func NewFollower[F core.Float](st *state.State[F], topology Topology) (*Follower[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	f := &Follower[F]{st: st, topology: topology}
	f.sub = st.SubscribeAll(f.update, state.FieldAttack, state.FieldRelease, state.FieldSampleRate)

	return f, nil
}

// Topology returns the active recurrence.
func (f *Follower[F]) Topology() Topology { return f.topology }

// SetTopology switches the recurrence. History is kept.
func (f *Follower[F]) SetTopology(t Topology) { f.topology = t }

// Process advances the envelope by one sample.
func (f *Follower[F]) Process(x F) F {
	a := f.st.AttackCoefficient1()
	r := f.st.ReleaseCoefficient1()
	y1 := f.y

	var y F

	switch f.topology {
	case NonCorrected:
		y = r*y1 + (1-a)*max(x-y1, 0)
	case Decoupled:
		f.yTemp = core.FlushDenormals(max(x, r*f.yTemp))
		y = a*y1 + (1-a)*f.yTemp
	case BranchingSmooth:
		y = branchingSmooth(x, y1, a, r)
	case DecoupledSmooth:
		f.yTemp = core.FlushDenormals(max(x, r*f.yTemp+(1-r)*x))
		y = a*y1 + (1-a)*f.yTemp
	default:
		y = branching(x, y1, a, r)
	}

	f.y = core.FlushDenormals(y)

	return f.y
}

// Reset zeroes the envelope history.
func (f *Follower[F]) Reset() {
	f.y = 0
	f.yTemp = 0
}

// Detach cancels the follower's state subscriptions.
func (f *Follower[F]) Detach() { f.sub.Cancel() }

func (f *Follower[F]) update(state.Event[F]) {
	fs := f.st.SampleRate()
	attack := core.TimeCoefficient(F(f.st.Attack().Seconds), fs)
	release := core.TimeCoefficient(F(f.st.Release().Seconds), fs)

	f.st.SetAttackCoefficients(attack, f.st.AttackCoefficient2())
	f.st.SetReleaseCoefficients(release, f.st.ReleaseCoefficient2())
}
