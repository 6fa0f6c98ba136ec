package state

import "github.com/cwbudde/algo-dynamics/dsp/core"

// Default parameter values.
const (
	DefaultAttack     = 0.010
	DefaultRelease    = 0.100
	DefaultRatio      = 4.0
	DefaultThreshold  = -12.0
	DefaultKneeWidth  = 6.0
	DefaultSampleRate = 48000.0
)

// Values is a copy of every field of a State.
type Values[F core.Float] struct {
	Attack             Timing
	Release            Timing
	Ratio              F
	Threshold          F
	KneeWidth          F
	SampleRate         F
	HasAutoRelease     bool
	AutoReleaseEnabled bool
}

// DefaultValues returns the values a new State starts with.
func DefaultValues[F core.Float]() Values[F] {
	return Values[F]{
		Attack:     Seconds(DefaultAttack),
		Release:    Seconds(DefaultRelease),
		Ratio:      DefaultRatio,
		Threshold:  DefaultThreshold,
		KneeWidth:  DefaultKneeWidth,
		SampleRate: DefaultSampleRate,
	}
}

// Option adjusts the initial values of a State.
type Option[F core.Float] func(*Values[F])

// WithValues replaces all initial values.
func WithValues[F core.Float](v Values[F]) Option[F] {
	return func(dst *Values[F]) { *dst = v }
}

// WithSampleRate sets the initial sample rate.
func WithSampleRate[F core.Float](sampleRate F) Option[F] {
	return func(v *Values[F]) {
		if sampleRate > 0 {
			v.SampleRate = sampleRate
		}
	}
}

// State is the shared parameter hub of a sidechain.
type State[F core.Float] struct {
	v Values[F]

	attackCoeff1, attackCoeff2   F
	releaseCoeff1, releaseCoeff2 F

	subs   [numFields][]subscriber[F]
	nextID uint64
}

// New returns a State initialized with the defaults and opts.
func New[F core.Float](opts ...Option[F]) *State[F] {
	st := &State[F]{v: DefaultValues[F]()}
	for _, opt := range opts {
		opt(&st.v)
	}

	if !st.v.HasAutoRelease {
		st.v.AutoReleaseEnabled = false
	}

	return st
}

// Snapshot returns a copy of all fields.
func (s *State[F]) Snapshot() Values[F] { return s.v }

func (s *State[F]) Attack() Timing           { return s.v.Attack }
func (s *State[F]) Release() Timing          { return s.v.Release }
func (s *State[F]) Ratio() F                 { return s.v.Ratio }
func (s *State[F]) Threshold() F             { return s.v.Threshold }
func (s *State[F]) KneeWidth() F             { return s.v.KneeWidth }
func (s *State[F]) SampleRate() F            { return s.v.SampleRate }
func (s *State[F]) HasAutoRelease() bool     { return s.v.HasAutoRelease }
func (s *State[F]) AutoReleaseEnabled() bool { return s.v.AutoReleaseEnabled }
func (s *State[F]) AttackCoefficient1() F    { return s.attackCoeff1 }
func (s *State[F]) AttackCoefficient2() F    { return s.attackCoeff2 }
func (s *State[F]) ReleaseCoefficient1() F   { return s.releaseCoeff1 }
func (s *State[F]) ReleaseCoefficient2() F   { return s.releaseCoeff2 }

// SetAttack stores the attack timing and notifies attack subscribers.
func (s *State[F]) SetAttack(t Timing) {
	s.v.Attack = t
	s.notify(FieldAttack)
}

// SetRelease stores the release timing and notifies release subscribers.
func (s *State[F]) SetRelease(t Timing) {
	s.v.Release = t
	s.notify(FieldRelease)
}

// SetRatio stores the ratio and notifies.
func (s *State[F]) SetRatio(ratio F) {
	s.v.Ratio = ratio
	s.notify(FieldRatio)
}

// SetThreshold stores the threshold in dB and notifies.
func (s *State[F]) SetThreshold(thresholdDB F) {
	s.v.Threshold = thresholdDB
	s.notify(FieldThreshold)
}

// SetKneeWidth stores the knee width in dB and notifies.
func (s *State[F]) SetKneeWidth(kneeDB F) {
	s.v.KneeWidth = kneeDB
	s.notify(FieldKneeWidth)
}

// SetSampleRate stores the sample rate in Hz and notifies.
func (s *State[F]) SetSampleRate(sampleRate F) {
	s.v.SampleRate = sampleRate
	s.notify(FieldSampleRate)
}

// SetHasAutoRelease marks whether the owning model offers auto release.
// Clearing it also disables auto release.
func (s *State[F]) SetHasAutoRelease(has bool) {
	s.v.HasAutoRelease = has
	s.notify(FieldHasAutoRelease)

	if !has {
		s.SetAutoReleaseEnabled(false)
	}
}

// SetAutoReleaseEnabled switches auto release on or off.
func (s *State[F]) SetAutoReleaseEnabled(enabled bool) {
	s.v.AutoReleaseEnabled = enabled
	s.notify(FieldAutoReleaseEnabled)
}

// SetAttackCoefficients stores the derived attack coefficients. Subscribers
// are not notified.
func (s *State[F]) SetAttackCoefficients(c1, c2 F) {
	s.attackCoeff1, s.attackCoeff2 = c1, c2
}

// SetReleaseCoefficients stores the derived release coefficients. Subscribers
// are not notified.
func (s *State[F]) SetReleaseCoefficients(c1, c2 F) {
	s.releaseCoeff1, s.releaseCoeff2 = c1, c2
}

// Apply dispatches e to the matching setter. Unknown fields are ignored.
func (s *State[F]) Apply(e Event[F]) {
	switch e.Field {
	case FieldAttack:
		s.SetAttack(e.Timing)
	case FieldRelease:
		s.SetRelease(e.Timing)
	case FieldRatio:
		s.SetRatio(e.Value)
	case FieldThreshold:
		s.SetThreshold(e.Value)
	case FieldKneeWidth:
		s.SetKneeWidth(e.Value)
	case FieldSampleRate:
		s.SetSampleRate(e.Value)
	case FieldHasAutoRelease:
		s.SetHasAutoRelease(e.Flag)
	case FieldAutoReleaseEnabled:
		s.SetAutoReleaseEnabled(e.Flag)
	}
}

// Event returns the current value of field as an event.
func (s *State[F]) Event(field Field) Event[F] {
	e := Event[F]{Field: field}

	switch field {
	case FieldAttack:
		e.Timing = s.v.Attack
	case FieldRelease:
		e.Timing = s.v.Release
	case FieldRatio:
		e.Value = s.v.Ratio
	case FieldThreshold:
		e.Value = s.v.Threshold
	case FieldKneeWidth:
		e.Value = s.v.KneeWidth
	case FieldSampleRate:
		e.Value = s.v.SampleRate
	case FieldHasAutoRelease:
		e.Flag = s.v.HasAutoRelease
	case FieldAutoReleaseEnabled:
		e.Flag = s.v.AutoReleaseEnabled
	}

	return e
}
