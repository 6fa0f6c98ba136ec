package detector

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// RMSTimeFactor scales the release time into the RMS averaging time.
const RMSTimeFactor = 2.0

// RMS squares the envelope of a base detector, low-passes the square with its
// own coefficient and returns the square root.
type RMS[F core.Float] struct {
	base Detector[F]
	st   *state.State[F]
	sub  *state.Subscription

	coeff F
	mean  F
}

// NewRMS wraps base. The averaging time tracks RMSTimeFactor times the
// state's release time.
func NewRMS[F core.Float](st *state.State[F], base Detector[F]) (*RMS[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	d := &RMS[F]{base: base, st: st}
	d.sub = st.SubscribeAll(d.update, state.FieldRelease, state.FieldSampleRate)

	return d, nil
}

// Base returns the wrapped detector.
func (d *RMS[F]) Base() Detector[F] { return d.base }

// Coefficient returns the averaging coefficient.
func (d *RMS[F]) Coefficient() F { return d.coeff }

// Process advances the base detector and the RMS average by one sample.
func (d *RMS[F]) Process(x F) F {
	env := d.base.Process(x)
	d.mean = core.FlushDenormals(d.coeff*d.mean + (1-d.coeff)*env*env)

	return core.Sqrt(d.mean)
}

// Reset zeroes the average and the base detector.
func (d *RMS[F]) Reset() {
	d.mean = 0
	d.base.Reset()
}

// Detach cancels the RMS subscriptions. The base detector is not detached.
func (d *RMS[F]) Detach() { d.sub.Cancel() }

func (d *RMS[F]) update(state.Event[F]) {
	d.coeff = core.TimeCoefficient(F(RMSTimeFactor*d.st.Release().Seconds), d.st.SampleRate())
}
