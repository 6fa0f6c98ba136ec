package biquad

import "github.com/cwbudde/algo-dynamics/dsp/core"

// Filter is a single biquad with its design parameters and Direct Form I
// history. It is not safe for concurrent use; give each channel its own.
type Filter[F core.Float] struct {
	kind       Kind
	freq       float64
	q          float64
	gainDB     float64
	sampleRate float64

	coeffs Coefficients

	// a0-normalized working copies of coeffs
	b0, b1, b2 F
	a1, a2     F

	x1, x2 F
	y1, y2 F
}

// New designs a filter of the given kind. gainDB is ignored by kinds without gain.
func New[F core.Float](kind Kind, freq, q, gainDB, sampleRate float64) *Filter[F] {
	f := &Filter[F]{
		kind:       kind,
		freq:       freq,
		q:          q,
		gainDB:     gainDB,
		sampleRate: sampleRate,
	}
	f.redesign()

	return f
}

// NewLowpass returns a second-order lowpass at freq with quality factor q.
func NewLowpass[F core.Float](freq, q, sampleRate float64) *Filter[F] {
	return New[F](Lowpass, freq, q, 0, sampleRate)
}

// MakeLowpass returns a Butterworth (Q = 1/sqrt(2)) lowpass at freq.
func MakeLowpass[F core.Float](freq, sampleRate float64) *Filter[F] {
	return New[F](Lowpass, freq, ButterworthQ, 0, sampleRate)
}

// NewHighpass returns a second-order highpass at freq with quality factor q.
func NewHighpass[F core.Float](freq, q, sampleRate float64) *Filter[F] {
	return New[F](Highpass, freq, q, 0, sampleRate)
}

// MakeHighpass returns a Butterworth (Q = 1/sqrt(2)) highpass at freq.
func MakeHighpass[F core.Float](freq, sampleRate float64) *Filter[F] {
	return New[F](Highpass, freq, ButterworthQ, 0, sampleRate)
}

// NewBandpass returns a bandpass with 0 dB peak gain at freq.
func NewBandpass[F core.Float](freq, q, sampleRate float64) *Filter[F] {
	return New[F](Bandpass, freq, q, 0, sampleRate)
}

// NewAllpass returns an allpass with its 180 degree phase point at freq.
func NewAllpass[F core.Float](freq, q, sampleRate float64) *Filter[F] {
	return New[F](Allpass, freq, q, 0, sampleRate)
}

// NewNotch returns a notch centred at freq.
func NewNotch[F core.Float](freq, q, sampleRate float64) *Filter[F] {
	return New[F](Notch, freq, q, 0, sampleRate)
}

// NewLowShelf returns a low shelf at freq with gainDB of boost or cut.
func NewLowShelf[F core.Float](freq, q, gainDB, sampleRate float64) *Filter[F] {
	return New[F](LowShelf, freq, q, gainDB, sampleRate)
}

// NewHighShelf returns a high shelf at freq with gainDB of boost or cut.
func NewHighShelf[F core.Float](freq, q, gainDB, sampleRate float64) *Filter[F] {
	return New[F](HighShelf, freq, q, gainDB, sampleRate)
}

// NewBell returns a constant-Q peaking filter.
func NewBell[F core.Float](freq, q, gainDB, sampleRate float64) *Filter[F] {
	return New[F](Bell, freq, q, gainDB, sampleRate)
}

// NewAnalogBell returns a peaking filter whose Q scales with gain.
func NewAnalogBell[F core.Float](freq, q, gainDB, sampleRate float64) *Filter[F] {
	return New[F](AnalogBell, freq, q, gainDB, sampleRate)
}

// Kind returns the filter kind.
func (f *Filter[F]) Kind() Kind { return f.kind }

// Frequency returns the design frequency in Hz.
func (f *Filter[F]) Frequency() float64 { return f.freq }

// Q returns the quality factor.
func (f *Filter[F]) Q() float64 { return f.q }

// Gain returns the design gain in dB.
func (f *Filter[F]) Gain() float64 { return f.gainDB }

// SampleRate returns the sample rate in Hz.
func (f *Filter[F]) SampleRate() float64 { return f.sampleRate }

// Coefficients returns the current unnormalized coefficients.
func (f *Filter[F]) Coefficients() Coefficients { return f.coeffs }

// SetKind changes the response shape and redesigns.
func (f *Filter[F]) SetKind(kind Kind) {
	f.kind = kind
	f.redesign()
}

// SetFrequency changes the design frequency and redesigns.
func (f *Filter[F]) SetFrequency(freq float64) {
	f.freq = freq
	f.redesign()
}

// SetQ changes the quality factor and redesigns.
func (f *Filter[F]) SetQ(q float64) {
	f.q = q
	f.redesign()
}

// SetGain changes the gain in dB and redesigns.
func (f *Filter[F]) SetGain(gainDB float64) {
	f.gainDB = gainDB
	f.redesign()
}

// SetSampleRate changes the sample rate and redesigns.
func (f *Filter[F]) SetSampleRate(sampleRate float64) {
	f.sampleRate = sampleRate
	f.redesign()
}

// Set changes frequency, Q and gain together with a single redesign.
func (f *Filter[F]) Set(freq, q, gainDB float64) {
	f.freq, f.q, f.gainDB = freq, q, gainDB
	f.redesign()
}

// Process filters one sample:
//
//	y = (b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2) / a0
func (f *Filter[F]) Process(x F) F {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2

	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, core.FlushDenormals(y)

	return y
}

// Reset clears the input/output history. Coefficients are kept.
func (f *Filter[F]) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

// History returns the delay line as [x1, x2, y1, y2].
func (f *Filter[F]) History() [4]F {
	return [4]F{f.x1, f.x2, f.y1, f.y2}
}

func (f *Filter[F]) redesign() {
	f.coeffs = Design(f.kind, f.freq, f.q, f.gainDB, f.sampleRate)
	n := f.coeffs.Normalized()

	f.b0, f.b1, f.b2 = F(n.B0), F(n.B1), F(n.B2)
	f.a1, f.a2 = F(n.A1), F(n.A2)
}
