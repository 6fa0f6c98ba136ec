package reduction

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// ErrNilState is returned when a filter is built without a state.
var ErrNilState = errors.New("reduction: state must not be nil")

// Filter adjusts a raw gain reduction signal.
type Filter[F core.Float] interface {
	// Adjust consumes the raw gain reduction in dB and returns the adjusted value.
	Adjust(rawDB F) F
	// Reset zeroes all history.
	Reset()
}

// Kind selects a Filter implementation.
type Kind int

const (
	None Kind = iota
	VCA
	FET
	Opto
)

var kindNames = [...]string{
	None: "none",
	VCA:  "vca",
	FET:  "fet",
	Opto: "opto",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind resolves a kind by name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("unknown gain reduction kind: %q", name)
}

// New builds the filter for kind bound to st.
func New[F core.Float](kind Kind, st *state.State[F]) (Filter[F], error) {
	switch kind {
	case None:
		return Bypass[F]{}, nil
	case VCA:
		return NewVCA(st)
	case FET:
		return NewFET(st)
	case Opto:
		return NewOpto(st)
	default:
		return nil, fmt.Errorf("reduction: invalid kind %d", int(kind))
	}
}

// Bypass returns the raw reduction unchanged.
type Bypass[F core.Float] struct{}

func (Bypass[F]) Adjust(rawDB F) F { return rawDB }
func (Bypass[F]) Reset()           {}

// VCATime is the smoothing time constant of the VCA model.
const VCATime = 0.0005

// VCAFilter is a one-pole smoother modelling the control-port response of a
// VCA gain cell.
type VCAFilter[F core.Float] struct {
	st  *state.State[F]
	sub *state.Subscription

	coeff F
	y     F
}

// NewVCA binds a VCA filter to st.
func NewVCA[F core.Float](st *state.State[F]) (*VCAFilter[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	f := &VCAFilter[F]{st: st}
	f.sub = st.Subscribe(state.FieldSampleRate, func(e state.Event[F]) {
		f.coeff = core.TimeCoefficient(F(VCATime), e.Value)
	})

	return f, nil
}

func (f *VCAFilter[F]) Adjust(rawDB F) F {
	f.y = core.FlushDenormals(f.coeff*f.y + (1-f.coeff)*rawDB)
	return f.y
}

func (f *VCAFilter[F]) Reset() { f.y = 0 }

// Detach cancels the sample rate subscription.
func (f *VCAFilter[F]) Detach() { f.sub.Cancel() }

// FET model constants.
const (
	FETTime     = 50e-6
	FETMaxDepth = 48.0 // dB, asymptotic reduction limit
)

// FETFilter smooths the reduction with a fast pole and saturates its depth
// softly toward FETMaxDepth.
type FETFilter[F core.Float] struct {
	st  *state.State[F]
	sub *state.Subscription

	coeff F
	y     F
}

// NewFET binds a FET filter to st.
func NewFET[F core.Float](st *state.State[F]) (*FETFilter[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	f := &FETFilter[F]{st: st}
	f.sub = st.Subscribe(state.FieldSampleRate, func(e state.Event[F]) {
		f.coeff = core.TimeCoefficient(F(FETTime), e.Value)
	})

	return f, nil
}

func (f *FETFilter[F]) Adjust(rawDB F) F {
	f.y = core.FlushDenormals(f.coeff*f.y + (1-f.coeff)*rawDB)
	return saturate(f.y, FETMaxDepth)
}

func (f *FETFilter[F]) Reset() { f.y = 0 }

// Detach cancels the sample rate subscription.
func (f *FETFilter[F]) Detach() { f.sub.Cancel() }

func saturate[F core.Float](db F, depth float64) F {
	return F(depth * math.Tanh(float64(db)/depth))
}

// Opto model constants. The release time slides from OptoFastRelease to
// OptoSlowRelease as the cell's memory approaches OptoMemoryDepth dB.
const (
	OptoAttack      = 0.010
	OptoFastRelease = 0.060
	OptoSlowRelease = 2.0
	OptoMemoryTime  = 1.0
	OptoMemoryDepth = 12.0
)

// OptoFilter models an electro-optical cell whose release slows down after
// sustained reduction.
type OptoFilter[F core.Float] struct {
	st  *state.State[F]
	sub *state.Subscription

	fs          F
	attackCoeff F
	memoryCoeff F
	y           F // applied reduction, <= 0
	memory      F // averaged reduction depth, >= 0
}

// NewOpto binds an opto filter to st.
func NewOpto[F core.Float](st *state.State[F]) (*OptoFilter[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	f := &OptoFilter[F]{st: st}
	f.sub = st.Subscribe(state.FieldSampleRate, func(e state.Event[F]) {
		f.fs = e.Value
		f.attackCoeff = core.TimeCoefficient(F(OptoAttack), e.Value)
		f.memoryCoeff = core.TimeCoefficient(F(OptoMemoryTime), e.Value)
	})

	return f, nil
}

// ReleaseTime returns the current program-dependent release time in seconds.
func (f *OptoFilter[F]) ReleaseTime() F {
	amount := core.Clamp(f.memory/OptoMemoryDepth, 0, 1)
	return OptoFastRelease + (OptoSlowRelease-OptoFastRelease)*amount
}

func (f *OptoFilter[F]) Adjust(rawDB F) F {
	coeff := f.attackCoeff
	if rawDB > f.y {
		coeff = core.TimeCoefficient(f.ReleaseTime(), f.fs)
	}

	f.y = core.FlushDenormals(coeff*f.y + (1-coeff)*rawDB)
	f.memory = core.FlushDenormals(f.memoryCoeff*f.memory + (1-f.memoryCoeff)*max(-f.y, 0))

	return f.y
}

func (f *OptoFilter[F]) Reset() {
	f.y = 0
	f.memory = 0
}

// Detach cancels the sample rate subscription.
func (f *OptoFilter[F]) Detach() { f.sub.Cancel() }
