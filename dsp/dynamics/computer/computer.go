package computer

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

// Compressor reads ratio, threshold and knee width from a state.
type Compressor[F core.Float] struct {
	st *state.State[F]
}

// NewCompressor binds a compressor curve to st.
func NewCompressor[F core.Float](st *state.State[F]) (*Compressor[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	return &Compressor[F]{st: st}, nil
}

func (c *Compressor[F]) Process(inputDB F) F {
	return CompressDB(inputDB, c.st.Threshold(), c.st.Ratio(), c.st.KneeWidth())
}

// Expander reads ratio, threshold and knee width from a state.
type Expander[F core.Float] struct {
	st *state.State[F]
}

// NewExpander binds an expander curve to st.
func NewExpander[F core.Float](st *state.State[F]) (*Expander[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	return &Expander[F]{st: st}, nil
}

func (e *Expander[F]) Process(inputDB F) F {
	return ExpandDB(inputDB, e.st.Threshold(), e.st.Ratio(), e.st.KneeWidth())
}

// Switchable selects the compressor or expander curve at run time.
type Switchable[F core.Float] struct {
	st   *state.State[F]
	kind Kind
}

// NewSwitchable binds a switchable curve to st.
func NewSwitchable[F core.Float](st *state.State[F], kind Kind) (*Switchable[F], error) {
	if st == nil {
		return nil, ErrNilState
	}

	return &Switchable[F]{st: st, kind: kind}, nil
}

// Kind returns the active curve.
func (s *Switchable[F]) Kind() Kind { return s.kind }

// SetKind selects the active curve.
func (s *Switchable[F]) SetKind(kind Kind) { s.kind = kind }

// Curve returns the active curve with the state's current parameters.
func (s *Switchable[F]) Curve() Curve[F] {
	return Curve[F]{
		Kind:      s.kind,
		Ratio:     s.st.Ratio(),
		Threshold: s.st.Threshold(),
		KneeWidth: s.st.KneeWidth(),
	}
}

func (s *Switchable[F]) Process(inputDB F) F {
	if s.kind == Expand {
		return ExpandDB(inputDB, s.st.Threshold(), s.st.Ratio(), s.st.KneeWidth())
	}

	return CompressDB(inputDB, s.st.Threshold(), s.st.Ratio(), s.st.KneeWidth())
}
