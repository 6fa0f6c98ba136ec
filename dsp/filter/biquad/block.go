//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-dynamics/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// ProcessBlock filters buf in place. float64 filters run through the kernel
// selected for the host CPU; other sample types use the scalar path.
// Zero-alloc.
func (f *Filter[F]) ProcessBlock(buf []F) {
	if b, ok := any(buf).([]float64); ok {
		f.processBlock64(b)
		return
	}

	for i, x := range buf {
		buf[i] = f.Process(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter[F]) ProcessBlockTo(dst, src []F) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.Process(x)
	}
}

func (f *Filter[F]) processBlock64(buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: float64(f.b0),
		B1: float64(f.b1),
		B2: float64(f.b2),
		A1: float64(f.a1),
		A2: float64(f.a2),
	}
	h := archregistry.History{
		X1: float64(f.x1), X2: float64(f.x2),
		Y1: float64(f.y1), Y2: float64(f.y2),
	}

	processBlockImpl(coeffs, &h, buf)

	f.x1, f.x2 = F(h.X1), F(h.X2)
	f.y1, f.y2 = F(h.Y1), F(h.Y2)
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}
