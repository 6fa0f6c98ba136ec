//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 4x-unrolled scalar Direct Form I kernel selected for
// AVX2-capable CPUs.
func processBlock(c registry.Coefficients, h *registry.History, buf []float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := h.X1, h.X2, h.Y1, h.Y2

	i := 0

	n := len(buf)
	for ; i+3 < n; i += 4 {
		in0, in1, in2, in3 := buf[i], buf[i+1], buf[i+2], buf[i+3]

		out0 := b0*in0 + b1*x1 + b2*x2 - a1*y1 - a2*y2
		out1 := b0*in1 + b1*in0 + b2*x1 - a1*out0 - a2*y1
		out2 := b0*in2 + b1*in1 + b2*in0 - a1*out1 - a2*out0
		out3 := b0*in3 + b1*in2 + b2*in1 - a1*out2 - a2*out1

		buf[i], buf[i+1], buf[i+2], buf[i+3] = out0, out1, out2, out3

		x2, x1 = in2, in3
		y2, y1 = out2, out3
	}

	for ; i < n; i++ {
		x0 := buf[i]
		y0 := b0*x0 + b1*x1 + b2*x2 - a1*y1 - a2*y2
		buf[i] = y0

		x2, x1 = x1, x0
		y2, y1 = y1, y0
	}

	h.X1, h.X2, h.Y1, h.Y2 = x1, x2, y1, y2
}
