package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
)

func ExampleBuffer_Interleave() {
	b := buffer.FromSlices([]float32{0.1, 0.2}, []float32{-0.1, -0.2})
	out := make([]float32, 4)
	b.Interleave(out)
	fmt.Println(out)

	// Output:
	// [0.1 -0.1 0.2 -0.2]
}
