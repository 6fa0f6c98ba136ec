package computer_test

import (
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
)

func ExampleCompressDB() {
	for _, x := range []float64{-30, -12, 0} {
		fmt.Printf("%5.1f dB -> %6.2f dB\n", x, computer.CompressDB(x, -12, 4, 6))
	}
	// Output:
	// -30.0 dB -> -30.00 dB
	// -12.0 dB -> -12.56 dB
	//   0.0 dB ->  -9.00 dB
}

func ExampleTable() {
	c := computer.Curve[float64]{Kind: computer.Expand, Ratio: 2, Threshold: -40}
	for _, p := range computer.Table[float64](c, -60, -20, 3) {
		fmt.Printf("%.0f -> %.0f\n", p.InputDB, p.OutputDB)
	}
	// Output:
	// -60 -> -80
	// -40 -> -40
	// -20 -> -20
}
