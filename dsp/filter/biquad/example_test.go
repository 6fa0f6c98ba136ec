package biquad_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
)

func ExampleMakeLowpass() {
	lp := biquad.MakeLowpass[float64](1000, 48000)

	fmt.Printf("%.2f dB at cutoff\n", lp.MagnitudeDB(1000))
	fmt.Println("stable:", lp.Coefficients().IsStable())
	// Output:
	// -3.01 dB at cutoff
	// stable: true
}

func ExampleNewBand() {
	band, err := biquad.NewBand[float64](biquad.Bell, 2000, 1, 6, 48000, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("order %d, %.1f dB per stage\n", band.Order(), band.Stage(0).Gain())
	// Output:
	// order 4, 1.5 dB per stage
}

func ExampleFilter_ProcessBlock() {
	f := biquad.NewHighpass[float64](20, biquad.ButterworthQ, 48000)

	// DC offset is removed over time.
	buf := make([]float64, 48000)
	for i := range buf {
		buf[i] = 1
	}

	f.ProcessBlock(buf)
	fmt.Printf("%.4f\n", math.Abs(buf[len(buf)-1]))
	// Output:
	// 0.0000
}
