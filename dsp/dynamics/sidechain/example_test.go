package sidechain_test

import (
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/dynamics/sidechain"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

func ExampleSidechain_Process() {
	st := state.New[float64]()
	st.SetThreshold(-20)
	st.SetRatio(4)

	sc, err := sidechain.New(st)
	if err != nil {
		fmt.Println(err)
		return
	}

	for range 48000 {
		sc.Process(0.5) // about -6 dBFS
	}

	fmt.Printf("%.1f dB\n", sc.CurrentGainReduction())
	// Output:
	// -10.5 dB
}

func ExampleNewHardware() {
	st := state.New[float64]()

	bus, err := sidechain.NewHardware(sidechain.SSLBus, st)
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = bus.SetPreset(1) // 2:1

	fmt.Println(bus.Model(), st.Ratio(), st.AutoReleaseEnabled())
	// Output:
	// sslbus 2 true
}
