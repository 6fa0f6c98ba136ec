package detector_test

import (
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/dynamics/detector"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

func ExampleFollower() {
	st := state.New[float64]()
	st.SetAttack(state.Milliseconds(1))

	env, err := detector.NewFollower(st, detector.BranchingSmooth)
	if err != nil {
		fmt.Println(err)
		return
	}

	var y float64
	for range 4800 { // 100 ms at 48 kHz
		y = env.Process(0.5)
	}

	fmt.Printf("%.3f\n", y)
	// Output:
	// 0.500
}
