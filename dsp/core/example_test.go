package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
		core.WithChannels(1),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=1
}

func ExampleLinearToDBFloor() {
	fmt.Printf("%.1f\n", core.LinearToDBFloor(0.5, -120.0))
	fmt.Printf("%.1f\n", core.LinearToDBFloor(0.0, -120.0))

	// Output:
	// -6.0
	// -120.0
}
