package main

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics"
	"github.com/cwbudde/algo-dynamics/dsp/signal"
	"github.com/cwbudde/algo-dynamics/internal/cli"
)

// SignalFlags describe the synthetic test signal: a tone burst.
type SignalFlags struct {
	Tone     float64       `default:"1000" help:"Tone frequency in Hz."`
	Level    float64       `default:"-6" help:"Burst level in dBFS."`
	Start    time.Duration `default:"100ms" help:"Burst onset."`
	Stop     time.Duration `default:"600ms" help:"Burst end."`
	Duration time.Duration `default:"1.5s" help:"Total signal length."`
}

func (f SignalFlags) burst(rate float64) ([]float64, error) {
	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(rate)})

	return g.Burst(f.Tone, f.Level, f.Start.Seconds(), f.Stop.Seconds(), f.Duration.Seconds())
}

type simulateCmd struct {
	ProcessorFlags `embed:""`
	SignalFlags    `embed:""`

	Interval time.Duration `default:"50ms" help:"Time between printed rows."`
}

func (c *simulateCmd) Run(w io.Writer) error {
	x, err := c.burst(c.Rate)
	if err != nil {
		return err
	}

	p, err := newProcessor[float64](c.ProcessorFlags, 1)
	if err != nil {
		return err
	}
	defer p.Close()

	cli.PrintTitle(w, "Simulation", fmt.Sprintf("%s, %.0f Hz burst at %.1f dBFS", p.Model(), c.Tone, c.Level))

	t := cli.Table{Headers: []string{"Time", "Input dB", "Output dB", "GR dB"}}
	err = simulate(p, x, c.Rate, c.Interval, func(at time.Duration, m dynamics.Meters) {
		t.AddRow(at.Round(time.Millisecond).String(),
			cli.FormatSigned(core.LinearToDBFloor(m.InputPeak, -90), 1),
			cli.FormatSigned(core.LinearToDBFloor(m.OutputPeak, -90), 1),
			cli.FormatSigned(m.GainReductionDB, 2))
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, t.String())

	return nil
}

// simulate runs x through p in blocks of interval and reports the meters
// after each block. Meters are reset between blocks so peaks are per block.
func simulate(p *dynamics.Processor[float64], x []float64, rate float64, interval time.Duration, report func(time.Duration, dynamics.Meters)) error {
	frames := int(interval.Seconds() * rate)
	if frames < 1 {
		return fmt.Errorf("simulate: interval %s is shorter than one sample", interval)
	}

	buf := buffer.New[float64](1, frames)
	for pos := 0; pos < len(x); pos += frames {
		n := min(frames, len(x)-pos)
		buf.Resize(n)
		copy(buf.Channel(0), x[pos:pos+n])

		p.ResetMeters()
		p.Process(buf)

		report(time.Duration(float64(pos+n)/rate*float64(time.Second)), p.Meters())
	}

	return nil
}
