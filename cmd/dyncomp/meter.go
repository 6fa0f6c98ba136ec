package main

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics"
	"github.com/cwbudde/algo-dynamics/internal/meter"
)

const meterFloorDB = -60

type meterCmd struct {
	ProcessorFlags `embed:""`
	SignalFlags    `embed:""`

	Interval time.Duration `default:"40ms" help:"Meter refresh interval; one interval of signal is processed per frame."`
	Loop     bool          `help:"Repeat the signal until q is pressed."`
}

func (c *meterCmd) Run(w io.Writer) error {
	x, err := c.burst(c.Rate)
	if err != nil {
		return err
	}

	p, err := newProcessor[float64](c.ProcessorFlags, 1)
	if err != nil {
		return err
	}
	defer p.Close()

	source := blockSource(p, x, int(c.Interval.Seconds()*c.Rate), c.Loop)
	model := meter.NewModel("dyncomp "+p.Model().String(), c.Interval, source)

	_, err = tea.NewProgram(model, tea.WithOutput(w)).Run()

	return err
}

// blockSource returns a meter source that processes the next frames
// samples of x per call.
func blockSource(p *dynamics.Processor[float64], x []float64, frames int, loop bool) meter.Source {
	frames = max(frames, 1)
	buf := buffer.New[float64](1, frames)
	pos := 0

	return func() (meter.Reading, bool) {
		if pos >= len(x) {
			if !loop || len(x) == 0 {
				return meter.Reading{}, false
			}

			pos = 0
		}

		n := min(frames, len(x)-pos)
		buf.Resize(n)
		copy(buf.Channel(0), x[pos:pos+n])
		pos += n

		p.ResetMeters()
		p.Process(buf)

		return reading(p.Meters()), true
	}
}

func reading(m dynamics.Meters) meter.Reading {
	return meter.Reading{
		GainReductionDB: m.GainReductionDB,
		InputDB:         core.LinearToDBFloor(m.InputPeak, meterFloorDB),
		OutputDB:        core.LinearToDBFloor(m.OutputPeak, meterFloorDB),
	}
}
