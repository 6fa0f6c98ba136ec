package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-dynamics/internal/cli"
	"github.com/cwbudde/algo-dynamics/internal/liveaudio"
	"github.com/cwbudde/algo-dynamics/internal/liveaudio/device"
	"github.com/cwbudde/algo-dynamics/internal/meter"
)

type liveCmd struct {
	ProcessorFlags `embed:""`

	Channels int  `default:"2" help:"Number of duplex channels."`
	Frames   int  `default:"256" help:"Frames per device buffer."`
	Unlinked bool `help:"Compress each channel on its own level."`
	Bypass   bool `help:"Start with processing bypassed."`
	TUI      bool `name:"tui" help:"Show the gain reduction meter instead of waiting for Enter."`
}

func (c *liveCmd) Run(w io.Writer) error {
	p, err := newProcessor[float32](c.ProcessorFlags, c.Channels)
	if err != nil {
		return err
	}
	defer p.Close()

	p.SetStereoLink(!c.Unlinked)

	duplex := liveaudio.NewDuplex(p, c.Channels, c.Frames)
	duplex.SetBypass(c.Bypass)

	stream, err := device.Open(device.Config{
		SampleRate:      c.Rate,
		Channels:        c.Channels,
		FramesPerBuffer: c.Frames,
	}, duplex)
	if err != nil {
		return err
	}
	defer stream.Close()

	info := stream.Info()
	cli.PrintTitle(w, "Live", "PortAudio "+info.Version)
	cli.PrintKV(w, "Host API", info.HostAPI)
	cli.PrintKV(w, "Input", info.Input)
	cli.PrintKV(w, "Output", info.Output)
	cli.PrintKV(w, "Sample rate", cli.FormatFrequency(info.SampleRate))
	cli.PrintKV(w, "Latency", fmt.Sprintf("%.1f ms", info.Latency*1000))
	cli.PrintKV(w, "Model", p.Model())

	if err := stream.Start(); err != nil {
		return err
	}

	if c.TUI {
		source := func() (meter.Reading, bool) {
			r := reading(p.Meters())
			p.ResetMeters()

			return r, true
		}

		_, err = tea.NewProgram(meter.NewModel("dyncomp live", 40*time.Millisecond, source), tea.WithOutput(w)).Run()
	} else {
		fmt.Fprintln(w, cli.SubtitleStyle.Render("Press Enter to stop."))
		waitForStop()
	}

	cli.PrintKV(w, "Callbacks", duplex.Callbacks())
	cli.PrintKV(w, "Overruns", duplex.Overruns())

	if stopErr := stream.Stop(); err == nil {
		err = stopErr
	}

	return err
}

// waitForStop blocks until Enter is pressed or the process is interrupted.
func waitForStop() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enter := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		close(enter)
	}()

	select {
	case <-ctx.Done():
	case <-enter:
	}
}
