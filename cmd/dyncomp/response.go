package main

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/eq"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
	"github.com/cwbudde/algo-dynamics/internal/cli"
)

type responseCmd struct {
	Kind   string  `default:"bell" help:"Filter kind: lowpass, highpass, bandpass, allpass, notch, lowshelf, highshelf, bell, analogbell."`
	Freq   float64 `default:"1000" help:"Center or corner frequency in Hz."`
	Q      float64 `default:"0.7071" help:"Quality factor."`
	Gain   float64 `default:"0" help:"Gain in dB for shelving and peaking kinds."`
	Order  int     `default:"1" help:"Number of cascaded stages: 1, 2, 4 or 8."`
	Rate   float64 `default:"48000" help:"Sample rate in Hz."`
	Points int     `default:"16" help:"Number of log-spaced frequencies."`
	FFT    int     `name:"fft" default:"0" help:"Also print an FFT spectrum of this size (power of 2)."`
}

func (c *responseCmd) Run(w io.Writer) error {
	if c.Points < 1 {
		return fmt.Errorf("response: need at least one point")
	}

	kind, err := biquad.ParseKind(c.Kind)
	if err != nil {
		return err
	}

	e := eq.New[float64](core.WithSampleRate(c.Rate), core.WithChannels(1))
	if _, err := e.AddBand(eq.BandConfig{Kind: kind, Frequency: c.Freq, Q: c.Q, GainDB: c.Gain, Order: c.Order}); err != nil {
		return err
	}

	cli.PrintTitle(w, "Frequency response",
		fmt.Sprintf("%s at %s, Q %.3g, order %d", kind, cli.FormatFrequency(c.Freq), c.Q, c.Order))

	t := cli.Table{Headers: []string{"Frequency", "Magnitude dB", "Phase deg"}}
	for _, f := range logSpaced(20, 0.45*c.Rate, c.Points) {
		t.AddRow(cli.FormatFrequency(f),
			cli.FormatSigned(e.MagnitudeDB(f), 2),
			cli.FormatSigned(e.Phase(f)*180/math.Pi, 1))
	}

	fmt.Fprintln(w, t.String())

	if c.FFT == 0 {
		return nil
	}

	mags, err := e.SpectrumDB(c.FFT)
	if err != nil {
		return err
	}

	cli.PrintTitle(w, "Spectrum", fmt.Sprintf("%d-point FFT of the impulse response", c.FFT))

	t = cli.Table{Headers: []string{"Bin", "Frequency", "Magnitude dB"}}
	step := max(1, len(mags)/c.Points)
	for k := 0; k < len(mags); k += step {
		t.AddRow(fmt.Sprint(k), cli.FormatFrequency(biquad.BinFrequency(k, c.FFT, c.Rate)), cli.FormatSigned(mags[k], 2))
	}

	fmt.Fprintln(w, t.String())

	return nil
}

// logSpaced returns n frequencies from lo to hi inclusive on a log scale.
func logSpaced(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}

	return out
}
