package main

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/internal/cli"
)

type curveCmd struct {
	CurveFlags `embed:""`

	Min    float64 `default:"-60" help:"Lowest input level in dB."`
	Max    float64 `default:"0" help:"Highest input level in dB."`
	Points int     `default:"13" help:"Number of rows."`
}

func (c *curveCmd) Run(w io.Writer) error {
	if c.Points < 1 || c.Min >= c.Max {
		return fmt.Errorf("curve: need min < max and at least one point")
	}

	curve, err := c.curve()
	if err != nil {
		return err
	}

	cli.PrintTitle(w, "Transfer curve", fmt.Sprintf("%s, %s", c.Model, curve))

	t := cli.Table{Headers: []string{"Input dB", "Output dB", "Gain dB"}}
	for _, p := range computer.Table[float64](curve, c.Min, c.Max, c.Points) {
		t.AddRow(cli.FormatMetric(p.InputDB, 1), cli.FormatMetric(p.OutputDB, 2), cli.FormatSigned(p.GainDB(), 2))
	}

	fmt.Fprintln(w, t.String())

	return nil
}
