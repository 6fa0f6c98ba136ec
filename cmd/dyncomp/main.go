// Command dyncomp explores the compressor/expander sidechain from the
// terminal.
//
// Usage:
//
//	dyncomp <command> [flags]
//
// Examples:
//
//	dyncomp curve --ratio 4 --threshold -18
//	dyncomp curve --model sslbus --preset 2
//	dyncomp response --kind bell --freq 2500 --gain 6 --order 2 --fft 1024
//	dyncomp simulate --computer fb --detector rtz --level -6
//	dyncomp meter --model fet1176
//	dyncomp live --model modernbus --release-step 4
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-dynamics/internal/cli"
)

var version = "0.1.0"

const description = "Compressor and expander sidechain toolkit"

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information"`

	Curve    curveCmd    `cmd:"" help:"Print the static transfer curve."`
	Response responseCmd `cmd:"" help:"Print the magnitude and phase response of an EQ band."`
	Simulate simulateCmd `cmd:"" help:"Run a tone burst through the compressor and print gain reduction over time."`
	Meter    meterCmd    `cmd:"" help:"Animate the gain reduction meter for a simulated signal."`
	Live     liveCmd     `cmd:"" help:"Compress the default audio input in real time."`
}

// versionFlag prints the styled version banner and exits before any
// command is required.
type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong) error {
	cli.PrintVersion(app.Stdout, version)
	app.Exit(0)

	return nil
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("dyncomp"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
		kong.Help(cli.StyledHelpPrinter(description)),
	)

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
