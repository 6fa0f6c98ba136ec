package main

import (
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/detector"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/reduction"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/sidechain"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
)

// CurveFlags select a static curve: continuous parameters or a hardware
// preset.
type CurveFlags struct {
	Model     string  `default:"generic" enum:"generic,fet1176,sslbus,modernbus" help:"Hardware model."`
	Preset    int     `default:"-1" help:"Hardware preset index; -1 keeps the model default."`
	Dynamics  string  `default:"compress" enum:"compress,expand" help:"Curve kind."`
	Ratio     float64 `default:"4" help:"Ratio."`
	Threshold float64 `default:"-12" help:"Threshold in dB."`
	Knee      float64 `default:"6" help:"Soft knee width in dB."`
}

// ProcessorFlags configure a full processor.
type ProcessorFlags struct {
	CurveFlags `embed:""`

	Computer    string  `default:"feedforward" help:"Computer topology: feedforward (ff) or feedback (fb)."`
	Detector    string  `default:"rtz" help:"Detector topology: rtz, rtt or artt."`
	Envelope    string  `default:"branching" help:"Envelope recurrence: noncorrected, branching, decoupled, branchingsmooth, decoupledsmooth."`
	RMS         bool    `help:"Detect the RMS level instead of the peak."`
	Reduction   string  `default:"none" enum:"none,vca,fet,opto" help:"Gain reduction smoothing."`
	Attack      float64 `default:"10" help:"Attack in ms."`
	Release     float64 `default:"100" help:"Release in ms."`
	AttackStep  int     `default:"-1" help:"Hardware attack step; -1 keeps the model default."`
	ReleaseStep int     `default:"-1" help:"Hardware release step; -1 keeps the model default."`
	Makeup      float64 `default:"0" help:"Makeup gain in dB."`
	Highpass    float64 `default:"0" help:"Sidechain highpass frequency in Hz; 0 disables it."`
	Rate        float64 `default:"48000" help:"Sample rate in Hz."`
}

func (f CurveFlags) curve() (computer.Curve[float64], error) {
	model, err := sidechain.ParseModel(f.Model)
	if err != nil {
		return computer.Curve[float64]{}, err
	}

	if model != sidechain.Generic {
		return hardwareCurve(model, f.Preset)
	}

	kind, err := computer.ParseKind(f.Dynamics)
	if err != nil {
		return computer.Curve[float64]{}, err
	}

	return computer.Curve[float64]{Kind: kind, Ratio: f.Ratio, Threshold: f.Threshold, KneeWidth: f.Knee}, nil
}

func hardwareCurve(model sidechain.Model, preset int) (computer.Curve[float64], error) {
	profile, err := sidechain.ProfileOf(model)
	if err != nil {
		return computer.Curve[float64]{}, err
	}

	if preset < 0 {
		preset = profile.DefaultPreset
	}

	// Validate through the event path so the error matches the processor's.
	if _, err := sidechain.PresetEvents[float64](model, preset); err != nil {
		return computer.Curve[float64]{}, err
	}

	return profile.Presets[preset], nil
}

func (f ProcessorFlags) options(channels int) ([]dynamics.Option, error) {
	model, err := sidechain.ParseModel(f.Model)
	if err != nil {
		return nil, err
	}

	opts := []dynamics.Option{
		dynamics.WithProcessorOptions(core.WithSampleRate(f.Rate), core.WithChannels(channels)),
		dynamics.WithModel(model),
		dynamics.WithMakeup(f.Makeup),
	}

	if model != sidechain.Generic {
		return opts, nil
	}

	ct, err := sidechain.ParseComputerTopology(f.Computer)
	if err != nil {
		return nil, err
	}

	dt, err := sidechain.ParseDetectorTopology(f.Detector)
	if err != nil {
		return nil, err
	}

	env, err := detector.ParseTopology(f.Envelope)
	if err != nil {
		return nil, err
	}

	kind, err := computer.ParseKind(f.Dynamics)
	if err != nil {
		return nil, err
	}

	red, err := reduction.ParseKind(f.Reduction)
	if err != nil {
		return nil, err
	}

	sc := []sidechain.Option{
		sidechain.WithComputerTopology(ct),
		sidechain.WithDetectorTopology(dt),
		sidechain.WithEnvelope(env),
		sidechain.WithRMS(f.RMS),
		sidechain.WithDynamics(kind),
		sidechain.WithReduction(red),
	}

	if f.Highpass > 0 {
		sc = append(sc, sidechain.WithFilter(sidechain.FilterConfig{
			Kind:      biquad.Highpass,
			Frequency: f.Highpass,
			Q:         biquad.ButterworthQ,
		}))
	}

	values := state.DefaultValues[float64]()
	values.Attack = state.Milliseconds(f.Attack)
	values.Release = state.Milliseconds(f.Release)
	values.Ratio = f.Ratio
	values.Threshold = f.Threshold
	values.KneeWidth = f.Knee

	return append(opts, dynamics.WithSidechain(sc...), dynamics.WithValues(values)), nil
}

// newProcessor builds a processor from the flags and applies any hardware
// steps. The steps are queued and take effect on the first block.
func newProcessor[F core.Float](f ProcessorFlags, channels int) (*dynamics.Processor[F], error) {
	opts, err := f.options(channels)
	if err != nil {
		return nil, err
	}

	p, err := dynamics.New[F](opts...)
	if err != nil {
		return nil, err
	}

	if p.Model() == sidechain.Generic {
		return p, nil
	}

	steps := []struct {
		i   int
		set func(int) error
	}{
		{f.Preset, p.SetPreset},
		{f.AttackStep, p.SetAttackStep},
		{f.ReleaseStep, p.SetReleaseStep},
	}

	for _, s := range steps {
		if s.i < 0 {
			continue
		}

		if err := s.set(s.i); err != nil {
			p.Close()
			return nil, err
		}
	}

	return p, nil
}
