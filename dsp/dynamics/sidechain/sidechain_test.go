package sidechain

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/detector"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/reduction"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
	"github.com/cwbudde/algo-dynamics/internal/testutil"
)

func newSidechain(t *testing.T, st *state.State[float64], opts ...Option) *Sidechain[float64] {
	t.Helper()

	sc, err := New(st, opts...)
	if err != nil {
		t.Fatal(err)
	}

	return sc
}

func feed(sc interface{ Process(float64) float64 }, x float64, n int) float64 {
	var g float64
	for range n {
		g = sc.Process(x)
	}

	return g
}

func TestNew_NilState(t *testing.T) {
	if _, err := New[float64](nil); !errors.Is(err, ErrNilState) {
		t.Fatalf("err = %v", err)
	}
}

func TestNew_InvalidReduction(t *testing.T) {
	if _, err := New(state.New[float64](), WithReduction(reduction.Kind(42))); err == nil {
		t.Fatal("expected error")
	}
}

func TestFeedBackReturnToZero_SteadyState(t *testing.T) {
	const fs = 44100

	st := state.New(state.WithSampleRate[float64](fs))
	st.SetThreshold(-12)
	st.SetRatio(4)
	st.SetKneeWidth(6)

	sc := newSidechain(t, st,
		WithComputerTopology(FeedBack),
		WithDetectorTopology(ReturnToZero),
		WithEnvelope(detector.Branching),
	)

	feed(sc, 1, fs)

	// The loop settles where the output reaches the lower knee edge.
	want := -12.0 - 6.0/2
	if got := sc.CurrentGainReduction(); math.Abs(got-want) > 0.5 {
		t.Fatalf("gain reduction after 1 s = %.3f dB, want %.1f ± 0.5", got, want)
	}
}

func TestFeedBack_StableForSlowAttack(t *testing.T) {
	for _, envelope := range []detector.Topology{detector.Branching, detector.BranchingSmooth} {
		st := state.New(state.WithSampleRate[float64](44100))
		st.SetAttack(state.Milliseconds(100))
		st.SetRelease(state.Seconds(2))

		sc := newSidechain(t, st, WithComputerTopology(FeedBack), WithEnvelope(envelope))
		feed(sc, 1, 2*44100)

		if got := sc.CurrentGainReduction(); math.Abs(got+15) > 0.5 {
			t.Fatalf("%s: settled at %.3f dB, want -15", envelope, got)
		}
	}
}

func TestFeedBack_ReleasesOnSilence(t *testing.T) {
	st := state.New(state.WithSampleRate[float64](44100))
	sc := newSidechain(t, st, WithComputerTopology(FeedBack))

	feed(sc, 1, 44100)
	feed(sc, 0, 44100)

	if got := sc.CurrentGainReduction(); got < -0.1 || got > 0 {
		t.Fatalf("gain reduction after 1 s of silence = %v", got)
	}
}

func TestFeedBack_HoldsBetweenPeaks(t *testing.T) {
	const (
		fs     = 48000
		period = fs / 1000
	)

	st := state.New(state.WithSampleRate[float64](fs))
	sc := newSidechain(t, st, WithComputerTopology(FeedBack), WithEnvelope(detector.Branching))

	for i := range fs - period {
		sc.Process(math.Sin(2 * math.Pi * float64(i) / period))
	}

	// Zero crossings demand no reduction on their own; the accumulated
	// reduction must not leak away within a cycle.
	lo, hi := 0.0, GainReductionFloorDB
	for i := range period {
		sc.Process(math.Sin(2 * math.Pi * float64(i) / period))

		gr := sc.CurrentGainReduction()
		lo, hi = min(lo, gr), max(hi, gr)
	}

	if lo < -18 || hi > -10 {
		t.Fatalf("reduction over the last cycle spans [%.3f, %.3f] dB, want within [-18, -10]", lo, hi)
	}

	if hi-lo > 1 {
		t.Fatalf("reduction ripples by %.3f dB within a cycle", hi-lo)
	}

	// Once the input stops the envelope falls below the knee and the
	// reduction releases toward 0 dB without overshoot.
	prev := sc.CurrentGainReduction()
	for i := range fs / 2 {
		sc.Process(0)

		gr := sc.CurrentGainReduction()
		if gr < prev-1e-12 || gr > 0 {
			t.Fatalf("silent sample %d: reduction %v after %v", i, gr, prev)
		}

		prev = gr
	}

	if prev < -0.5 {
		t.Fatalf("reduction after 0.5 s of silence = %.3f dB", prev)
	}
}

func TestFeedBack_BoundedExpander(t *testing.T) {
	st := state.New[float64]()
	st.SetThreshold(-30)
	st.SetRatio(10)

	sc := newSidechain(t, st,
		WithComputerTopology(FeedBack),
		WithDetectorTopology(ReturnToThreshold),
		WithDynamics(computer.Expand),
	)

	for i := range 96000 {
		g := sc.Process(0.001 * math.Sin(float64(i)*0.05))
		gr := sc.CurrentGainReduction()

		if math.IsNaN(g) || gr < GainReductionFloorDB || gr > 0 {
			t.Fatalf("sample %d: gain %v, reduction %v", i, g, gr)
		}
	}
}

func TestFeedForward_SteadyState(t *testing.T) {
	// T=-12, R=4, k=6 at 0 dBFS: -12 + 12/4 = -9 dB output, so -9 dB reduction.
	for _, topology := range []DetectorTopology{ReturnToZero, ReturnToThreshold, AlternateReturnToThreshold} {
		t.Run(topology.String(), func(t *testing.T) {
			st := state.New[float64]()
			sc := newSidechain(t, st, WithDetectorTopology(topology))

			g := feed(sc, 1, 48000)
			tol := max(1e-6, testutil.DBTolerance)

			if got := sc.CurrentGainReduction(); math.Abs(got+9) > tol {
				t.Fatalf("gain reduction = %v, want -9", got)
			}

			if want := math.Pow(10, -9.0/20); math.Abs(g-want) > tol {
				t.Fatalf("gain = %v, want %v", g, want)
			}
		})
	}
}

func TestFeedForward_BelowThresholdIsUnity(t *testing.T) {
	sc := newSidechain(t, state.New[float64]())

	if g := feed(sc, 0.01, 48000); g != 1 {
		t.Fatalf("gain = %v, want exactly 1", g)
	}
}

func TestFeedForward_Expander(t *testing.T) {
	st := state.New[float64]()
	st.SetThreshold(-40)
	st.SetRatio(2)
	st.SetKneeWidth(0)

	sc := newSidechain(t, st, WithDynamics(computer.Expand))
	feed(sc, 0.001, 48000)

	if got := sc.CurrentGainReduction(); math.Abs(got+20) > 1e-3 {
		t.Fatalf("expansion = %v dB, want -20", got)
	}

	sc.SetDynamicsType(computer.Compress)

	if sc.DynamicsType() != computer.Compress {
		t.Fatal("dynamics type not switched")
	}

	feed(sc, 0.001, 10)

	if got := sc.CurrentGainReduction(); got != 0 {
		t.Fatalf("compressor below threshold reduced by %v dB", got)
	}
}

func TestFeedForward_AttackShapesOnset(t *testing.T) {
	fast := state.New[float64]()
	fast.SetAttack(state.Milliseconds(0.1))

	slow := state.New[float64]()
	slow.SetAttack(state.Milliseconds(20))

	scFast := newSidechain(t, fast)
	scSlow := newSidechain(t, slow)

	feed(scFast, 1, 240)
	feed(scSlow, 1, 240)

	if scFast.CurrentGainReduction() >= scSlow.CurrentGainReduction() {
		t.Fatalf("5 ms into a burst: fast %v dB, slow %v dB", scFast.CurrentGainReduction(), scSlow.CurrentGainReduction())
	}
}

func TestFilter_ReducesLowFrequencyPumping(t *testing.T) {
	run := func(sc *Sidechain[float64]) float64 {
		minGR := 0.0
		for i := range 48000 {
			sc.Process(math.Sin(2 * math.Pi * 50 * float64(i) / 48000))

			if i > 24000 {
				minGR = min(minGR, sc.CurrentGainReduction())
			}
		}

		return minGR
	}

	plain := run(newSidechain(t, state.New[float64]()))
	filtered := run(newSidechain(t, state.New[float64](),
		WithFilter(FilterConfig{Kind: biquad.Highpass, Frequency: 1000, Q: biquad.ButterworthQ})))

	if plain > -5 {
		t.Fatalf("unfiltered 50 Hz reduction %v dB, want below -5", plain)
	}

	if filtered < -1 {
		t.Fatalf("highpassed 50 Hz reduction %v dB, want above -1", filtered)
	}
}

func TestFilter_FollowsSampleRate(t *testing.T) {
	st := state.New[float64]()
	sc := newSidechain(t, st, WithFilter(FilterConfig{Kind: biquad.Highpass, Frequency: 120, Q: 0.7}))

	st.SetSampleRate(96000)

	if got := sc.Filter().SampleRate(); got != 96000 {
		t.Fatalf("filter sample rate = %v", got)
	}

	sc.SetFilter(FilterConfig{Kind: biquad.Bell, Frequency: 3000, Q: 1, GainDB: 6})

	if f := sc.Filter(); f.Kind() != biquad.Bell || f.Frequency() != 3000 || f.SampleRate() != 96000 {
		t.Fatalf("redesigned filter: %v %v %v", f.Kind(), f.Frequency(), f.SampleRate())
	}

	sc.ClearFilter()
	st.SetSampleRate(44100)

	if sc.Filter() != nil {
		t.Fatal("filter not cleared")
	}
}

func TestResetIdempotence(t *testing.T) {
	build := func() *Sidechain[float64] {
		st := state.New[float64]()

		sc, err := New(st,
			WithComputerTopology(FeedBack),
			WithDetectorTopology(ReturnToThreshold),
			WithEnvelope(detector.DecoupledSmooth),
			WithRMS(true),
			WithReduction(reduction.Opto),
			WithFilter(FilterConfig{Kind: biquad.Highpass, Frequency: 80, Q: biquad.ButterworthQ}),
		)
		if err != nil {
			t.Fatal(err)
		}

		return sc
	}

	input := make([]float64, 8192)
	for i := range input {
		input[i] = math.Sin(float64(i)*0.03) * (0.5 + 0.5*math.Sin(float64(i)*0.001))
	}

	fresh, used := build(), build()
	for _, x := range input {
		used.Process(1.5 * x)
	}

	used.Reset()

	if used.CurrentGainReduction() != 0 {
		t.Fatal("reset kept gain reduction")
	}

	for i, x := range input {
		if a, b := fresh.Process(x), used.Process(x); a != b {
			t.Fatalf("sample %d: fresh %v, reset %v", i, a, b)
		}
	}
}

func TestSetTopologies(t *testing.T) {
	sc := newSidechain(t, state.New[float64](), WithComputerTopology(FeedBack))
	feed(sc, 1, 4800)

	if sc.CurrentGainReduction() >= 0 {
		t.Fatal("no reduction before switching")
	}

	sc.SetComputerTopology(FeedForward)

	if sc.ComputerTopology() != FeedForward || sc.CurrentGainReduction() != 0 {
		t.Fatalf("topology %v, reduction %v", sc.ComputerTopology(), sc.CurrentGainReduction())
	}

	sc.SetDetectorTopology(AlternateReturnToThreshold)

	if sc.DetectorTopology() != AlternateReturnToThreshold {
		t.Fatal("detector topology not switched")
	}

	if y := sc.Detector().Process(0); y != 0 {
		t.Fatalf("detector history kept across topology switch: %v", y)
	}
}

func TestDetach(t *testing.T) {
	st := state.New[float64]()
	sc := newSidechain(t, st,
		WithRMS(true),
		WithReduction(reduction.VCA),
		WithFilter(FilterConfig{Kind: biquad.Highpass, Frequency: 100}))

	sc.Detach()

	for _, f := range []state.Field{state.FieldAttack, state.FieldRelease, state.FieldSampleRate} {
		if n := st.Subscribers(f); n != 0 {
			t.Fatalf("%s: %d subscribers left", f, n)
		}
	}
}

func TestFloat32(t *testing.T) {
	st := state.New[float32]()

	sc, err := New(st)
	if err != nil {
		t.Fatal(err)
	}

	var g float32
	for range 48000 {
		g = sc.Process(1)
	}

	if want := core.DBToLinear[float32](-9); math.Abs(float64(g-want)) > 1e-4 {
		t.Fatalf("gain = %v, want %v", g, want)
	}
}

func TestParseTopologies(t *testing.T) {
	for _, ct := range []ComputerTopology{FeedForward, FeedBack} {
		got, err := ParseComputerTopology(ct.String())
		if err != nil || got != ct {
			t.Fatalf("ParseComputerTopology(%q) = %v, %v", ct, got, err)
		}
	}

	for _, dt := range []DetectorTopology{ReturnToZero, ReturnToThreshold, AlternateReturnToThreshold} {
		got, err := ParseDetectorTopology(dt.String())
		if err != nil || got != dt {
			t.Fatalf("ParseDetectorTopology(%q) = %v, %v", dt, got, err)
		}
	}

	if _, err := ParseComputerTopology("sideways"); err == nil {
		t.Fatal("expected error")
	}

	if _, err := ParseDetectorTopology("x"); err == nil {
		t.Fatal("expected error")
	}
}
