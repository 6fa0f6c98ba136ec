package reduction

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
)

const fs = 48000

func newState() *state.State[float64] {
	return state.New(state.WithSampleRate[float64](fs))
}

func settle(f Filter[float64], raw float64, n int) float64 {
	var y float64
	for range n {
		y = f.Adjust(raw)
	}

	return y
}

func TestNew_AllKinds(t *testing.T) {
	st := newState()

	for _, kind := range []Kind{None, VCA, FET, Opto} {
		f, err := New(kind, st)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}

		if f == nil {
			t.Fatalf("%s: nil filter", kind)
		}
	}

	if _, err := New(Kind(9), st); err == nil {
		t.Fatal("expected error for invalid kind")
	}

	for _, kind := range []Kind{VCA, FET, Opto} {
		if _, err := New[float64](kind, nil); !errors.Is(err, ErrNilState) {
			t.Fatalf("%s with nil state: err = %v", kind, err)
		}
	}
}

func TestBypass(t *testing.T) {
	var f Bypass[float32]
	for _, v := range []float32{0, -1, -12.5} {
		if got := f.Adjust(v); got != v {
			t.Fatalf("Adjust(%v) = %v", v, got)
		}
	}
}

func TestVCA_SmoothsTowardRaw(t *testing.T) {
	f, _ := NewVCA(newState())

	first := f.Adjust(-10)
	if want := -10 * (1 - math.Exp(-1/(VCATime*fs))); math.Abs(first-want) > 1e-12 {
		t.Fatalf("first step %v, want %v", first, want)
	}

	if y := settle(f, -10, fs/10); math.Abs(y+10) > 1e-9 {
		t.Fatalf("settled at %v, want -10", y)
	}
}

func TestVCA_TracksSampleRate(t *testing.T) {
	st := newState()
	f, _ := NewVCA(st)

	st.SetSampleRate(96000)

	if want := math.Exp(-1 / (VCATime * 96000)); math.Abs(f.coeff-want) > 1e-15 {
		t.Fatalf("coefficient %v, want %v", f.coeff, want)
	}

	f.Detach()
	st.SetSampleRate(22050)

	if want := math.Exp(-1 / (VCATime * 96000)); f.coeff != want {
		t.Fatal("detached filter still tracking sample rate")
	}
}

func TestFET_SaturatesDepth(t *testing.T) {
	f, _ := NewFET(newState())

	shallow := settle(f, -3, fs/10)
	if math.Abs(shallow+3) > 0.01 {
		t.Fatalf("shallow reduction %v, want about -3", shallow)
	}

	f.Reset()

	deep := settle(f, -200, fs/10)
	if deep <= -FETMaxDepth || deep > -0.99*FETMaxDepth {
		t.Fatalf("deep reduction %v, want just above %v", deep, -FETMaxDepth)
	}
}

func TestOpto_ReleaseSlowsWithProgram(t *testing.T) {
	releaseAfter := func(holdSamples int) float64 {
		f, _ := NewOpto(newState())
		settle(f, -12, holdSamples)

		return settle(f, 0, fs/10)
	}

	short := releaseAfter(fs / 20)
	long := releaseAfter(4 * fs)

	// Longer reduction leaves more reduction behind 100 ms into the release.
	if long >= short {
		t.Fatalf("after long hold %v, after short hold %v", long, short)
	}

	if short > 0 || long < -12 {
		t.Fatalf("release values out of range: %v %v", short, long)
	}
}

func TestOpto_ReleaseTimeRange(t *testing.T) {
	f, _ := NewOpto(newState())

	if rt := f.ReleaseTime(); rt != OptoFastRelease {
		t.Fatalf("idle release time %v", rt)
	}

	settle(f, -40, 10*fs)

	if rt := f.ReleaseTime(); math.Abs(rt-OptoSlowRelease) > 1e-9 {
		t.Fatalf("saturated release time %v, want %v", rt, OptoSlowRelease)
	}
}

func TestResetIdempotence(t *testing.T) {
	input := make([]float64, 4096)
	for i := range input {
		input[i] = -12 * math.Abs(math.Sin(float64(i)*0.004))
	}

	for _, kind := range []Kind{VCA, FET, Opto} {
		fresh, _ := New(kind, newState())
		used, _ := New(kind, newState())

		for _, x := range input {
			used.Adjust(x * 2)
		}

		used.Reset()

		for i, x := range input {
			if a, b := fresh.Adjust(x), used.Adjust(x); a != b {
				t.Fatalf("%s sample %d: fresh %v, reset %v", kind, i, a, b)
			}
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{None, VCA, FET, Opto} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}

	if _, err := ParseKind("tube"); err == nil {
		t.Fatal("expected error")
	}
}
