package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

func newGenerator(opts ...Option) *Generator {
	return NewGenerator([]core.ProcessorOption{core.WithSampleRate(48000)}, opts...)
}

func TestSine(t *testing.T) {
	g := newGenerator()

	s, err := g.Sine(1000, -6, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if len(s) != 480 {
		t.Fatalf("len = %d, want 480", len(s))
	}

	// 1 kHz at 48 kHz peaks on sample 12.
	if want := core.DBToLinear(-6.0); math.Abs(s[12]-want) > 1e-12 {
		t.Fatalf("peak %v, want %v", s[12], want)
	}

	if _, err := g.Sine(30000, 0, 1); err == nil {
		t.Fatal("expected frequency error")
	}

	if _, err := g.Sine(1000, 0, 0); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v", err)
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a, err := newGenerator(WithSeed(42)).WhiteNoise(0, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	b, _ := newGenerator(WithSeed(42)).WhiteNoise(0, 0.001)
	c, _ := newGenerator(WithSeed(43)).WhiteNoise(0, 0.001)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise mismatch at %d", i)
		}

		same = same && a[i] == c[i]
		if math.Abs(a[i]) > 1 {
			t.Fatalf("sample %d out of range: %v", i, a[i])
		}
	}

	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestBurst(t *testing.T) {
	g := newGenerator()

	s, err := g.Burst(1000, 0, 0.01, 0.02, 0.03)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range s {
		if (i < 480 || i >= 960) && v != 0 {
			t.Fatalf("sample %d = %v outside the burst", i, v)
		}
	}

	if math.Abs(s[480+12]-1) > 1e-12 {
		t.Fatalf("burst does not start at zero phase: %v", s[480+12])
	}

	if _, err := g.Burst(1000, 0, 0.02, 0.01, 0.03); err == nil {
		t.Fatal("expected window error")
	}
}

func TestSteps(t *testing.T) {
	g := newGenerator()

	s, err := g.Steps(0, Segment{LevelDB: -20, Seconds: 0.001}, Segment{LevelDB: 0, Seconds: 0.002})
	if err != nil {
		t.Fatal(err)
	}

	if len(s) != 144 {
		t.Fatalf("len = %d, want 144", len(s))
	}

	if math.Abs(s[0]-0.1) > 1e-12 || s[48] != 1 {
		t.Fatalf("levels %v / %v", s[0], s[48])
	}

	if _, err := g.Steps(100); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(out[0]+0.4) > 1e-12 || math.Abs(out[2]-0.8) > 1e-12 {
		t.Fatalf("normalized %v", out)
	}

	if _, err := Normalize(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v", err)
	}

	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Fatal("expected error")
	}
}

func TestConvert(t *testing.T) {
	f := Convert[float32]([]float64{0.5, -1})
	if f[0] != 0.5 || f[1] != -1 {
		t.Fatalf("converted %v", f)
	}
}
