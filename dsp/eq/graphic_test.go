package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/internal/testutil"
)

func TestOctaveCenters(t *testing.T) {
	got := OctaveCenters(1, 20, 20000)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10: %v", len(got), got)
	}

	testutil.RequireNearlyEqual(t, "1 kHz", got[5], 1000, 1e-9)
	testutil.RequireMonotonic(t, got)

	if third := OctaveCenters(3, 20, 20000); len(third) != 30 {
		t.Fatalf("third octave bands = %d, want 30", len(third))
	}
}

func TestBandwidthQ(t *testing.T) {
	// An octave band has Q of about 1.42.
	testutil.RequireNearlyEqual(t, "octave Q", BandwidthQ(1), 1.42, 0.01)

	if BandwidthQ(3) <= BandwidthQ(1) {
		t.Fatal("narrower bands must have higher Q")
	}
}

func TestNewGraphic(t *testing.T) {
	e := NewGraphic[float64](1, core.WithSampleRate(44100))

	if e.Len() != 10 {
		t.Fatalf("bands = %d", e.Len())
	}

	for _, f := range []float64{100, 1000, 10000} {
		if db := e.MagnitudeDB(f); math.Abs(db) > 1e-9 {
			t.Fatalf("flat graphic EQ at %v Hz: %v dB", f, db)
		}
	}

	if err := e.SetGain(5, 6); err != nil {
		t.Fatal(err)
	}

	testutil.RequireNearlyEqual(t, "1 kHz boost", e.MagnitudeDB(1000), 6, 0.2)
}
