package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual[F core.Float](t *testing.T, name string, got, want F, eps float64) {
	t.Helper()

	if diff := math.Abs(float64(got - want)); diff > eps || math.IsNaN(diff) {
		t.Fatalf("%s: got %v, want %v (diff %v > eps %v)", name, got, want, diff, eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual[F core.Float](t *testing.T, got, want []F, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(float64(got[i] - want[i])); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite[F core.Float](t *testing.T, data []F) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireMonotonic fails t unless data never moves against its overall
// direction (first to last element).
func RequireMonotonic[F core.Float](t *testing.T, data []F) {
	t.Helper()

	if len(data) < 2 {
		return
	}

	rising := data[len(data)-1] >= data[0]

	for i := 1; i < len(data); i++ {
		if rising && data[i] < data[i-1] || !rising && data[i] > data[i-1] {
			t.Fatalf("index %d: %v after %v breaks monotonic trend", i, data[i], data[i-1])
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
func MaxAbsDiff[F core.Float](a, b []F) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		maxDiff = max(maxDiff, math.Abs(float64(a[i]-b[i])))
	}

	return maxDiff, nil
}
