package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampFloat32(t *testing.T) {
	if got := Clamp[float32](3, -1, 1); got != 1 {
		t.Fatalf("Clamp[float32]() = %v, want 1", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6.0)

	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, dbTolerance) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if !math.IsInf(LinearToDB(0.0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1.0)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestLinearToDBFloor(t *testing.T) {
	tests := []struct {
		name   string
		linear float64
		want   float64
	}{
		{"zero", 0, -120},
		{"tiny", 1e-9, -120},
		{"unity", 1, 0},
		{"negative unity", -1, 0},
		{"half", 0.5, 20 * math.Log10(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToDBFloor(tt.linear, -120)
			if !NearlyEqual(got, tt.want, dbTolerance) {
				t.Fatalf("LinearToDBFloor(%v) = %v, want %v", tt.linear, got, tt.want)
			}
		})
	}
}

func TestTimeCoefficient(t *testing.T) {
	if got := TimeCoefficient(0.0, 48000.0); got != 0 {
		t.Fatalf("zero time coefficient = %v, want 0", got)
	}

	got := TimeCoefficient(0.01, 48000.0)

	want := math.Exp(-1 / 480.0)
	if !NearlyEqual(got, want, 1e-15) {
		t.Fatalf("TimeCoefficient(10ms) = %v, want %v", got, want)
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to flush to zero")
	}

	if FlushDenormals(float32(0.25)) != 0.25 {
		t.Fatal("expected normal value to pass through")
	}
}
