package cli

import (
	"math"
	"strings"
	"testing"
)

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"zero", 0.0, 2, "0.00"},
		{"negative", -16.5, 1, "-16.5"},
		{"rounding", 3.14159, 2, "3.14"},
		{"nan", math.NaN(), 2, MissingValue},
		{"negative_inf", math.Inf(-1), 2, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMetric(tt.value, tt.decimals); got != tt.want {
				t.Errorf("FormatMetric(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(2.5, 1); got != "+2.5" {
		t.Errorf("got %q", got)
	}

	if got := FormatSigned(-9, 2); got != "-9.00" {
		t.Errorf("got %q", got)
	}
}

func TestFormatFrequency(t *testing.T) {
	if got := FormatFrequency(440); got != "440.0 Hz" {
		t.Errorf("got %q", got)
	}

	if got := FormatFrequency(2500); got != "2.50 kHz" {
		t.Errorf("got %q", got)
	}
}

func TestTableAlignment(t *testing.T) {
	tab := Table{Headers: []string{"Input", "Output"}}
	tab.AddRow("-40", "-40.00")
	tab.AddRow("0", "-9.00")

	lines := strings.Split(strings.TrimRight(tab.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d: %q", len(lines), lines)
	}

	if lines[1] != "-40    -40.00" || lines[2] != "0       -9.00" {
		t.Fatalf("rows not aligned:\n%s\n%s", lines[1], lines[2])
	}

	if (&Table{}).String() != "" {
		t.Fatal("empty table must render nothing")
	}
}
