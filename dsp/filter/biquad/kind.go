package biquad

import (
	"fmt"
	"strings"
)

// Kind selects the filter response shape.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
	Allpass
	Notch
	LowShelf
	HighShelf
	Bell
	// AnalogBell is a peaking filter whose bandwidth narrows as |gain| grows,
	// like a passive analog bell.
	AnalogBell
)

var kindNames = [...]string{
	Lowpass:    "lowpass",
	Highpass:   "highpass",
	Bandpass:   "bandpass",
	Allpass:    "allpass",
	Notch:      "notch",
	LowShelf:   "lowshelf",
	HighShelf:  "highshelf",
	Bell:       "bell",
	AnalogBell: "analogbell",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// HasGain reports whether the gain parameter affects this kind.
func (k Kind) HasGain() bool {
	switch k {
	case LowShelf, HighShelf, Bell, AnalogBell:
		return true
	default:
		return false
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= Lowpass && k <= AnalogBell
}

// ParseKind resolves a kind by name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("unknown biquad kind: %q", name)
}
