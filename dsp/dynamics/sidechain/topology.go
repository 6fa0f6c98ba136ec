package sidechain

import (
	"fmt"
	"strings"
)

// ComputerTopology selects where the detector taps the signal.
type ComputerTopology int

const (
	// FeedForward detects on the input.
	FeedForward ComputerTopology = iota
	// FeedBack detects on the input scaled by the previous gain reduction.
	FeedBack
)

func (t ComputerTopology) String() string {
	switch t {
	case FeedForward:
		return "feedforward"
	case FeedBack:
		return "feedback"
	default:
		return fmt.Sprintf("ComputerTopology(%d)", int(t))
	}
}

// ParseComputerTopology accepts "feedforward"/"ff" and "feedback"/"fb".
func ParseComputerTopology(name string) (ComputerTopology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "feedforward", "ff":
		return FeedForward, nil
	case "feedback", "fb":
		return FeedBack, nil
	default:
		return 0, fmt.Errorf("unknown computer topology: %q", name)
	}
}

// DetectorTopology selects what the detector follows.
type DetectorTopology int

const (
	// ReturnToZero follows the rectified level.
	ReturnToZero DetectorTopology = iota
	// ReturnToThreshold follows the level relative to the linear threshold.
	ReturnToThreshold
	// AlternateReturnToThreshold follows the raw gain reduction depth.
	AlternateReturnToThreshold
)

func (t DetectorTopology) String() string {
	switch t {
	case ReturnToZero:
		return "rtz"
	case ReturnToThreshold:
		return "rtt"
	case AlternateReturnToThreshold:
		return "artt"
	default:
		return fmt.Sprintf("DetectorTopology(%d)", int(t))
	}
}

// ParseDetectorTopology accepts the short names returned by String as well
// as the long forms "returntozero", "returntothreshold" and
// "alternatereturntothreshold".
func ParseDetectorTopology(name string) (DetectorTopology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rtz", "returntozero":
		return ReturnToZero, nil
	case "rtt", "returntothreshold":
		return ReturnToThreshold, nil
	case "artt", "art", "alternatereturntothreshold":
		return AlternateReturnToThreshold, nil
	default:
		return 0, fmt.Errorf("unknown detector topology: %q", name)
	}
}
