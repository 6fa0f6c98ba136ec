package computer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// ErrNilState is returned when a state-bound computer is built without a state.
var ErrNilState = errors.New("computer: state must not be nil")

// Computer maps an input level in dB to an output level in dB.
type Computer[F core.Float] interface {
	Process(inputDB F) F
}

// Kind selects between compression and downward expansion.
type Kind int

const (
	Compress Kind = iota
	Expand
)

func (k Kind) String() string {
	switch k {
	case Compress:
		return "compressor"
	case Expand:
		return "expander"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "compressor"/"compress" and "expander"/"expand".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "compressor", "compress":
		return Compress, nil
	case "expander", "expand":
		return Expand, nil
	default:
		return 0, fmt.Errorf("unknown dynamics type: %q", name)
	}
}

// CompressDB evaluates the soft-knee compressor curve at x.
func CompressDB[F core.Float](x, threshold, ratio, knee F) F {
	if knee <= 0 {
		if x <= threshold {
			return x
		}

		return threshold + (x-threshold)/ratio
	}

	d := 2 * (x - threshold)

	switch {
	case d < -knee:
		return x
	case d > knee:
		return threshold + (x-threshold)/ratio
	default:
		t := x - threshold + knee/2
		return x + (1/ratio-1)*t*t/(2*knee)
	}
}

// ExpandDB evaluates the soft-knee downward expander curve at x.
func ExpandDB[F core.Float](x, threshold, ratio, knee F) F {
	if knee <= 0 {
		if x >= threshold {
			return x
		}

		return threshold + (x-threshold)*ratio
	}

	d := 2 * (x - threshold)

	switch {
	case d < -knee:
		return threshold + (x-threshold)*ratio
	case d > knee:
		return x
	default:
		t := x - threshold - knee/2
		return x + (1-ratio)*t*t/(2*knee)
	}
}

// Curve is a fixed transfer curve, used for hardware presets and plotting.
type Curve[F core.Float] struct {
	Kind      Kind
	Ratio     F
	Threshold F
	KneeWidth F
}

// Process evaluates the curve.
func (c Curve[F]) Process(inputDB F) F {
	if c.Kind == Expand {
		return ExpandDB(inputDB, c.Threshold, c.Ratio, c.KneeWidth)
	}

	return CompressDB(inputDB, c.Threshold, c.Ratio, c.KneeWidth)
}

// String formats the curve as "4:1 @ -12 dB, knee 6 dB".
func (c Curve[F]) String() string {
	return fmt.Sprintf("%g:1 @ %g dB, knee %g dB", float64(c.Ratio), float64(c.Threshold), float64(c.KneeWidth))
}
