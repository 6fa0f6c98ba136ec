package detector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// ErrNilState is returned when a detector is constructed without a state.
var ErrNilState = errors.New("detector: state must not be nil")

// Detector is an envelope follower.
type Detector[F core.Float] interface {
	// Process consumes one rectified sample and returns the envelope.
	Process(x F) F
	// Reset zeroes all history.
	Reset()
}

// Topology selects the envelope recurrence of a Follower.
type Topology int

const (
	// NonCorrected adds the attack-weighted overshoot to the released level:
	//	y = r*y1 + (1-a)*max(x-y1, 0)
	NonCorrected Topology = iota
	// Branching attacks toward x while rising and decays freely while falling.
	Branching
	// Decoupled releases a peak-hold stage and attacks the output toward it.
	Decoupled
	// BranchingSmooth releases toward x instead of toward zero.
	BranchingSmooth
	// DecoupledSmooth is Decoupled with a release stage that settles on x.
	DecoupledSmooth
)

var topologyNames = [...]string{
	NonCorrected:    "noncorrected",
	Branching:       "branching",
	Decoupled:       "decoupled",
	BranchingSmooth: "branchingsmooth",
	DecoupledSmooth: "decoupledsmooth",
}

func (t Topology) String() string {
	if t < 0 || int(t) >= len(topologyNames) {
		return fmt.Sprintf("Topology(%d)", int(t))
	}

	return topologyNames[t]
}

// ParseTopology resolves a topology by name (case-insensitive).
func ParseTopology(name string) (Topology, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range topologyNames {
		if n == name {
			return Topology(i), nil
		}
	}

	return 0, fmt.Errorf("unknown detector topology: %q", name)
}

// Topologies lists every Follower topology.
func Topologies() []Topology {
	return []Topology{NonCorrected, Branching, Decoupled, BranchingSmooth, DecoupledSmooth}
}

func branching[F core.Float](x, y, a, r F) F {
	if x > y {
		return a*y + (1-a)*x
	}

	return r * y
}

func branchingSmooth[F core.Float](x, y, a, r F) F {
	if x > y {
		return a*y + (1-a)*x
	}

	return r*y + (1-r)*x
}
