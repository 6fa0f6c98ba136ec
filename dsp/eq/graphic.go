package eq

import (
	"math"

	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/filter/biquad"
)

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

const (
	defaultLowerFreq = 20.0
	defaultUpperFreq = 20000.0
)

// OctaveCenters returns the IEC 61260 base-10 centre frequencies
// f = 1000 * G^(k/fraction) that fall within [lower, upper], ascending.
// fraction 1 gives octaves, 3 gives third octaves.
func OctaveCenters(fraction int, lower, upper float64) []float64 {
	if fraction <= 0 {
		fraction = 1
	}

	if lower <= 0 || upper <= lower {
		lower, upper = defaultLowerFreq, defaultUpperFreq
	}

	n := float64(fraction)
	kMin := int(math.Ceil(n * math.Log(lower/1000) / math.Log(octaveRatio)))
	kMax := int(math.Floor(n * math.Log(upper/1000) / math.Log(octaveRatio)))

	centers := make([]float64, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		centers = append(centers, 1000*math.Pow(octaveRatio, float64(k)/n))
	}

	return centers
}

// BandwidthQ returns the Q of a peaking band spanning 1/fraction octave
// between its band edges.
func BandwidthQ(fraction int) float64 {
	if fraction <= 0 {
		fraction = 1
	}

	r := math.Pow(octaveRatio, 1/float64(fraction))

	return math.Sqrt(r) / (r - 1)
}

// NewGraphic returns a graphic equalizer: one flat bell per fractional
// octave centre between 20 Hz and 20 kHz (clipped below Nyquist).
func NewGraphic[F core.Float](fraction int, opts ...core.ProcessorOption) *Equalizer[F] {
	e := New[F](opts...)
	q := BandwidthQ(fraction)

	for _, fc := range OctaveCenters(fraction, defaultLowerFreq, min(defaultUpperFreq, 0.45*e.sampleRate)) {
		// Centres from OctaveCenters always validate.
		_, _ = e.AddBand(BandConfig{Kind: biquad.Bell, Frequency: fc, Q: q, Order: 1})
	}

	return e
}
