package computer

import "github.com/cwbudde/algo-dynamics/dsp/core"

// Point is one sample of a transfer curve.
type Point[F core.Float] struct {
	InputDB  F
	OutputDB F
}

// GainDB returns the gain applied at this point.
func (p Point[F]) GainDB() F { return p.OutputDB - p.InputDB }

// Table samples c at n evenly spaced input levels from minDB to maxDB
// inclusive. n < 2 yields a single point at minDB.
func Table[F core.Float](c Computer[F], minDB, maxDB F, n int) []Point[F] {
	if n < 2 {
		return []Point[F]{{InputDB: minDB, OutputDB: c.Process(minDB)}}
	}

	out := make([]Point[F], n)
	step := (maxDB - minDB) / F(n-1)

	for i := range out {
		x := minDB + F(i)*step
		if i == n-1 {
			x = maxDB
		}

		out[i] = Point[F]{InputDB: x, OutputDB: c.Process(x)}
	}

	return out
}
