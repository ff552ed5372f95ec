package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DegPerRad converts radians to degrees.
const DegPerRad = 180.0 / math.Pi

// Hat returns the unit vector along v, or the zero vector if v is zero.
func Hat(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// Sep returns the angular separation between u and v in radians, in [0, π].
// Either vector being zero yields zero separation.
func Sep(u, v r3.Vec) float64 {
	if r3.Norm(u) == 0 || r3.Norm(v) == 0 {
		return 0
	}
	c := r3.Cos(u, v)
	// Guard against rounding pushing the cosine out of [-1, 1].
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}
