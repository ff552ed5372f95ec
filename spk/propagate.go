package spk

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/clock-ephemeris/model"
)

// propagateCircular advances a circular-orbit state sample to epoch et.
//
// The sample's position and velocity define the orbit plane; the body sweeps
// it at the constant angular rate n = |v| / |r|. This is exact for the
// unperturbed circular segments this store holds and is the only segment
// type it supports.
func propagateCircular(s model.StateSample, et float64) model.StateSample {
	r := r3.Norm(s.Position)
	v := r3.Norm(s.Velocity)
	if r == 0 || v == 0 {
		return model.StateSample{Epoch: et, Position: s.Position, Velocity: s.Velocity}
	}

	rHat := r3.Scale(1/r, s.Position)
	tHat := r3.Scale(1/v, s.Velocity)

	theta := (v / r) * (et - s.Epoch)
	sin, cos := math.Sincos(theta)

	return model.StateSample{
		Epoch:    et,
		Position: r3.Add(r3.Scale(r*cos, rHat), r3.Scale(r*sin, tHat)),
		Velocity: r3.Add(r3.Scale(-v*sin, rHat), r3.Scale(v*cos, tHat)),
	}
}

// nearestSample picks the bracketing sample closest in time to et.
func nearestSample(samples []model.StateSample, et float64) model.StateSample {
	best := samples[0]
	for _, s := range samples[1:] {
		if math.Abs(s.Epoch-et) < math.Abs(best.Epoch-et) {
			best = s
		}
	}
	return best
}
