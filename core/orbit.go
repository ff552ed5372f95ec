package core

import (
	"math"

	"github.com/signalsfoundry/clock-ephemeris/model"
)

// SolveCircularOrbit derives the circular orbit that completes one
// revolution per period seconds under gravitational parameter mu.
//
// From Kepler's third law, T = 2π √(a³/mu), so
//
//	a = (T √mu / 2π)^(2/3)
//	v = √(mu / a)
//
// With mu = 1 this reduces to a = (T/2π)^(2/3) and v = a^(-1/2).
func SolveCircularOrbit(period, mu float64) (model.OrbitParameters, error) {
	if !(period > 0) {
		return model.OrbitParameters{}, &DomainError{Param: "period", Value: period}
	}
	if !(mu > 0) {
		return model.OrbitParameters{}, &DomainError{Param: "mu", Value: mu}
	}

	a := math.Pow(period*math.Sqrt(mu)/(2*math.Pi), 2.0/3.0)
	return model.OrbitParameters{
		SemiMajorAxis: a,
		Speed:         math.Sqrt(mu / a),
	}, nil
}
