package core

import (
	"errors"
	"math"
	"testing"
)

func TestSolveCircularOrbit_PeriodConsistency(t *testing.T) {
	// 2π a / v must reproduce the requested period.
	periods := []float64{1, 60, 3600, 43200, 86400, 1.5e7}
	for _, period := range periods {
		orbit, err := SolveCircularOrbit(period, 1.0)
		if err != nil {
			t.Fatalf("SolveCircularOrbit(%g): %v", period, err)
		}
		if orbit.SemiMajorAxis <= 0 || orbit.Speed <= 0 {
			t.Fatalf("period %g: non-positive solution %+v", period, orbit)
		}
		got := 2 * math.Pi * orbit.SemiMajorAxis / orbit.Speed
		if rel := math.Abs(got-period) / period; rel > 1e-9 {
			t.Errorf("period %g: round trip gives %g (relative error %g)", period, got, rel)
		}
	}
}

func TestSolveCircularOrbit_UnitMuReduction(t *testing.T) {
	// With mu = 1 the closed forms reduce to a = (T/2π)^(2/3), v = a^(-1/2).
	const period = 3600.0
	orbit, err := SolveCircularOrbit(period, 1.0)
	if err != nil {
		t.Fatalf("SolveCircularOrbit: %v", err)
	}

	wantA := math.Pow(period/(2*math.Pi), 2.0/3.0)
	if math.Abs(orbit.SemiMajorAxis-wantA) > 1e-12*wantA {
		t.Errorf("a = %.15g, want %.15g", orbit.SemiMajorAxis, wantA)
	}
	wantV := math.Pow(wantA, -0.5)
	if math.Abs(orbit.Speed-wantV) > 1e-12*wantV {
		t.Errorf("v = %.15g, want %.15g", orbit.Speed, wantV)
	}
}

func TestSolveCircularOrbit_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		period float64
		mu     float64
	}{
		{"zero period", 0, 1},
		{"negative period", -60, 1},
		{"NaN period", math.NaN(), 1},
		{"zero mu", 3600, 0},
		{"negative mu", 3600, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SolveCircularOrbit(tc.period, tc.mu)
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected DomainError, got %v", err)
			}
		})
	}
}
