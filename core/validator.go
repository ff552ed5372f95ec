package core

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/clock-ephemeris/ephemtime"
	"github.com/signalsfoundry/clock-ephemeris/internal/logging"
	"github.com/signalsfoundry/clock-ephemeris/model"
)

// unitTolerance bounds the distance between a queried unit direction and its
// prediction, and the angular mismatch in degrees.
const unitTolerance = 1e-10

// ValidateConfig identifies the bodies and the sweep window for validation.
type ValidateConfig struct {
	Center model.Body
	Minute model.Body
	Hour   model.Body

	ET0       float64
	DayLength float64
}

// Validator checks the persisted trajectories against the closed-form clock
// geometry before any search result is trusted.
type Validator struct {
	Log logging.Logger
}

// Validate sweeps one synthetic day in half-hour steps. On the half hour the
// minute hand must point along -X; on the hour it must point along +X and
// the hour hand must sit (30° per elapsed hour) away from it, folded into
// the [0°, 180°] range of the separation function. The first mismatch stops
// the sweep with a ValidationError. Returns the number of steps checked.
func (v *Validator) Validate(ctx context.Context, eph Ephemeris, cfg ValidateConfig) (int, error) {
	log := v.Log
	if log == nil {
		log = logging.Noop()
	}

	halfHour := cfg.DayLength / (2 * ephemtime.HoursPerDay)
	// The hands drift apart 30 degrees per hour: the minute hand gains a
	// full face (360°) per hour on the 12-hour face the hour hand crawls
	// around at 360°/12h.
	sepPerHourDeg := 2 * 360.0 / ephemtime.HoursPerDay

	pass := 0
	for et := cfg.ET0; et < cfg.ET0+cfg.DayLength+1; et += halfHour {
		minute, _, err := eph.State(cfg.Minute, cfg.Center, et)
		if err != nil {
			return pass, fmt.Errorf("query %s at et=%.3f: %w", cfg.Minute, et, err)
		}
		hour, _, err := eph.State(cfg.Hour, cfg.Center, et)
		if err != nil {
			return pass, fmt.Errorf("query %s at et=%.3f: %w", cfg.Hour, et, err)
		}

		if pass%2 == 1 {
			// Half-hour mark: minute hand at RA 180°.
			if err := checkDirection(minute.Position, r3.Vec{X: -1}, et, pass); err != nil {
				return pass, err
			}
		} else {
			// On the hour: minute hand back at RA 0°.
			if err := checkDirection(minute.Position, r3.Vec{X: 1}, et, pass); err != nil {
				return pass, err
			}

			sepDeg := Sep(hour.Position, minute.Position) * DegPerRad
			wantDeg := math.Mod(sepPerHourDeg*float64(pass/2), 360)
			if math.Abs(sepDeg-wantDeg) > unitTolerance &&
				math.Abs((360-sepDeg)-wantDeg) > unitTolerance {
				return pass, &ValidationError{
					Epoch:    et,
					Step:     pass,
					Quantity: "hour/minute separation",
					Expected: fmt.Sprintf("%.12f deg (mod 360, folded)", wantDeg),
					Actual:   fmt.Sprintf("%.12f deg", sepDeg),
				}
			}
		}

		pass++
	}

	log.Info(ctx, "trajectory validated", logging.Int("half_hour_checks", pass))
	return pass, nil
}

func checkDirection(pos, want r3.Vec, et float64, step int) error {
	got := Hat(pos)
	diff := r3.Sub(want, got)
	if r3.Norm(diff) > unitTolerance {
		return &ValidationError{
			Epoch:    et,
			Step:     step,
			Quantity: "minute hand direction",
			Expected: fmt.Sprintf("(%g, %g, %g)", want.X, want.Y, want.Z),
			Actual:   fmt.Sprintf("(%.12g, %.12g, %.12g)", got.X, got.Y, got.Z),
		}
	}
	return nil
}
