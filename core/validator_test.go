package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/clock-ephemeris/model"
)

// analyticClock serves exact clock-face states straight from the closed
// forms, bypassing any store.
type analyticClock struct {
	et0 float64
	// minuteSkew rotates the minute hand by a constant angle to fabricate
	// a geometry defect for the failure tests.
	minuteSkew float64
}

func (c analyticClock) State(target, observer model.Body, et float64) (model.StateSample, float64, error) {
	var period, skew float64
	switch target.Name {
	case "MINUTE":
		period, skew = 3600, c.minuteSkew
	case "HOUR":
		period = 43200
	default:
		return model.StateSample{}, 0, errors.New("unknown body")
	}

	theta := 2*math.Pi*(et-c.et0)/period + skew
	sin, cos := math.Sincos(theta)
	return model.StateSample{
		Epoch:    et,
		Position: r3.Vec{X: cos, Y: sin},
		Velocity: r3.Vec{X: -sin, Y: cos},
	}, 0, nil
}

func (c analyticClock) PhaseAngle(observer, a, b model.Body, et float64) (float64, error) {
	stA, _, err := c.State(a, observer, et)
	if err != nil {
		return 0, err
	}
	stB, _, err := c.State(b, observer, et)
	if err != nil {
		return 0, err
	}
	return Sep(stA.Position, stB.Position), nil
}

func testValidateConfig() ValidateConfig {
	return ValidateConfig{
		Center:    model.Body{Name: "CLOCK", Code: 1},
		Minute:    model.Body{Name: "MINUTE", Code: 2},
		Hour:      model.Body{Name: "HOUR", Code: 3},
		ET0:       0,
		DayLength: 86400,
	}
}

func TestValidate_AnalyticClockPasses(t *testing.T) {
	v := &Validator{}
	passes, err := v.Validate(context.Background(), analyticClock{}, testValidateConfig())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// Half-hour steps from ET0 through ET0+day inclusive.
	if passes != 49 {
		t.Errorf("checked %d steps, want 49", passes)
	}
}

func TestValidate_SkewedMinuteHandFails(t *testing.T) {
	v := &Validator{}
	clock := analyticClock{minuteSkew: 1e-6}

	_, err := v.Validate(context.Background(), clock, testValidateConfig())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// Fail-fast: the very first step (ET0, on the hour) must be the one
	// reported.
	if ve.Step != 0 {
		t.Errorf("failure reported at step %d, want 0", ve.Step)
	}
	if ve.Epoch != 0 {
		t.Errorf("failure reported at epoch %g, want 0", ve.Epoch)
	}
}

func TestValidate_QueryErrorPropagates(t *testing.T) {
	v := &Validator{}
	cfg := testValidateConfig()
	cfg.Minute = model.Body{Name: "SECOND", Code: 99}

	if _, err := v.Validate(context.Background(), analyticClock{}, cfg); err == nil {
		t.Fatal("expected an error when the ephemeris cannot serve a body")
	}
}
