package core

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/clock-ephemeris/internal/logging"
	"github.com/signalsfoundry/clock-ephemeris/model"
)

// BuildConfig carries everything the builder needs to lay down the clock
// trajectories: the three bodies, the reference epoch at which both hands
// point along +X, and the synthetic day length.
type BuildConfig struct {
	Center model.Body
	Minute model.Body
	Hour   model.Body

	// ET0 is the reference epoch, seconds past J2000.
	ET0 float64
	// DayLength is the synthetic day in seconds. The minute hand's orbital
	// period is DayLength/24 (one hour) and the hour hand's is DayLength/2,
	// so the hour hand sweeps the full face twice per day like a real clock.
	DayLength float64
	// Mu is the gravitational parameter of the two-body model, 1.0 here.
	Mu float64
	// Frame names the inertial frame the states are expressed in.
	Frame string
}

// Builder writes the clock's trajectory segments into a store.
type Builder struct {
	Log logging.Logger
}

// BuildIfAbsent constructs the trajectory store unless it already exists.
// It returns whether a build was performed. A failed build leaves the store
// in an indeterminate state; no partial recovery is attempted.
func (b *Builder) BuildIfAbsent(ctx context.Context, store SegmentStore, cfg BuildConfig) (bool, error) {
	log := b.Log
	if log == nil {
		log = logging.Noop()
	}

	if store.Exists() {
		log.Debug(ctx, "trajectory store already built, skipping")
		return false, nil
	}

	// Both hands share one validity window generous enough to cover every
	// later query: one day before ET0 to two days after.
	start := cfg.ET0 - cfg.DayLength
	stop := cfg.ET0 + 2*cfg.DayLength

	w, err := store.Create(ctx)
	if err != nil {
		return false, fmt.Errorf("create trajectory store: %w", err)
	}
	defer w.Close()

	hands := []struct {
		body   model.Body
		period float64
		label  string
	}{
		{cfg.Minute, cfg.DayLength / 24, "minute_orbit"},
		{cfg.Hour, cfg.DayLength / 2, "hour_orbit"},
	}

	for _, hand := range hands {
		orbit, err := SolveCircularOrbit(hand.period, cfg.Mu)
		if err != nil {
			return false, fmt.Errorf("solve orbit for %s: %w", hand.body, err)
		}

		// At ET0 the hand sits on the reference direction (+X) moving
		// along +Y: counterclockwise in the XY plane seen from +Z. The
		// orbit is exactly circular, so this single state describes the
		// whole window; it is written twice to bound the segment.
		state := model.StateSample{
			Position: r3.Vec{X: orbit.SemiMajorAxis},
			Velocity: r3.Vec{Y: orbit.Speed},
		}
		first, second := state, state
		first.Epoch, second.Epoch = start, stop

		seg := model.Segment{
			Body:    hand.body,
			Center:  cfg.Center,
			Frame:   cfg.Frame,
			Start:   start,
			Stop:    stop,
			Samples: []model.StateSample{first, second},
			Mu:      cfg.Mu,
			Label:   hand.label,
		}
		if err := w.WriteSegment(ctx, seg); err != nil {
			return false, fmt.Errorf("write segment %q: %w", hand.label, err)
		}

		log.Info(ctx, "wrote trajectory segment",
			logging.String("label", hand.label),
			logging.String("body", hand.body.String()),
			logging.Any("semi_major_axis", orbit.SemiMajorAxis),
			logging.Any("speed", orbit.Speed),
		)
	}

	if err := w.Close(); err != nil {
		return false, fmt.Errorf("finalise trajectory store: %w", err)
	}
	return true, nil
}
