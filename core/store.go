package core

import (
	"context"

	"github.com/signalsfoundry/clock-ephemeris/model"
)

// Ephemeris is the read side of the trajectory store: state vectors and
// phase angles for registered bodies at epochs inside the stored validity
// windows. The concrete store lives in package spk; core only depends on
// this contract so the solver/validator/finder logic stays toolkit-agnostic.
type Ephemeris interface {
	// State returns the state of target relative to observer at et, plus
	// the one-way light time between them.
	State(target, observer model.Body, et float64) (model.StateSample, float64, error)

	// PhaseAngle returns the angle at observer subtended by rays towards
	// a and b, in radians in [0, π].
	PhaseAngle(observer, a, b model.Body, et float64) (float64, error)
}

// SegmentStore is the build side of the trajectory store.
type SegmentStore interface {
	// Exists probes whether the store has already been built.
	Exists() bool

	// Create makes a fresh store ready to receive segments. It fails if
	// the store already exists.
	Create(ctx context.Context) (SegmentWriter, error)
}

// SegmentWriter receives trajectory segments for a store under construction.
// Close finalises the store; a store abandoned before Close is in an
// indeterminate state and must be rebuilt from scratch.
type SegmentWriter interface {
	WriteSegment(ctx context.Context, seg model.Segment) error
	Close() error
}
