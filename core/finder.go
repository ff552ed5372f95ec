package core

import (
	"context"
	"fmt"
	"math"

	"github.com/signalsfoundry/clock-ephemeris/internal/logging"
	"github.com/signalsfoundry/clock-ephemeris/internal/observability"
	"github.com/signalsfoundry/clock-ephemeris/model"
)

// AngleFunc is the monitored scalar: an angle in radians as a continuous
// function of ephemeris time.
type AngleFunc func(et float64) (float64, error)

// Search parameterises one event search.
type Search struct {
	// Relation selects equality against RefValue or a local minimum.
	Relation model.Relation
	// RefValue is the target angle in radians for RelationEquals.
	RefValue float64
	// Step is the maximum sampling step in seconds. Every event whose
	// surrounding monotonic run is longer than Step is found; events
	// narrower than the step can alias away, which callers accept by
	// choosing Step well below the fastest relevant period.
	Step float64
	// MaxSteps caps how many sampling intervals the confinement window is
	// split into.
	MaxSteps int
	// Tolerance is the refinement convergence bound in seconds.
	Tolerance float64
}

// derivStep is the half-width, in seconds, of the central difference used to
// estimate the monitored function's slope. It stays well above floating-point
// noise on angles while remaining far below the sampling step, and the
// central difference keeps the correct sign even once a refinement bracket
// shrinks inside it.
const derivStep = 1e-4

// Finder locates all times in a confinement window where the monitored
// angle satisfies a search relation.
type Finder struct {
	Log     logging.Logger
	Metrics *observability.Collector
}

// FindWindows partitions the confinement window into at most MaxSteps
// intervals of at most Step seconds, brackets candidate events by sign
// changes at the interval boundaries (of f−ref for equality, of the slope
// for local minima), and refines each bracket by bisection down to
// Tolerance. The result is time-ordered, disjoint, and degenerate: each
// confirmed event is a zero-width window.
//
// A zero-length confinement window yields an empty result and no error.
func (f *Finder) FindWindows(ctx context.Context, fn AngleFunc, search Search, confine model.Window) (*model.WindowSet, error) {
	log := f.Log
	if log == nil {
		log = logging.Noop()
	}

	result := &model.WindowSet{}
	span := confine.Right - confine.Left
	if span <= 0 {
		return result, nil
	}
	if search.Step <= 0 {
		return nil, fmt.Errorf("event search: step must be positive, got %g", search.Step)
	}
	if search.Tolerance <= 0 {
		return nil, fmt.Errorf("event search: tolerance must be positive, got %g", search.Tolerance)
	}

	n := int(math.Ceil(span / search.Step))
	if search.MaxSteps > 0 && n > search.MaxSteps {
		n = search.MaxSteps
	}
	if n < 1 {
		n = 1
	}
	h := span / float64(n)
	f.Metrics.AddSearchSteps(n + 1)

	// g is the bracketing function: its sign changes straddle events.
	var g func(et float64) (float64, error)
	switch search.Relation {
	case model.RelationEquals:
		g = func(et float64) (float64, error) {
			v, err := fn(et)
			if err != nil {
				return 0, err
			}
			return v - search.RefValue, nil
		}
	case model.RelationLocalMin:
		g = func(et float64) (float64, error) {
			return slope(fn, et)
		}
	default:
		return nil, fmt.Errorf("event search: unsupported relation %v", search.Relation)
	}

	prevT := confine.Left
	prevG, err := g(prevT)
	if err != nil {
		return nil, fmt.Errorf("event search at et=%.6f: %w", prevT, err)
	}

	for i := 1; i <= n; i++ {
		t := confine.Left + h*float64(i)
		if i == n {
			t = confine.Right
		}
		gt, err := g(t)
		if err != nil {
			return nil, fmt.Errorf("event search at et=%.6f: %w", t, err)
		}

		switch {
		case prevG == 0:
			// An event exactly on a sample boundary. For local minima the
			// slope must actually turn upward for this to be a minimum.
			if search.Relation == model.RelationEquals || gt > 0 {
				result.Insert(prevT, prevT)
			}
		case prevG < 0 && gt > 0, prevG > 0 && gt < 0:
			if search.Relation == model.RelationLocalMin && prevG > 0 {
				// Slope turning downward is a local maximum; skip it.
				break
			}
			root, err := f.bisect(g, prevT, t, prevG, search.Tolerance)
			if err != nil {
				return nil, err
			}
			result.Insert(root, root)
		}

		prevT, prevG = t, gt
	}
	if prevG == 0 && search.Relation == model.RelationEquals {
		result.Insert(prevT, prevT)
	}

	f.Metrics.AddSearchWindows(search.Relation.String(), result.Card())
	log.Debug(ctx, "event search complete",
		logging.String("relation", search.Relation.String()),
		logging.Int("steps", n),
		logging.Int("windows", result.Card()),
	)
	return result, nil
}

// bisect shrinks [left, right] around a sign change of g until the bracket
// is narrower than tol, then returns its midpoint.
func (f *Finder) bisect(g func(float64) (float64, error), left, right, gLeft float64, tol float64) (float64, error) {
	iters := 0
	for right-left > tol {
		mid := left + (right-left)/2
		if mid == left || mid == right {
			break // bracket at floating-point resolution
		}
		gMid, err := g(mid)
		if err != nil {
			return 0, fmt.Errorf("event refinement at et=%.6f: %w", mid, err)
		}
		if gMid == 0 {
			left, right = mid, mid
			break
		}
		if (gLeft < 0) == (gMid < 0) {
			left, gLeft = mid, gMid
		} else {
			right = mid
		}
		iters++
	}
	f.Metrics.ObserveRefinement(iters)
	return left + (right-left)/2, nil
}

// slope estimates the time derivative of fn at et by central difference.
func slope(fn AngleFunc, et float64) (float64, error) {
	lo, err := fn(et - derivStep)
	if err != nil {
		return 0, err
	}
	hi, err := fn(et + derivStep)
	if err != nil {
		return 0, err
	}
	return (hi - lo) / (2 * derivStep), nil
}
