package core

import "fmt"

// DomainError reports a solver input outside its valid domain.
type DomainError struct {
	Param string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("orbit solver: %s must be positive, got %g", e.Param, e.Value)
}

// ValidationError reports the first mismatch between the queried geometry
// and its closed-form prediction. Validation is fail-fast: the run stops at
// the first failing epoch.
type ValidationError struct {
	Epoch    float64
	Step     int
	Quantity string
	Expected string
	Actual   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at et=%.6f (step %d): %s expected %s, got %s",
		e.Epoch, e.Step, e.Quantity, e.Expected, e.Actual)
}

// EventCountMismatch reports a search whose window count deviates from its
// regression oracle. The configured counts are hard invariants of the clock
// geometry; any deviation means a build or search defect.
type EventCountMismatch struct {
	Search string
	Want   int
	Got    int
}

func (e *EventCountMismatch) Error() string {
	return fmt.Sprintf("search %q found %d windows, want %d", e.Search, e.Got, e.Want)
}
