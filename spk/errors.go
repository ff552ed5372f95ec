package spk

import "fmt"

// StoreWriteError is a fatal I/O or format failure while building the store.
// A build that fails part-way leaves the store indeterminate; callers must
// treat the file as unusable rather than attempt recovery.
type StoreWriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("trajectory store %q: %s: %v", e.Path, e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError is a fatal failure querying the store: a missing or
// unbuilt store, an unregistered body, or an epoch outside the stored
// validity window.
type StoreReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("trajectory store %q: %s: %v", e.Path, e.Op, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }
