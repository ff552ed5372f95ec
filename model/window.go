package model

import "fmt"

// Window is a closed time interval [Left, Right]. Degenerate windows
// (Left == Right) mark instantaneous events.
type Window struct {
	Left  float64
	Right float64
}

func (w Window) String() string {
	return fmt.Sprintf("[%.6f, %.6f]", w.Left, w.Right)
}

// WindowSet is an ordered set of disjoint windows. The zero value is an
// empty set ready for use.
type WindowSet struct {
	wins []Window
}

// Insert adds [left, right] to the set, merging it with any windows it
// overlaps or touches so the set stays sorted and disjoint.
func (s *WindowSet) Insert(left, right float64) {
	if right < left {
		left, right = right, left
	}

	merged := Window{Left: left, Right: right}
	out := make([]Window, 0, len(s.wins)+1)
	inserted := false
	for _, w := range s.wins {
		switch {
		case w.Right < merged.Left:
			out = append(out, w)
		case w.Left > merged.Right:
			if !inserted {
				out = append(out, merged)
				inserted = true
			}
			out = append(out, w)
		default:
			if w.Left < merged.Left {
				merged.Left = w.Left
			}
			if w.Right > merged.Right {
				merged.Right = w.Right
			}
		}
	}
	if !inserted {
		out = append(out, merged)
	}
	s.wins = out
}

// Card returns the number of windows in the set.
func (s *WindowSet) Card() int {
	if s == nil {
		return 0
	}
	return len(s.wins)
}

// Fetch returns the i-th window in ascending time order.
func (s *WindowSet) Fetch(i int) Window {
	return s.wins[i]
}

// Windows returns a copy of the windows in ascending time order.
func (s *WindowSet) Windows() []Window {
	if s == nil {
		return nil
	}
	out := make([]Window, len(s.wins))
	copy(out, s.wins)
	return out
}
