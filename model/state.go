package model

import "gonum.org/v1/gonum/spatial/r3"

// StateSample is a position/velocity pair at a single epoch, expressed in an
// inertial frame centred on the segment's center body. Epochs are seconds
// past the J2000 reference epoch.
type StateSample struct {
	Epoch    float64
	Position r3.Vec
	Velocity r3.Vec
}

// Segment is one body's trajectory record in the store: a validity window,
// the bracketing state samples that describe the motion inside it, and the
// gravitational parameter of the two-body model the samples assume.
//
// For the clock's constant circular orbits the two samples are numerically
// identical states tagged with the window bounds.
type Segment struct {
	Body    Body
	Center  Body
	Frame   string
	Start   float64
	Stop    float64
	Samples []StateSample
	Mu      float64
	Label   string
}

// Covers reports whether et falls inside the segment's validity window.
func (s Segment) Covers(et float64) bool {
	return et >= s.Start && et <= s.Stop
}
