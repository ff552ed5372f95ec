package model

import "fmt"

// Body identifies one point mass in the simulation: a human-readable name
// plus the numeric code used by the trajectory store. Bodies are defined in
// the kernel pool at startup and never change afterwards.
type Body struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

func (b Body) String() string {
	return fmt.Sprintf("%s(%d)", b.Name, b.Code)
}

// OrbitParameters describes a circular orbit solved for a desired period:
// the orbit radius and the constant tangential speed along it.
type OrbitParameters struct {
	SemiMajorAxis float64
	Speed         float64
}
