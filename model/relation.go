package model

// Relation selects what the event finder looks for in the monitored scalar.
type Relation int

const (
	// RelationEquals finds times where the scalar equals a reference value.
	RelationEquals Relation = iota
	// RelationLocalMin finds times where the scalar reaches a local minimum.
	RelationLocalMin
)

func (r Relation) String() string {
	switch r {
	case RelationEquals:
		return "="
	case RelationLocalMin:
		return "LOCMIN"
	default:
		return "UNKNOWN"
	}
}
