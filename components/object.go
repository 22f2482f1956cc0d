package components

import "gonum.org/v1/gonum/spatial/r2"

// ObjectKind determines what an interaction does.
type ObjectKind uint8

const (
	KindChest ObjectKind = iota // opens once
	KindLever                   // toggles
	KindWell                    // refills the user's stamina
)

// String returns the kind name used in scenario files.
func (k ObjectKind) String() string {
	switch k {
	case KindChest:
		return "chest"
	case KindLever:
		return "lever"
	case KindWell:
		return "well"
	default:
		return "unknown"
	}
}

// ParseObjectKind maps a scenario name to a kind.
func ParseObjectKind(s string) (ObjectKind, bool) {
	switch s {
	case "chest":
		return KindChest, true
	case "lever":
		return KindLever, true
	case "well":
		return KindWell, true
	default:
		return 0, false
	}
}

// Footprint is the axis-aligned area an object occupies.
type Footprint struct {
	Box r2.Box
}

// Contains reports whether p lies inside the footprint, edges included.
func (f *Footprint) Contains(p r2.Vec) bool {
	return p.X >= f.Box.Min.X && p.X <= f.Box.Max.X &&
		p.Y >= f.Box.Min.Y && p.Y <= f.Box.Max.Y
}

// ObjectState is the mutable state of an interactable object.
type ObjectState struct {
	Name string
	Kind ObjectKind
	Open bool // chest opened
	On   bool // lever position
	Uses int
	Loot int // items handed out by a chest
}
