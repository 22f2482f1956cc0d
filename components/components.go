// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p *Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Set moves the position to v.
func (p *Position) Set(v r2.Vec) {
	p.X, p.Y = v.X, v.Y
}

// Body holds physical properties of an actor.
type Body struct {
	Radius float64
}

// Motion is the straight-line walk state driven by systems.Walker.
type Motion struct {
	Destination r2.Vec
	Moving      bool
	Arrived     bool
	Travelled   float64 // distance since last read
}

// Health tracks hit points and death.
type Health struct {
	Value    float64
	Max      float64
	Dead     bool
	DeadTime float64 // seconds since death
}

// Fraction returns Value/Max in [0, 1].
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	f := h.Value / h.Max
	if f < 0 {
		return 0
	}
	return f
}

// Identity names an actor and remembers where it spawned.
type Identity struct {
	Name   string
	Player bool
	Spawn  r2.Vec
}

// Clip names an animation clip.
type Clip uint8

const (
	ClipIdle Clip = iota
	ClipDeath
)

// String returns the clip name.
func (c Clip) String() string {
	switch c {
	case ClipIdle:
		return "idle"
	case ClipDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Animation holds the playing clip and its progress.
type Animation struct {
	Clip     Clip
	Elapsed  float64
	Duration float64
	Playing  bool
}

// Progress returns how far the clip has played, in [0, 1].
func (a *Animation) Progress() float64 {
	if a.Duration <= 0 {
		if a.Playing {
			return 0
		}
		return 1
	}
	p := a.Elapsed / a.Duration
	if p > 1 {
		return 1
	}
	return p
}
