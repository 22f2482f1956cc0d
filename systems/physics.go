// Package systems contains ECS systems for the simulation and the adapters
// that expose entities to the actor package.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// Clamp returns v limited to the bounds.
func (b Bounds) Clamp(v r2.Vec) r2.Vec {
	return r2.Vec{X: clamp(v.X, 0, b.Width), Y: clamp(v.Y, 0, b.Height)}
}

// MovementSystem advances every walking actor toward its destination.
type MovementSystem struct {
	filter       ecs.Filter3[components.Position, components.Motion, components.Health]
	bounds       Bounds
	speed        float64
	arriveRadius float64
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World, bounds Bounds, speed, arriveRadius float64) *MovementSystem {
	return &MovementSystem{
		filter:       *ecs.NewFilter3[components.Position, components.Motion, components.Health](w),
		bounds:       bounds,
		speed:        speed,
		arriveRadius: arriveRadius,
	}
}

// Update runs the movement system for one tick of length dt.
func (s *MovementSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, motion, health := query.Get()

		// Corpses stay where they fell
		if health.Dead {
			motion.Moving = false
			continue
		}

		motion.Destination = s.bounds.Clamp(motion.Destination)
		UpdateMovement(pos, motion, s.speed, s.arriveRadius, dt)
	}
}

// UpdateMovement moves pos in a straight line toward motion.Destination by
// at most speed*dt and adds the distance covered to motion.Travelled.
// Arrived is set once the destination is within arriveRadius.
func UpdateMovement(pos *components.Position, motion *components.Motion, speed, arriveRadius, dt float64) {
	if !motion.Moving {
		return
	}

	cur := pos.Vec()
	delta := r2.Sub(motion.Destination, cur)
	dist := r2.Norm(delta)

	if dist <= arriveRadius {
		motion.Moving = false
		motion.Arrived = true
		return
	}

	step := speed * dt
	if step >= dist {
		pos.Set(motion.Destination)
		motion.Travelled += dist
		motion.Moving = false
		motion.Arrived = true
		return
	}

	pos.Set(r2.Add(cur, r2.Scale(step/dist, delta)))
	motion.Travelled += step
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
