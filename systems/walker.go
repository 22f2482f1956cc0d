package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/components"
)

// Walker exposes an actor entity's position and motion to an executor.
// It implements actor.Self and actor.Mover.
type Walker struct {
	entity ecs.Entity
	pos    *ecs.Map[components.Position]
	motion *ecs.Map[components.Motion]
}

// NewWalker creates a walker for entity e, which must carry Position and Motion.
func NewWalker(w *ecs.World, e ecs.Entity) *Walker {
	return &Walker{
		entity: e,
		pos:    ecs.NewMap[components.Position](w),
		motion: ecs.NewMap[components.Motion](w),
	}
}

// Entity returns the walking entity.
func (w *Walker) Entity() ecs.Entity {
	return w.entity
}

// Position returns the entity's current position.
func (w *Walker) Position() r2.Vec {
	return w.pos.Get(w.entity).Vec()
}

// GetAndResetDeltaDistance returns the distance walked since the last call.
func (w *Walker) GetAndResetDeltaDistance() float64 {
	m := w.motion.Get(w.entity)
	d := m.Travelled
	m.Travelled = 0
	return d
}

// MoveToward sets a new destination and starts walking.
func (w *Walker) MoveToward(dest r2.Vec) {
	m := w.motion.Get(w.entity)
	m.Destination = dest
	m.Moving = true
	m.Arrived = false
}

// Stop halts the walk in place.
func (w *Walker) Stop() {
	w.motion.Get(w.entity).Moving = false
}

// HasReachedDestination reports whether the last destination was reached.
func (w *Walker) HasReachedDestination() bool {
	return w.motion.Get(w.entity).Arrived
}
