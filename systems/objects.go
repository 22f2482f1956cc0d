package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/components"
)

// WorldObject is an interactable object entity.
// It implements actor.Interactable.
type WorldObject struct {
	entity ecs.Entity
	foot   *ecs.Map[components.Footprint]
	state  *ecs.Map[components.ObjectState]

	// OnUse is called after every interaction, once the kind's effect applied.
	OnUse func(o *WorldObject, by actor.Self)
}

// NewWorldObject creates a handle for entity e, which must carry
// Footprint and ObjectState.
func NewWorldObject(w *ecs.World, e ecs.Entity) *WorldObject {
	return &WorldObject{
		entity: e,
		foot:   ecs.NewMap[components.Footprint](w),
		state:  ecs.NewMap[components.ObjectState](w),
	}
}

// Entity returns the object entity.
func (o *WorldObject) Entity() ecs.Entity {
	return o.entity
}

// Name returns the object's scenario name.
func (o *WorldObject) Name() string {
	return o.state.Get(o.entity).Name
}

// Kind returns the object's kind.
func (o *WorldObject) Kind() components.ObjectKind {
	return o.state.Get(o.entity).Kind
}

// State returns the object's mutable state.
func (o *WorldObject) State() *components.ObjectState {
	return o.state.Get(o.entity)
}

// ClosestPoint returns the point of the footprint nearest to from.
func (o *WorldObject) ClosestPoint(from r2.Vec) r2.Vec {
	box := o.foot.Get(o.entity).Box
	return r2.Vec{
		X: clamp(from.X, box.Min.X, box.Max.X),
		Y: clamp(from.Y, box.Min.Y, box.Max.Y),
	}
}

// Interact applies the object's effect.
func (o *WorldObject) Interact(by actor.Self) {
	s := o.state.Get(o.entity)
	s.Uses++

	switch s.Kind {
	case components.KindChest:
		if !s.Open {
			s.Open = true
			s.Loot++
		}
	case components.KindLever:
		s.On = !s.On
	case components.KindWell:
		// Refill is wired through OnUse
	}

	if o.OnUse != nil {
		o.OnUse(o, by)
	}
}
