package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/components"
)

// ActorRef is an actor entity seen as an attack target.
// It implements actor.Target.
type ActorRef struct {
	world  *ecs.World
	entity ecs.Entity
	pos    *ecs.Map[components.Position]
	health *ecs.Map[components.Health]
}

// NewActorRef creates a target handle for entity e.
func NewActorRef(w *ecs.World, e ecs.Entity) *ActorRef {
	return &ActorRef{
		world:  w,
		entity: e,
		pos:    ecs.NewMap[components.Position](w),
		health: ecs.NewMap[components.Health](w),
	}
}

// Entity returns the referenced entity.
func (r *ActorRef) Entity() ecs.Entity {
	return r.entity
}

// Position returns the target's current position.
func (r *ActorRef) Position() r2.Vec {
	if !r.world.Alive(r.entity) {
		return r2.Vec{}
	}
	return r.pos.Get(r.entity).Vec()
}

// IsDead reports whether the target has no health left or was removed.
func (r *ActorRef) IsDead() bool {
	if !r.world.Alive(r.entity) {
		return true
	}
	h := r.health.Get(r.entity)
	return h.Dead || h.Value <= 0
}

// ApplyDamage subtracts amount from the target's health, clamping at zero.
// It returns true when this hit took the last of it.
func (r *ActorRef) ApplyDamage(amount float64) bool {
	if r.IsDead() {
		return false
	}
	h := r.health.Get(r.entity)
	h.Value -= amount
	if h.Value <= 0 {
		h.Value = 0
		return true
	}
	return false
}

// Melee strikes targets for a fixed amount of damage.
// It implements actor.Attacker.
type Melee struct {
	Damage float64

	// OnKill is called after a strike that killed its target.
	OnKill func(victim *ActorRef)
}

// Attack damages t if it is an actor. Other targets are ignored.
func (m *Melee) Attack(t actor.Target) {
	ref, ok := t.(*ActorRef)
	if !ok {
		return
	}
	if ref.ApplyDamage(m.Damage) && m.OnKill != nil {
		m.OnKill(ref)
	}
}
