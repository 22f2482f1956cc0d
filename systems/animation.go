package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skirmish/components"
)

// Animator plays clips on an actor's Animation component.
// It implements actor.Animator.
type Animator struct {
	entity        ecs.Entity
	anim          *ecs.Map[components.Animation]
	deathDuration float64
}

// NewAnimator creates an animator for entity e.
func NewAnimator(w *ecs.World, e ecs.Entity, deathDuration float64) *Animator {
	return &Animator{
		entity:        e,
		anim:          ecs.NewMap[components.Animation](w),
		deathDuration: deathDuration,
	}
}

// PlayDeathAnimation starts the death clip from the beginning.
func (a *Animator) PlayDeathAnimation() {
	anim := a.anim.Get(a.entity)
	anim.Clip = components.ClipDeath
	anim.Elapsed = 0
	anim.Duration = a.deathDuration
	anim.Playing = true
}

// Reset returns the entity to its idle clip.
func (a *Animator) Reset() {
	*a.anim.Get(a.entity) = components.Animation{Clip: components.ClipIdle}
}

// AnimationSystem advances playing clips.
type AnimationSystem struct {
	filter ecs.Filter1[components.Animation]
}

// NewAnimationSystem creates a new animation system.
func NewAnimationSystem(w *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		filter: *ecs.NewFilter1[components.Animation](w),
	}
}

// Update advances every playing clip by dt, stopping it at its end.
func (s *AnimationSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		anim := query.Get()
		if !anim.Playing {
			continue
		}
		anim.Elapsed += dt
		if anim.Elapsed >= anim.Duration {
			anim.Elapsed = anim.Duration
			anim.Playing = false
		}
	}
}
