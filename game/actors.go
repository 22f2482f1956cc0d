package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

// Actor bundles an actor entity with its executor and collaborators.
type Actor struct {
	Name   string
	Player bool
	Entity ecs.Entity

	Exec     *actor.Executor
	Walker   *systems.Walker
	Ref      *systems.ActorRef
	Animator *systems.Animator
	Melee    *systems.Melee

	// Issue tick per in-flight action ID
	issued map[string]int32

	// Last values reported by the stamina observer
	stamina    float64
	maxStamina float64

	// Result of the most recent completion callback
	lastResult string
}

// StaminaView returns the stamina last reported to observers.
func (a *Actor) StaminaView() (current, max float64) {
	return a.stamina, a.maxStamina
}

// LastResult returns "completed" or "stamina_out" for the most recent
// action whose callback fired, or "" if none has.
func (a *Actor) LastResult() string {
	return a.lastResult
}

// ActorSpec describes an actor to spawn.
type ActorSpec struct {
	Name          string
	Position      r2.Vec
	Player        bool
	IgnoreStamina bool
}

// SpawnActor creates an actor entity and its executor.
func (g *Game) SpawnActor(spec ActorSpec) (*Actor, error) {
	if _, ok := g.actorsByName[spec.Name]; ok {
		return nil, fmt.Errorf("%w: actor %q", ErrDuplicateName, spec.Name)
	}
	cfg := g.cfg

	pos := components.Position{X: spec.Position.X, Y: spec.Position.Y}
	body := components.Body{Radius: cfg.Combat.BodyRadius}
	motion := components.Motion{}
	health := components.Health{Value: cfg.Combat.MaxHealth, Max: cfg.Combat.MaxHealth}
	ident := components.Identity{Name: spec.Name, Player: spec.Player, Spawn: spec.Position}
	anim := components.Animation{Clip: components.ClipIdle}

	entity := g.actorMapper.NewEntity(&pos, &body, &motion, &health, &ident, &anim)

	a := &Actor{
		Name:     spec.Name,
		Player:   spec.Player,
		Entity:   entity,
		Walker:   systems.NewWalker(g.world, entity),
		Ref:      systems.NewActorRef(g.world, entity),
		Animator: systems.NewAnimator(g.world, entity, cfg.Combat.DeathAnimation),
		issued:   make(map[string]int32),
	}
	a.Melee = &systems.Melee{
		Damage: cfg.Combat.Damage,
		OnKill: func(victim *systems.ActorRef) { g.recordKill(a, victim) },
	}

	params := cfg.ActorParams()
	params.IgnoreStamina = spec.IgnoreStamina

	exec, err := actor.New(params, actor.Deps{
		Self:     a.Walker,
		Mover:    a.Walker,
		Attacker: a.Melee,
		Animator: a.Animator,
		Clock:    g.clock,
		Logger:   g.log.With("actor", spec.Name),
	})
	if err != nil {
		g.world.RemoveEntity(entity)
		return nil, fmt.Errorf("creating executor for %q: %w", spec.Name, err)
	}
	a.Exec = exec
	a.stamina, a.maxStamina = exec.Stamina(), exec.MaxStamina()

	exec.OnStaminaChange(func(cur, max float64) {
		a.stamina, a.maxStamina = cur, max
		g.lifetimeTracker.UpdateStamina(a.Name, cur)
	})
	exec.OnOutcome(func(o actor.Outcome) { g.recordOutcome(a, o) })

	g.actors = append(g.actors, a)
	g.actorsByName[a.Name] = a
	g.lifetimeTracker.Register(a.Name, g.tick, exec.Stamina())

	g.log.Info("actor spawned",
		"actor", a.Name,
		"x", spec.Position.X,
		"y", spec.Position.Y,
		"player", spec.Player,
		"ignore_stamina", spec.IgnoreStamina,
	)
	return a, nil
}

// SpawnObject creates an interactable object. Wells refill the stamina of
// the actor using them.
func (g *Game) SpawnObject(name string, kind components.ObjectKind, box r2.Box) (*systems.WorldObject, error) {
	if _, ok := g.objectsByName[name]; ok {
		return nil, fmt.Errorf("%w: object %q", ErrDuplicateName, name)
	}

	foot := components.Footprint{Box: box}
	state := components.ObjectState{Name: name, Kind: kind}
	entity := g.objectMapper.NewEntity(&foot, &state)

	obj := systems.NewWorldObject(g.world, entity)
	obj.OnUse = g.onObjectUsed

	g.objects = append(g.objects, obj)
	g.objectsByName[name] = obj
	return obj, nil
}

// onObjectUsed applies effects that reach beyond the object itself.
func (g *Game) onObjectUsed(o *systems.WorldObject, by actor.Self) {
	user := g.actorBySelf(by)
	g.log.Debug("object used", "object", o.Name(), "kind", o.Kind().String(), "uses", o.State().Uses)
	if user == nil {
		return
	}
	if o.Kind() == components.KindWell {
		user.Exec.ResetStamina()
	}
}

// actorBySelf maps an executor's Self back to its actor.
func (g *Game) actorBySelf(s actor.Self) *Actor {
	w, ok := s.(*systems.Walker)
	if !ok {
		return nil
	}
	for _, a := range g.actors {
		if a.Entity == w.Entity() {
			return a
		}
	}
	return nil
}

// actorAt returns the living actor whose body covers p, skipping exclude.
func (g *Game) actorAt(p r2.Vec, exclude *Actor) *Actor {
	for _, a := range g.actors {
		if a == exclude || a.Ref.IsDead() {
			continue
		}
		radius := g.bodyMap.Get(a.Entity).Radius
		if r2.Norm(r2.Sub(p, a.Walker.Position())) <= radius {
			return a
		}
	}
	return nil
}

// objectAt returns the object whose footprint contains p.
func (g *Game) objectAt(p r2.Vec) *systems.WorldObject {
	for _, o := range g.objects {
		if g.footMap.Get(o.Entity()).Contains(p) {
			return o
		}
	}
	return nil
}
