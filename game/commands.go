package game

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/scenario"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// Apply executes one scripted command.
func (g *Game) Apply(cmd scenario.Command) error {
	kind, err := cmd.Kind()
	if err != nil {
		return err
	}

	switch kind {
	case scenario.CommandMove:
		_, err = g.MoveTo(cmd.Actor, cmd.Move.Vec())
	case scenario.CommandAttack:
		_, err = g.AttackActor(cmd.Actor, cmd.Attack)
	case scenario.CommandInteract:
		_, err = g.InteractWith(cmd.Actor, cmd.Interact)
	case scenario.CommandResetStamina:
		err = g.ResetStamina(cmd.Actor)
	case scenario.CommandIgnoreStamina:
		err = g.SetIgnoreStamina(cmd.Actor, *cmd.IgnoreStamina)
	}
	if err != nil {
		return fmt.Errorf("tick %d %s: %w", cmd.Tick, kind, err)
	}
	return nil
}

// MoveTo gives the named actor a move action toward dest.
func (g *Game) MoveTo(name string, dest r2.Vec) (*actor.Action, error) {
	a, err := g.livingActor(name)
	if err != nil {
		return nil, err
	}
	return g.issue(a, actor.NewMove(dest, g.completion(a))), nil
}

// AttackActor gives the named actor an attack action against target.
// Attacking a dead target is allowed; the action waits until it is replaced.
func (g *Game) AttackActor(name, target string) (*actor.Action, error) {
	a, err := g.livingActor(name)
	if err != nil {
		return nil, err
	}
	t := g.actorsByName[target]
	if t == nil {
		return nil, fmt.Errorf("%w: %q", scenario.ErrUnknownActor, target)
	}
	return g.issue(a, actor.NewAttack(t.Ref, g.completion(a))), nil
}

// InteractWith gives the named actor an interaction with the named object.
func (g *Game) InteractWith(name, object string) (*actor.Action, error) {
	a, err := g.livingActor(name)
	if err != nil {
		return nil, err
	}
	o := g.objectsByName[object]
	if o == nil {
		return nil, fmt.Errorf("%w: %q", scenario.ErrUnknownObject, object)
	}
	return g.issue(a, actor.NewInteract(o, g.completion(a))), nil
}

// ResetStamina refills the named actor's stamina.
func (g *Game) ResetStamina(name string) error {
	a := g.actorsByName[name]
	if a == nil {
		return fmt.Errorf("%w: %q", scenario.ErrUnknownActor, name)
	}
	a.Exec.ResetStamina()
	return nil
}

// SetIgnoreStamina toggles the named actor's stamina gating.
func (g *Game) SetIgnoreStamina(name string, ignore bool) error {
	a := g.actorsByName[name]
	if a == nil {
		return fmt.Errorf("%w: %q", scenario.ErrUnknownActor, name)
	}
	a.Exec.SetIgnoreStamina(ignore)
	g.log.Info("stamina gating changed", "actor", name, "ignore_stamina", ignore)
	return nil
}

// ClickKind classifies what a click in the world landed on.
type ClickKind uint8

const (
	ClickGround ClickKind = iota
	ClickActor
	ClickObject
)

// ClickTarget is a resolved click position.
type ClickTarget struct {
	Kind   ClickKind
	Point  r2.Vec
	Actor  *Actor
	Object *systems.WorldObject
}

// Resolve classifies a world position for the player's click. Living actors
// other than the player take precedence over objects; corpses count as ground.
func (g *Game) Resolve(p r2.Vec) ClickTarget {
	if a := g.actorAt(p, g.Player()); a != nil {
		return ClickTarget{Kind: ClickActor, Point: p, Actor: a}
	}
	if o := g.objectAt(p); o != nil {
		return ClickTarget{Kind: ClickObject, Point: p, Object: o}
	}
	return ClickTarget{Kind: ClickGround, Point: p}
}

// Click turns a click at world position p into an action for the player:
// attack an actor, interact with an object, or walk to the ground there.
func (g *Game) Click(p r2.Vec) (*actor.Action, error) {
	player := g.Player()
	if player == nil {
		return nil, ErrNoPlayer
	}

	t := g.Resolve(p)
	switch t.Kind {
	case ClickActor:
		return g.AttackActor(player.Name, t.Actor.Name)
	case ClickObject:
		return g.InteractWith(player.Name, t.Object.Name())
	default:
		return g.MoveTo(player.Name, t.Point)
	}
}

func (g *Game) livingActor(name string) (*Actor, error) {
	a := g.actorsByName[name]
	if a == nil {
		return nil, fmt.Errorf("%w: %q", scenario.ErrUnknownActor, name)
	}
	if a.Ref.IsDead() {
		return nil, fmt.Errorf("%w: %q", ErrActorDead, name)
	}
	return a, nil
}

// issue hands act to a's executor, superseding whatever it was doing.
func (g *Game) issue(a *Actor, act *actor.Action) *actor.Action {
	a.issued[act.ID] = g.tick
	g.collector.RecordIssued()
	g.lifetimeTracker.RecordIssued(a.Name)
	a.Exec.SetAction(act)

	g.log.Debug("action issued",
		"actor", a.Name,
		"action_id", act.ID,
		"kind", act.Kind.String(),
		"tick", g.tick,
	)
	return act
}

// completion builds the callback reporting an action's result to its issuer.
func (g *Game) completion(a *Actor) actor.CompletionFunc {
	return func(success bool) {
		if success {
			a.lastResult = telemetry.ResultCompleted
		} else {
			a.lastResult = telemetry.ResultStaminaOut
		}
	}
}
