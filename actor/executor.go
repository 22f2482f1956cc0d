package actor

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrMissingDependency is returned by New when a collaborator is nil.
var ErrMissingDependency = errors.New("actor: missing dependency")

// Params holds the executor's tuning constants. They are not validated
// here; config.Config.Validate rejects non-positive values at load time.
type Params struct {
	MoveStaminaCost   float64 // stamina per unit of distance moved
	AttackStaminaCost float64 // stamina per attack or interaction
	DistanceToAttack  float64 // reach for attacks and interactions
	MaxStamina        float64
	AttackDelay       float64 // seconds between attacks/interactions
	IgnoreStamina     bool    // initial bypass mode
}

// Deps are the collaborators an executor drives. Logger is optional.
type Deps struct {
	Self     Self
	Mover    Mover
	Attacker Attacker
	Animator Animator
	Clock    Clock
	Logger   *slog.Logger
}

// StaminaFunc observes stamina changes.
type StaminaFunc func(current, max float64)

// Outcome reports how an action left the executor.
type Outcome struct {
	ActionID   string
	Kind       Kind
	Status     Status
	Superseded bool // discarded by SetAction before reaching a terminal status
	Stamina    float64
	At         float64 // clock time
}

// OutcomeFunc observes action outcomes.
type OutcomeFunc func(Outcome)

// Executor owns one actor's current action and stamina pool.
// It is not safe for concurrent use; call it from the simulation loop only.
type Executor struct {
	params Params
	deps   Deps
	log    *slog.Logger

	action        *Action
	stamina       float64
	ignoreStamina bool
	lastFire      float64
	now           float64
	dead          bool

	staminaObservers []StaminaFunc
	outcomeObservers []OutcomeFunc
}

// New creates an executor with full stamina.
func New(params Params, deps Deps) (*Executor, error) {
	switch {
	case deps.Self == nil:
		return nil, fmt.Errorf("%w: self", ErrMissingDependency)
	case deps.Mover == nil:
		return nil, fmt.Errorf("%w: mover", ErrMissingDependency)
	case deps.Attacker == nil:
		return nil, fmt.Errorf("%w: attacker", ErrMissingDependency)
	case deps.Animator == nil:
		return nil, fmt.Errorf("%w: animator", ErrMissingDependency)
	case deps.Clock == nil:
		return nil, fmt.Errorf("%w: clock", ErrMissingDependency)
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		params:        params,
		deps:          deps,
		log:           logger,
		stamina:       params.MaxStamina,
		ignoreStamina: params.IgnoreStamina,
	}, nil
}

// OnStaminaChange registers an observer for stamina notifications.
func (e *Executor) OnStaminaChange(fn StaminaFunc) {
	e.staminaObservers = append(e.staminaObservers, fn)
}

// OnOutcome registers an observer for finished and superseded actions.
func (e *Executor) OnOutcome(fn OutcomeFunc) {
	e.outcomeObservers = append(e.outcomeObservers, fn)
}

// SetAction installs a as the current action. A previous action is
// dropped without invoking its callback. Passing nil clears the slot.
func (e *Executor) SetAction(a *Action) {
	if prev := e.action; prev != nil {
		e.log.Debug("action superseded",
			"action_id", prev.ID,
			"kind", prev.Kind.String(),
		)
		e.emitOutcome(Outcome{
			ActionID:   prev.ID,
			Kind:       prev.Kind,
			Status:     StatusInProgress,
			Superseded: true,
			Stamina:    e.stamina,
			At:         e.now,
		})
	}

	e.action = a

	// Discard distance accumulated under the previous action.
	e.deps.Mover.GetAndResetDeltaDistance()
}

// SetIgnoreStamina toggles stamina gating. Deductions still apply.
func (e *Executor) SetIgnoreStamina(ignore bool) {
	e.ignoreStamina = ignore
}

// ResetStamina refills stamina and notifies observers.
func (e *Executor) ResetStamina() {
	e.stamina = e.params.MaxStamina
	e.notifyStamina()
}

// Tick advances the current action by one step.
func (e *Executor) Tick() {
	e.now = e.deps.Clock.Now()

	a := e.action
	if a == nil {
		e.deps.Mover.Stop()
		return
	}

	var status Status
	switch a.Kind {
	case KindMove:
		status = e.move(a, a.Destination)
	case KindAttack:
		status = e.attack(a)
	case KindInteract:
		status = e.interact(a)
	default:
		status = StatusInProgress
	}

	if !e.ignoreStamina {
		e.notifyStamina()
	}

	if !status.Terminal() {
		return
	}

	e.action = nil
	e.log.Debug("action finished",
		"action_id", a.ID,
		"kind", a.Kind.String(),
		"status", status.String(),
		"stamina", e.stamina,
	)
	e.emitOutcome(Outcome{
		ActionID: a.ID,
		Kind:     a.Kind,
		Status:   status,
		Stamina:  e.stamina,
		At:       e.now,
	})
	a.complete(status == StatusCompleted)
}

// Die plays the death animation. Only the first call has an effect.
func (e *Executor) Die() {
	if e.dead {
		return
	}
	e.dead = true
	e.deps.Animator.PlayDeathAnimation()
}

// Revive re-arms Die after a respawn.
func (e *Executor) Revive() {
	e.dead = false
}

// Action returns the current action, or nil.
func (e *Executor) Action() *Action {
	return e.action
}

// Stamina returns the current stamina. It can go negative in bypass mode.
func (e *Executor) Stamina() float64 {
	return e.stamina
}

// MaxStamina returns the stamina capacity.
func (e *Executor) MaxStamina() float64 {
	return e.params.MaxStamina
}

// IgnoreStamina reports whether gating is bypassed.
func (e *Executor) IgnoreStamina() bool {
	return e.ignoreStamina
}

// CooldownUntil returns the earliest time the next attack or interaction
// may fire.
func (e *Executor) CooldownUntil() float64 {
	return e.lastFire + e.params.AttackDelay
}

func (e *Executor) notifyStamina() {
	for _, fn := range e.staminaObservers {
		fn(e.stamina, e.params.MaxStamina)
	}
}

func (e *Executor) emitOutcome(o Outcome) {
	for _, fn := range e.outcomeObservers {
		fn(o)
	}
}
