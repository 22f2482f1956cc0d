// Package actor implements the per-frame action executor: it owns an actor's
// current action and stamina pool and advances the action one step per tick.
package actor

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Kind identifies what an action is trying to do.
type Kind uint8

const (
	KindMove Kind = iota
	KindAttack
	KindInteract
)

// String returns the lowercase name used in logs and CSV output.
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindAttack:
		return "attack"
	case KindInteract:
		return "interact"
	default:
		return "unknown"
	}
}

// Status is the result of advancing an action by one tick.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusCompleted
	StatusStaminaOut
)

// String returns the lowercase name used in logs and CSV output.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusStaminaOut:
		return "stamina_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends the action.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusStaminaOut
}

// CompletionFunc receives the outcome of an action. success is true only
// for StatusCompleted.
type CompletionFunc func(success bool)

// Action describes one intended activity. The kind and its target data are
// fixed at construction; only the started flag changes while it executes.
type Action struct {
	ID           string
	Kind         Kind
	Destination  r2.Vec       // KindMove
	Target       Target       // KindAttack
	Interactable Interactable // KindInteract

	started  bool
	onDone   CompletionFunc
	finished bool
}

// NewMove creates a move action toward dest.
func NewMove(dest r2.Vec, onDone CompletionFunc) *Action {
	return newAction(KindMove, onDone, func(a *Action) { a.Destination = dest })
}

// NewAttack creates an attack action against target.
func NewAttack(target Target, onDone CompletionFunc) *Action {
	return newAction(KindAttack, onDone, func(a *Action) { a.Target = target })
}

// NewInteract creates an interaction with obj.
func NewInteract(obj Interactable, onDone CompletionFunc) *Action {
	return newAction(KindInteract, onDone, func(a *Action) { a.Interactable = obj })
}

func newAction(kind Kind, onDone CompletionFunc, set func(*Action)) *Action {
	a := &Action{
		ID:     uuid.NewString(),
		Kind:   kind,
		onDone: onDone,
	}
	set(a)
	return a
}

// Started reports whether the executor has begun moving for this action.
func (a *Action) Started() bool {
	return a.started
}

func (a *Action) markStarted() {
	a.started = true
}

// complete invokes the completion callback at most once.
func (a *Action) complete(success bool) {
	if a.finished {
		return
	}
	a.finished = true
	if a.onDone != nil {
		a.onDone(success)
	}
}
