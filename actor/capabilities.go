package actor

import "gonum.org/v1/gonum/spatial/r2"

// Self exposes the executing actor's own position.
type Self interface {
	Position() r2.Vec
}

// Mover drives the actor's locomotion. The executor only issues commands
// and polls; path following is the mover's concern.
type Mover interface {
	// GetAndResetDeltaDistance returns the distance travelled since the
	// previous call and clears the accumulator.
	GetAndResetDeltaDistance() float64
	MoveToward(dest r2.Vec)
	Stop()
	HasReachedDestination() bool
}

// Target is something an actor can attack.
type Target interface {
	Position() r2.Vec
	IsDead() bool
}

// Attacker delivers an attack. Fire and forget.
type Attacker interface {
	Attack(target Target)
}

// Interactable is a world object an actor can use.
type Interactable interface {
	// ClosestPoint returns the point on the object nearest to from.
	ClosestPoint(from r2.Vec) r2.Vec
	Interact(by Self)
}

// Animator plays presentation clips for the actor.
type Animator interface {
	PlayDeathAnimation()
}

// Clock returns the current simulation time in seconds. It must be
// monotonically non-decreasing.
type Clock interface {
	Now() float64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() float64

// Now implements Clock.
func (f ClockFunc) Now() float64 { return f() }
