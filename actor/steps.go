package actor

import "gonum.org/v1/gonum/spatial/r2"

// move runs one Move step toward dest.
func (e *Executor) move(a *Action, dest r2.Vec) Status {
	e.chargeMovement()
	if !e.canMove() {
		e.deps.Mover.Stop()
		return StatusStaminaOut
	}

	if !a.Started() {
		a.markStarted()
		e.deps.Mover.MoveToward(dest)
		return StatusInProgress
	}
	if e.deps.Mover.HasReachedDestination() {
		return StatusCompleted
	}
	return StatusInProgress
}

// approach closes the distance to a target that is out of reach. It
// charges stamina like a move step but re-aims at dest every tick and
// never completes: the enclosing attack or interaction does.
func (e *Executor) approach(a *Action, dest r2.Vec) Status {
	e.chargeMovement()
	if !e.canMove() {
		e.deps.Mover.Stop()
		return StatusStaminaOut
	}

	a.markStarted()
	e.deps.Mover.MoveToward(dest)
	return StatusInProgress
}

func (e *Executor) attack(a *Action) Status {
	if e.coolingDown() {
		return StatusInProgress
	}

	targetPos := a.Target.Position()
	if e.outOfReach(targetPos) {
		return e.approach(a, targetPos)
	}

	// A dead target stalls the action until it is replaced.
	if a.Target.IsDead() {
		return StatusInProgress
	}

	e.deps.Mover.Stop()
	if !e.canAffordStrike() {
		return StatusStaminaOut
	}

	e.deps.Attacker.Attack(a.Target)
	e.chargeStrike()
	return StatusCompleted
}

func (e *Executor) interact(a *Action) Status {
	if e.coolingDown() {
		return StatusInProgress
	}

	point := a.Interactable.ClosestPoint(e.deps.Self.Position())
	if e.outOfReach(point) {
		return e.approach(a, point)
	}

	e.deps.Mover.Stop()
	if !e.canAffordStrike() {
		return StatusStaminaOut
	}

	a.Interactable.Interact(e.deps.Self)
	e.chargeStrike()
	return StatusCompleted
}

func (e *Executor) outOfReach(p r2.Vec) bool {
	return r2.Norm(r2.Sub(p, e.deps.Self.Position())) > e.params.DistanceToAttack
}
