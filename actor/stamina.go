package actor

// chargeMovement deducts the cost of the distance travelled since the
// previous query. Applied regardless of bypass mode.
func (e *Executor) chargeMovement() {
	d := e.deps.Mover.GetAndResetDeltaDistance()
	e.stamina -= d * e.params.MoveStaminaCost
}

// canMove gates movement on remaining stamina.
func (e *Executor) canMove() bool {
	return e.ignoreStamina || e.stamina > 0
}

// canAffordStrike requires stamina to stay strictly positive after paying
// for an attack or interaction.
func (e *Executor) canAffordStrike() bool {
	return e.ignoreStamina || e.stamina-e.params.AttackStaminaCost > 0
}

// chargeStrike pays for an attack or interaction and restarts the shared
// cooldown.
func (e *Executor) chargeStrike() {
	e.stamina -= e.params.AttackStaminaCost
	e.lastFire = e.now
}

func (e *Executor) coolingDown() bool {
	return e.now < e.lastFire+e.params.AttackDelay
}
