package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// ---------- Move ----------

func TestMove_FirstTickStartsMovement(t *testing.T) {
	h := newHarness(t, defaultParams())
	dest := r2.Vec{X: 12, Y: -3}
	var rec recorder
	a := NewMove(dest, rec.done)

	h.exec.SetAction(a)
	h.exec.Tick()

	assert.True(t, a.Started())
	assert.Equal(t, []r2.Vec{dest}, h.mover.moves)
	assert.Equal(t, 0, rec.calls)

	// Later ticks poll instead of re-issuing the command.
	h.exec.Tick()
	h.exec.Tick()
	assert.Len(t, h.mover.moves, 1)
}

func TestMove_CompletesOnArrival(t *testing.T) {
	h := newHarness(t, defaultParams())
	var rec recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 3}, rec.done))

	h.exec.Tick()
	h.mover.travel(3)
	h.mover.reached = true
	h.exec.Tick()

	assert.Equal(t, []bool{true}, rec.results)
	assert.Nil(t, h.exec.Action())
	assert.InDelta(t, 10-3*0.2, h.exec.Stamina(), 1e-9)
}

func TestMove_StaminaDepletionIsMonotonic(t *testing.T) {
	p := defaultParams() // max 10, move cost 0.2
	h := newHarness(t, p)
	var rec recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 1000}, rec.done))
	h.exec.Tick()

	// 10.1 units per tick: cumulative cost first exceeds 10 at 50.5 units.
	const step = 10.1
	prev := h.exec.Stamina()
	for i := 1; i <= 4; i++ {
		h.mover.travel(step)
		h.exec.Tick()
		require.Equal(t, 0, rec.calls, "tick %d ended the action early", i)
		assert.InDelta(t, prev-step*p.MoveStaminaCost, h.exec.Stamina(), 1e-9)
		assert.Greater(t, h.exec.Stamina(), 0.0)
		prev = h.exec.Stamina()
	}

	stopsBefore := h.mover.stops
	h.mover.travel(step)
	h.exec.Tick()

	assert.Equal(t, []bool{false}, rec.results)
	assert.InDelta(t, 10-50.5*0.2, h.exec.Stamina(), 1e-9)
	assert.Equal(t, stopsBefore+1, h.mover.stops, "movement is stopped on stamina out")
	assert.Nil(t, h.exec.Action())
}

func TestMove_StaminaOutAtExactlyZero(t *testing.T) {
	t.Run("zero is out", func(t *testing.T) {
		h := newHarness(t, defaultParams())
		var rec recorder
		h.exec.SetAction(NewMove(r2.Vec{X: 100}, rec.done))
		h.exec.Tick()
		h.mover.travel(50)
		h.exec.Tick()
		assert.Equal(t, []bool{false}, rec.results)
	})

	t.Run("just above zero continues", func(t *testing.T) {
		h := newHarness(t, defaultParams())
		var rec recorder
		h.exec.SetAction(NewMove(r2.Vec{X: 100}, rec.done))
		h.exec.Tick()
		h.mover.travel(49.9)
		h.exec.Tick()
		assert.Equal(t, 0, rec.calls)
		assert.InDelta(t, 0.02, h.exec.Stamina(), 1e-9)
	})
}

func TestMove_StaminaOutBeforeStart(t *testing.T) {
	h := newHarness(t, defaultParams())
	var first recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 100}, first.done))
	h.exec.Tick()
	h.mover.travel(50)
	h.exec.Tick()
	require.Equal(t, []bool{false}, first.results)

	// Drained actor: the next move fails on its first tick without moving.
	var second recorder
	moves := len(h.mover.moves)
	h.exec.SetAction(NewMove(r2.Vec{Y: 5}, second.done))
	h.exec.Tick()

	assert.Equal(t, []bool{false}, second.results)
	assert.Len(t, h.mover.moves, moves)
}

func TestCallback_AtMostOnce(t *testing.T) {
	h := newHarness(t, defaultParams())
	var rec recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 1}, rec.done))
	h.exec.Tick()
	h.mover.reached = true
	for i := 0; i < 10; i++ {
		h.exec.Tick()
	}
	assert.Equal(t, 1, rec.calls)

	// Re-installing a finished action cannot fire it again.
	a := NewAttack(&fakeTarget{pos: r2.Vec{X: 1}}, rec.done)
	h.clock.t = 5
	h.exec.SetAction(a)
	h.exec.Tick()
	require.Equal(t, 2, rec.calls)
	h.clock.t = 10
	h.exec.SetAction(a)
	h.exec.Tick()
	assert.Equal(t, 2, rec.calls)
}

// ---------- Attack ----------

func TestAttack_InReach(t *testing.T) {
	// attackStaminaCost=3, distanceToAttack=2, attackDelay=1, target at 1.5.
	h := newHarness(t, defaultParams())
	h.clock.t = 1.0
	target := &fakeTarget{pos: r2.Vec{X: 1.5}}
	var rec recorder

	h.exec.SetAction(NewAttack(target, rec.done))
	h.exec.Tick()

	require.Len(t, h.attacker.hits, 1)
	assert.Same(t, target, h.attacker.hits[0])
	assert.Equal(t, 7.0, h.exec.Stamina())
	assert.Equal(t, []bool{true}, rec.results)
	assert.Equal(t, 1, h.mover.stops)
	assert.Equal(t, 2.0, h.exec.CooldownUntil())
}

func TestAttack_CooldownGating(t *testing.T) {
	h := newHarness(t, defaultParams())
	target := &fakeTarget{pos: r2.Vec{X: 1}}

	// Clock starts at zero, so the first strike waits for attackDelay.
	var first recorder
	h.exec.SetAction(NewAttack(target, first.done))
	for _, now := range []float64{0, 0.5, 0.999} {
		h.clock.t = now
		h.exec.Tick()
	}
	require.Empty(t, h.attacker.hits)
	h.clock.t = 1.0
	h.exec.Tick()
	require.Len(t, h.attacker.hits, 1)
	require.Equal(t, []bool{true}, first.results)

	// Fired at t0=1: nothing before t0+1, fires on the first tick at or after.
	var second recorder
	h.clock.t = 1.2
	h.exec.SetAction(NewAttack(target, second.done))
	for _, now := range []float64{1.2, 1.5, 1.99} {
		h.clock.t = now
		h.exec.Tick()
		assert.Len(t, h.attacker.hits, 1, "fired during cooldown at t=%v", now)
	}
	h.clock.t = 2.05
	h.exec.Tick()
	assert.Len(t, h.attacker.hits, 2)
	assert.Equal(t, []bool{true}, second.results)
	assert.InDelta(t, 3.05, h.exec.CooldownUntil(), 1e-9)
}

func TestAttack_CooldownSharedWithInteract(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 1
	var rec recorder
	h.exec.SetAction(NewAttack(&fakeTarget{pos: r2.Vec{X: 1}}, rec.done))
	h.exec.Tick()
	require.Len(t, h.attacker.hits, 1)

	obj := &fakeObject{point: r2.Vec{Y: 1}}
	h.exec.SetAction(NewInteract(obj, rec.done))
	h.clock.t = 1.5
	h.exec.Tick()
	assert.Empty(t, obj.users)

	h.clock.t = 2
	h.exec.Tick()
	assert.Len(t, obj.users, 1)
	assert.Equal(t, []bool{true, true}, rec.results)
}

func TestAttack_CancelDoesNotResetCooldown(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 1
	var rec recorder
	h.exec.SetAction(NewAttack(&fakeTarget{pos: r2.Vec{X: 1}, dead: true}, rec.done))
	h.exec.Tick()
	h.exec.SetAction(nil)

	assert.Equal(t, 1.0, h.exec.CooldownUntil())
	assert.Empty(t, h.attacker.hits)
}

func TestAttack_OutOfReachApproaches(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 5
	target := &fakeTarget{pos: r2.Vec{X: 6}}
	var rec recorder
	h.exec.SetAction(NewAttack(target, rec.done))

	for i := 0; i < 5; i++ {
		target.pos.X += 1 // target keeps walking away
		h.mover.reached = true
		h.mover.travel(0.5)
		h.exec.Tick()
	}

	assert.Empty(t, h.attacker.hits)
	assert.Equal(t, 0, rec.calls, "never completes while out of reach")
	require.Len(t, h.mover.moves, 5, "movement command issued every tick")
	assert.Equal(t, r2.Vec{X: 11}, h.mover.moves[4])
	assert.InDelta(t, 10-2.5*0.2, h.exec.Stamina(), 1e-9)

	// Caught up: the attack fires.
	h.self.pos = r2.Vec{X: 10}
	h.exec.Tick()
	assert.Len(t, h.attacker.hits, 1)
	assert.Equal(t, []bool{true}, rec.results)
}

func TestAttack_ApproachRunsOutOfStamina(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 5
	var rec recorder
	h.exec.SetAction(NewAttack(&fakeTarget{pos: r2.Vec{X: 100}}, rec.done))

	h.exec.Tick()
	h.mover.travel(60)
	stops := h.mover.stops
	h.exec.Tick()

	assert.Equal(t, []bool{false}, rec.results)
	assert.Equal(t, stops+1, h.mover.stops)
	assert.Empty(t, h.attacker.hits)
}

func TestAttack_DeadTargetStalls(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 2
	target := &fakeTarget{pos: r2.Vec{X: 1}, dead: true}
	var rec recorder
	a := NewAttack(target, rec.done)
	h.exec.SetAction(a)

	for i := 0; i < 100; i++ {
		h.clock.t += 0.1
		h.exec.Tick()
	}

	assert.Empty(t, h.attacker.hits)
	assert.Equal(t, 0, rec.calls)
	assert.Same(t, a, h.exec.Action(), "stalled action stays owned")
	assert.Equal(t, 10.0, h.exec.Stamina())
}

func TestAttack_CannotAfford(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 1
	// Drain to exactly 3: paying 3 would leave 0, which is not enough.
	var drain recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 50}, drain.done))
	h.exec.Tick()
	h.mover.travel(35)
	h.exec.Tick()
	require.InDelta(t, 3.0, h.exec.Stamina(), 1e-9)

	var rec recorder
	h.exec.SetAction(NewAttack(&fakeTarget{pos: r2.Vec{X: 1}}, rec.done))
	h.exec.Tick()

	assert.Equal(t, []bool{false}, rec.results)
	assert.Empty(t, h.attacker.hits)
	assert.InDelta(t, 3.0, h.exec.Stamina(), 1e-9, "failed strike costs nothing")
	assert.Equal(t, 1.0, h.exec.CooldownUntil(), "failed strike does not restart cooldown")
}

// ---------- Interact ----------

func TestInteract_UsesClosestPoint(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.clock.t = 3
	obj := &fakeObject{point: r2.Vec{X: 8}}
	var rec recorder
	h.exec.SetAction(NewInteract(obj, rec.done))

	h.exec.Tick()
	require.Equal(t, []r2.Vec{{X: 8}}, h.mover.moves)
	require.Empty(t, obj.users)

	h.self.pos = r2.Vec{X: 6.5}
	h.exec.Tick()

	require.Len(t, obj.users, 1)
	assert.Same(t, h.self, obj.users[0])
	assert.Equal(t, 7.0, h.exec.Stamina())
	assert.Equal(t, []bool{true}, rec.results)
}

func TestInteract_CannotAfford(t *testing.T) {
	p := defaultParams()
	p.MaxStamina = 2
	h := newHarness(t, p)
	h.clock.t = 3
	obj := &fakeObject{point: r2.Vec{X: 1}}
	var rec recorder

	h.exec.SetAction(NewInteract(obj, rec.done))
	h.exec.Tick()

	assert.Equal(t, []bool{false}, rec.results)
	assert.Empty(t, obj.users)
}

// ---------- Bypass ----------

func TestBypass_NeverStaminaOut(t *testing.T) {
	p := defaultParams()
	p.IgnoreStamina = true
	h := newHarness(t, p)
	var rec recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 1e6}, rec.done))
	h.exec.Tick()

	prev := h.exec.Stamina()
	for i := 0; i < 20; i++ {
		h.mover.travel(100)
		h.exec.Tick()
		assert.Less(t, h.exec.Stamina(), prev, "deduction still applies")
		prev = h.exec.Stamina()
	}
	assert.Equal(t, 0, rec.calls)
	assert.InDelta(t, 10-2000*0.2, h.exec.Stamina(), 1e-6)
	assert.Empty(t, h.stamina, "no per-tick notifications while bypassed")

	// Deeply negative stamina still strikes.
	h.clock.t = 1
	var strike recorder
	h.exec.SetAction(NewAttack(&fakeTarget{pos: r2.Vec{X: 1}}, strike.done))
	h.exec.Tick()
	assert.Equal(t, []bool{true}, strike.results)
	assert.InDelta(t, prev-3, h.exec.Stamina(), 1e-6)
}

func TestBypass_ToggleRestoresGating(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.exec.SetIgnoreStamina(true)
	var rec recorder
	h.exec.SetAction(NewMove(r2.Vec{X: 1e6}, rec.done))
	h.exec.Tick()
	h.mover.travel(100)
	h.exec.Tick()
	require.Equal(t, 0, rec.calls)

	h.exec.SetIgnoreStamina(false)
	h.exec.Tick()

	assert.Equal(t, []bool{false}, rec.results)
}
