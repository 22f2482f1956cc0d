package game

import "github.com/pthm-cable/skirmish/telemetry"

// Step runs a single tick of the simulation.
func (g *Game) Step() {
	dt := g.cfg.Physics.DT
	g.perfCollector.StartTick()

	// 1. Walk toward current destinations
	g.perfCollector.StartPhase(telemetry.PhaseMovement)
	g.movement.Update(dt)

	// 2. Scripted commands, then one executor step per living actor
	g.perfCollector.StartPhase(telemetry.PhaseActions)
	g.applyScript()
	g.updateActions()

	// 3. Deaths and respawns
	g.perfCollector.StartPhase(telemetry.PhaseLifecycle)
	g.updateLifecycle(dt)

	// 4. Advance clips
	g.perfCollector.StartPhase(telemetry.PhaseAnimation)
	g.animation.Update(dt)

	// 5. Stats windows and action records
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// applyScript issues the commands scheduled for the current tick. A command
// that fails is logged and skipped.
func (g *Game) applyScript() {
	if g.script == nil {
		return
	}
	for _, cmd := range g.script.Due(g.tick) {
		if err := g.Apply(cmd); err != nil {
			g.log.Warn("scripted command failed", "tick", g.tick, "actor", cmd.Actor, "error", err)
		}
	}
}

// updateActions advances every living actor's executor by one step.
func (g *Game) updateActions() {
	for _, a := range g.actors {
		if a.Ref.IsDead() {
			continue
		}
		a.Exec.Tick()
	}
}
