package game

import (
	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

// updateLifecycle kills actors whose health ran out and respawns the dead
// once the configured delay has passed.
func (g *Game) updateLifecycle(dt float64) {
	delay := g.cfg.Combat.RespawnDelay

	for _, a := range g.actors {
		h := g.healthMap.Get(a.Entity)

		if !h.Dead {
			if h.Value <= 0 {
				g.kill(a, h)
			}
			continue
		}

		h.DeadTime += dt
		if delay > 0 && h.DeadTime >= delay {
			g.respawn(a, h)
		}
	}
}

// kill marks a as dead, drops its action and plays the death clip.
func (g *Game) kill(a *Actor, h *components.Health) {
	h.Value = 0
	h.Dead = true
	h.DeadTime = 0

	a.Exec.SetAction(nil)
	a.Walker.Stop()
	a.Exec.Die()

	g.collector.RecordDeath()
	g.lifetimeTracker.RecordDeath(a.Name)
	if g.selected == a && !a.Player {
		g.selected = nil
	}

	pos := a.Walker.Position()
	g.log.Info("actor died", "actor", a.Name, "tick", g.tick, "x", pos.X, "y", pos.Y)
}

// respawn returns a to its spawn point with full health and stamina.
func (g *Game) respawn(a *Actor, h *components.Health) {
	g.posMap.Get(a.Entity).Set(g.identMap.Get(a.Entity).Spawn)
	*g.motionMap.Get(a.Entity) = components.Motion{}
	*h = components.Health{Value: h.Max, Max: h.Max}
	a.Animator.Reset()

	// Drop distance walked before death
	a.Walker.GetAndResetDeltaDistance()
	a.Exec.Revive()
	a.Exec.ResetStamina()

	g.collector.RecordRespawn()
	g.lifetimeTracker.RecordRespawn(a.Name)
	g.log.Info("actor respawned", "actor", a.Name, "tick", g.tick)
}

// recordKill credits killer for a strike that emptied victim's health.
func (g *Game) recordKill(killer *Actor, victim *systems.ActorRef) {
	g.collector.RecordKill()
	g.lifetimeTracker.RecordKill(killer.Name)

	name := ""
	for _, a := range g.actors {
		if a.Entity == victim.Entity() {
			name = a.Name
			break
		}
	}
	g.log.Info("actor killed", "killer", killer.Name, "victim", name, "tick", g.tick)
}
