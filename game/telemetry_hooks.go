package game

import (
	"github.com/pthm-cable/skirmish/actor"
	"github.com/pthm-cable/skirmish/telemetry"
)

// recordOutcome accounts for an action leaving a's executor.
func (g *Game) recordOutcome(a *Actor, o actor.Outcome) {
	issuedTick, ok := a.issued[o.ActionID]
	if !ok {
		issuedTick = g.tick
	}
	delete(a.issued, o.ActionID)

	rec := telemetry.NewActionRecord(g.tick, issuedTick, a.Name, o)
	g.pendingRecords = append(g.pendingRecords, rec)
	g.collector.RecordOutcome(o)
	g.lifetimeTracker.RecordResult(a.Name, rec.Result)

	g.log.Debug("action outcome", "record", rec)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	alive, dead, stamina := g.sampleStamina()

	stats := g.collector.Flush(g.tick, alive, dead, stamina)
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			g.log.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.log.Error("failed to write perf", "error", err)
		}
	}
	g.flushActionRecords()

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				g.log.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// flushActionRecords writes buffered action records and clears the buffer.
func (g *Game) flushActionRecords() {
	if len(g.pendingRecords) == 0 {
		return
	}
	if err := g.outputManager.WriteActions(g.pendingRecords); err != nil {
		g.log.Error("failed to write actions", "error", err)
	}
	g.pendingRecords = g.pendingRecords[:0]
}

// sampleStamina counts actors and collects the stamina of the living ones.
func (g *Game) sampleStamina() (alive, dead int, stamina []float64) {
	stamina = make([]float64, 0, len(g.actors))
	for _, a := range g.actors {
		if g.healthMap.Get(a.Entity).Dead {
			dead++
			continue
		}
		alive++
		s := a.Exec.Stamina()
		stamina = append(stamina, s)
		g.lifetimeTracker.UpdateStamina(a.Name, s)
	}
	return alive, dead, stamina
}
