package telemetry

import "github.com/pthm-cable/skirmish/actor"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	issued     int
	completed  int
	staminaOut int
	superseded int
	attacks    int
	interacts  int
	moves      int
	kills      int
	deaths     int
	respawns   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordIssued records an action handed to an executor.
func (c *Collector) RecordIssued() {
	c.issued++
}

// RecordOutcome records an action leaving its executor.
func (c *Collector) RecordOutcome(o actor.Outcome) {
	switch ResultOf(o) {
	case ResultSuperseded:
		c.superseded++
		return
	case ResultStaminaOut:
		c.staminaOut++
		return
	}

	c.completed++
	switch o.Kind {
	case actor.KindMove:
		c.moves++
	case actor.KindAttack:
		c.attacks++
	case actor.KindInteract:
		c.interacts++
	}
}

// RecordKill records a strike that killed its target.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordDeath records an actor dying.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordRespawn records an actor coming back.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// stamina holds the current stamina of every living actor; alive and dead
// are actor counts at window end.
func (c *Collector) Flush(currentTick int32, alive, dead int, stamina []float64) WindowStats {
	var completionRate float64
	if finished := c.completed + c.staminaOut; finished > 0 {
		completionRate = float64(c.completed) / float64(finished)
	}

	dist := ComputeStaminaStats(stamina)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Alive: alive,
		Dead:  dead,

		Issued:         c.issued,
		Completed:      c.completed,
		StaminaOut:     c.staminaOut,
		Superseded:     c.superseded,
		CompletionRate: completionRate,

		Moves:     c.moves,
		Attacks:   c.attacks,
		Interacts: c.interacts,
		Kills:     c.kills,
		Deaths:    c.deaths,
		Respawns:  c.respawns,

		StaminaMean: dist.Mean,
		StaminaStd:  dist.Std,
		StaminaP10:  dist.P10,
		StaminaP50:  dist.P50,
		StaminaP90:  dist.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.issued = 0
	c.completed = 0
	c.staminaOut = 0
	c.superseded = 0
	c.attacks = 0
	c.interacts = 0
	c.moves = 0
	c.kills = 0
	c.deaths = 0
	c.respawns = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
