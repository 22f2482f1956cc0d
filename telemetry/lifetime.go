package telemetry

import "sort"

// LifetimeStats tracks per-actor totals over a run. It is one row of actors.csv.
type LifetimeStats struct {
	Actor      string `csv:"actor"`
	SpawnTick  int32  `csv:"spawn_tick"`
	Issued     int    `csv:"issued"`
	Completed  int    `csv:"completed"`
	StaminaOut int    `csv:"stamina_out"`
	Superseded int    `csv:"superseded"`
	Kills      int    `csv:"kills"`
	Deaths     int    `csv:"deaths"`
	Respawns   int    `csv:"respawns"`

	LowestStamina float64 `csv:"lowest_stamina"`
}

// LifetimeTracker manages per-actor lifetime statistics.
type LifetimeTracker struct {
	stats map[string]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[string]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new actor.
func (lt *LifetimeTracker) Register(name string, spawnTick int32, stamina float64) {
	lt.stats[name] = &LifetimeStats{
		Actor:         name,
		SpawnTick:     spawnTick,
		LowestStamina: stamina,
	}
}

// Get returns the lifetime stats for an actor, or nil if not found.
func (lt *LifetimeTracker) Get(name string) *LifetimeStats {
	return lt.stats[name]
}

// RecordIssued increments the issued action count.
func (lt *LifetimeTracker) RecordIssued(name string) {
	if s := lt.stats[name]; s != nil {
		s.Issued++
	}
}

// RecordResult counts a finished or superseded action by result name.
func (lt *LifetimeTracker) RecordResult(name, result string) {
	s := lt.stats[name]
	if s == nil {
		return
	}
	switch result {
	case ResultCompleted:
		s.Completed++
	case ResultStaminaOut:
		s.StaminaOut++
	case ResultSuperseded:
		s.Superseded++
	}
}

// RecordKill increments kill count.
func (lt *LifetimeTracker) RecordKill(name string) {
	if s := lt.stats[name]; s != nil {
		s.Kills++
	}
}

// RecordDeath increments death count.
func (lt *LifetimeTracker) RecordDeath(name string) {
	if s := lt.stats[name]; s != nil {
		s.Deaths++
	}
}

// RecordRespawn increments respawn count.
func (lt *LifetimeTracker) RecordRespawn(name string) {
	if s := lt.stats[name]; s != nil {
		s.Respawns++
	}
}

// UpdateStamina tracks the lowest stamina seen.
func (lt *LifetimeTracker) UpdateStamina(name string, stamina float64) {
	if s := lt.stats[name]; s != nil {
		if stamina < s.LowestStamina {
			s.LowestStamina = stamina
		}
	}
}

// All returns every actor's stats sorted by name.
func (lt *LifetimeTracker) All() []LifetimeStats {
	out := make([]LifetimeStats, 0, len(lt.stats))
	for _, s := range lt.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Actor < out[j].Actor })
	return out
}

// Count returns the number of tracked actors.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
