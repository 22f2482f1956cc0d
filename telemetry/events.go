// Package telemetry provides action accounting, window stats, bookmarks
// and CSV experiment output.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/skirmish/actor"
)

// Result names how an action left its executor.
const (
	ResultCompleted  = "completed"
	ResultStaminaOut = "stamina_out"
	ResultSuperseded = "superseded"
)

// ActionRecord is one row of actions.csv: a finished or superseded action.
type ActionRecord struct {
	Tick      int32   `csv:"tick"`
	ActionID  string  `csv:"action_id"`
	Actor     string  `csv:"actor"`
	Kind      string  `csv:"kind"`
	Result    string  `csv:"result"`
	Stamina   float64 `csv:"stamina"`
	Duration  int32   `csv:"duration_ticks"`
	IssuedAt  int32   `csv:"issued_tick"`
	SimTimeAt float64 `csv:"sim_time"`
}

// NewActionRecord builds a record from an executor outcome. issuedTick is
// the tick the action was handed to the executor.
func NewActionRecord(tick, issuedTick int32, actorName string, o actor.Outcome) ActionRecord {
	return ActionRecord{
		Tick:      tick,
		ActionID:  o.ActionID,
		Actor:     actorName,
		Kind:      o.Kind.String(),
		Result:    ResultOf(o),
		Stamina:   o.Stamina,
		Duration:  tick - issuedTick,
		IssuedAt:  issuedTick,
		SimTimeAt: o.At,
	}
}

// ResultOf maps an outcome to its result name.
func ResultOf(o actor.Outcome) string {
	switch {
	case o.Superseded:
		return ResultSuperseded
	case o.Status == actor.StatusStaminaOut:
		return ResultStaminaOut
	default:
		return ResultCompleted
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r ActionRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("action_id", r.ActionID),
		slog.String("actor", r.Actor),
		slog.String("kind", r.Kind),
		slog.String("result", r.Result),
		slog.Float64("stamina", r.Stamina),
		slog.Int("duration_ticks", int(r.Duration)),
	)
}
