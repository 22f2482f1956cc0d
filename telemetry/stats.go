package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Actor counts at window end
	Alive int `csv:"alive"`
	Dead  int `csv:"dead"`

	// Action accounting during window
	Issued         int     `csv:"issued"`
	Completed      int     `csv:"completed"`
	StaminaOut     int     `csv:"stamina_out"`
	Superseded     int     `csv:"superseded"`
	CompletionRate float64 `csv:"completion_rate"` // completed / (completed + stamina_out)

	// Completed actions by kind
	Moves     int `csv:"moves"`
	Attacks   int `csv:"attacks"`
	Interacts int `csv:"interacts"`

	// Combat
	Kills    int `csv:"kills"`
	Deaths   int `csv:"deaths"`
	Respawns int `csv:"respawns"`

	// Stamina distribution (sampled at window end, living actors only)
	StaminaMean float64 `csv:"stamina_mean"`
	StaminaStd  float64 `csv:"stamina_std"`
	StaminaP10  float64 `csv:"stamina_p10"`
	StaminaP50  float64 `csv:"stamina_p50"`
	StaminaP90  float64 `csv:"stamina_p90"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeStaminaStats calculates mean, standard deviation and empirical
// percentiles from stamina values. An empty sample yields zeros.
func ComputeStaminaStats(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	if n == 1 {
		d.Mean = sorted[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	}
	d.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Int("dead", s.Dead),
		slog.Int("issued", s.Issued),
		slog.Int("completed", s.Completed),
		slog.Int("stamina_out", s.StaminaOut),
		slog.Int("superseded", s.Superseded),
		slog.Float64("completion_rate", s.CompletionRate),
		slog.Int("moves", s.Moves),
		slog.Int("attacks", s.Attacks),
		slog.Int("interacts", s.Interacts),
		slog.Int("kills", s.Kills),
		slog.Int("deaths", s.Deaths),
		slog.Int("respawns", s.Respawns),
		slog.Float64("stamina_mean", s.StaminaMean),
		slog.Float64("stamina_std", s.StaminaStd),
		slog.Float64("stamina_p10", s.StaminaP10),
		slog.Float64("stamina_p50", s.StaminaP50),
		slog.Float64("stamina_p90", s.StaminaP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"alive", s.Alive,
		"dead", s.Dead,
		"issued", s.Issued,
		"completed", s.Completed,
		"stamina_out", s.StaminaOut,
		"superseded", s.Superseded,
		"completion_rate", s.CompletionRate,
		"attacks", s.Attacks,
		"interacts", s.Interacts,
		"kills", s.Kills,
		"deaths", s.Deaths,
		"respawns", s.Respawns,
		"stamina_mean", s.StaminaMean,
		"stamina_p50", s.StaminaP50,
	)
}
