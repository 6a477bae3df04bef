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

	// Population at window end
	CrabCount   int `csv:"crabs"`
	PelletCount int `csv:"pellets"`

	// Events during window
	Births         int `csv:"births"`
	Deaths         int `csv:"deaths"`
	Collisions     int `csv:"collisions"`
	Meals          int `csv:"meals"`
	PelletsSpawned int `csv:"pellets_spawned"`

	// Energy distribution over living crabs (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Energy pools (for conservation validation)
	TotalCrabEnergy   float64 `csv:"total_crab_energy"`
	TotalPelletEnergy float64 `csv:"total_pellet_energy"`
	TotalSystemEnergy float64 `csv:"total_system_energy"`
}

// ComputeEnergyStats calculates mean, std, and percentiles from energy
// values. All zeros for an empty sample.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("crabs", s.CrabCount),
		slog.Int("pellets", s.PelletCount),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("collisions", s.Collisions),
		slog.Int("meals", s.Meals),
		slog.Int("pellets_spawned", s.PelletsSpawned),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("total_crab_energy", s.TotalCrabEnergy),
		slog.Float64("total_pellet_energy", s.TotalPelletEnergy),
		slog.Float64("total_system_energy", s.TotalSystemEnergy),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"crabs", s.CrabCount,
		"pellets", s.PelletCount,
		"births", s.Births,
		"deaths", s.Deaths,
		"collisions", s.Collisions,
		"meals", s.Meals,
		"pellets_spawned", s.PelletsSpawned,
		"energy_mean", s.EnergyMean,
		"energy_std", s.EnergyStd,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"total_crab_energy", s.TotalCrabEnergy,
		"total_pellet_energy", s.TotalPelletEnergy,
		"total_system_energy", s.TotalSystemEnergy,
	)
}
