package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	births         int
	deaths         int
	collisions     int
	meals          int
	pelletsSpawned int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records one offspring spawned from a collision.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records one crab removed by the death sweep.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordCollisions records resolved crab pair overlaps.
func (c *Collector) RecordCollisions(n int) {
	c.collisions += n
}

// RecordMeals records pellets eaten this tick.
func (c *Collector) RecordMeals(n int) {
	c.meals += n
}

// RecordPelletSpawn records one pellet added by the food controller.
func (c *Collector) RecordPelletSpawn() {
	c.pelletsSpawned++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// energies holds the living crabs' current energy values; pellet energy
// is totalled separately so conservation can be checked from the CSV.
func (c *Collector) Flush(
	currentTick int32,
	crabCount, pelletCount int,
	energies []float64,
	totalPelletEnergy float64,
) WindowStats {
	mean, std, p10, p50, p90 := ComputeEnergyStats(energies)

	var totalCrab float64
	for _, e := range energies {
		totalCrab += e
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		CrabCount:   crabCount,
		PelletCount: pelletCount,

		Births:         c.births,
		Deaths:         c.deaths,
		Collisions:     c.collisions,
		Meals:          c.meals,
		PelletsSpawned: c.pelletsSpawned,

		EnergyMean: mean,
		EnergyStd:  std,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		TotalCrabEnergy:   totalCrab,
		TotalPelletEnergy: totalPelletEnergy,
		TotalSystemEnergy: totalCrab + totalPelletEnergy,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.collisions = 0
	c.meals = 0
	c.pelletsSpawned = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
