package telemetry

import (
	"math"
	"testing"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	mean, std, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if std <= 0 {
		t.Errorf("std = %v, want positive", std)
	}
	if p10 < 10 || p10 > 20 {
		t.Errorf("p10 = %v, want within [10, 20]", p10)
	}
	if math.Abs(p50-55) > 5.001 {
		t.Errorf("p50 = %v, want ~55", p50)
	}
	if p90 < 90 || p90 > 100 {
		t.Errorf("p90 = %v, want within [90, 100]", p90)
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample must produce all zeros")
	}
}

func TestComputeEnergyStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats([]float64{42})
	if mean != 42 || p10 != 42 || p50 != 42 || p90 != 42 {
		t.Errorf("single sample: got mean=%v p10=%v p50=%v p90=%v, want all 42", mean, p10, p50, p90)
	}
	if std != 0 {
		t.Errorf("single sample std = %v, want 0", std)
	}
}

func TestCollectorWindow(t *testing.T) {
	dt := float32(1.0 / 60.0)
	c := NewCollector(1.0, dt) // one second windows

	if c.WindowDurationTicks() != 60 {
		t.Errorf("window ticks = %d, want 60", c.WindowDurationTicks())
	}
	if c.ShouldFlush(59) {
		t.Error("must not flush before the window elapses")
	}
	if !c.ShouldFlush(60) {
		t.Error("must flush once the window elapses")
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath()
	c.RecordCollisions(1)
	c.RecordMeals(3)
	c.RecordPelletSpawn()

	stats := c.Flush(60, 12, 4, []float64{30, 50, 70}, 48)

	if stats.Births != 2 || stats.Deaths != 1 || stats.Collisions != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.Meals != 3 || stats.PelletsSpawned != 1 {
		t.Errorf("food counts wrong: %+v", stats)
	}
	if stats.CrabCount != 12 || stats.PelletCount != 4 {
		t.Errorf("population counts wrong: %+v", stats)
	}
	if math.Abs(stats.TotalCrabEnergy-150) > 0.001 {
		t.Errorf("total crab energy = %v, want 150", stats.TotalCrabEnergy)
	}
	if math.Abs(stats.TotalSystemEnergy-198) > 0.001 {
		t.Errorf("total system energy = %v, want 198", stats.TotalSystemEnergy)
	}

	// The next window starts clean.
	next := c.Flush(120, 12, 4, nil, 0)
	if next.Births != 0 || next.Deaths != 0 || next.Collisions != 0 || next.Meals != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}
