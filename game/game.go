// Package game wraps the simulation core in a raylib window: drawing,
// input, and the update cadence. Headless runs bypass everything here
// except the step loop.
package game

import (
	"log/slog"

	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/sim"
	"github.com/pthm-cable/crabs/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game couples the simulation world with rendering state.
type Game struct {
	world  *sim.World
	cfg    *config.Config
	output *telemetry.OutputManager

	paused         bool
	stepsPerUpdate int
	logStats       bool

	selectedID  uint32
	hasSelected bool

	sparks []spark
}

// NewGame builds a game around a fresh world.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("could not write config snapshot", "error", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	return &Game{
		world:          sim.NewWorld(cfg, opts.Seed),
		cfg:            cfg,
		output:         output,
		stepsPerUpdate: steps,
		logStats:       opts.LogStats,
	}, nil
}

// World exposes the simulation for inspection.
func (g *Game) World() *sim.World { return g.world }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.world.Tick() }

// Update runs input handling and the configured number of simulation
// steps. Used in windowed mode.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs simulation steps without any input or drawing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

func (g *Game) step() {
	if stats := g.world.Step(); stats != nil {
		if g.logStats {
			stats.LogStats()
			g.world.Perf().Stats().LogStats()
		}
		if err := g.output.WriteTelemetry(*stats); err != nil {
			slog.Error("telemetry write failed", "error", err)
		}
		if err := g.output.WritePerf(g.world.Perf().Stats(), stats.WindowEndTick); err != nil {
			slog.Error("perf write failed", "error", err)
		}
	}
}

// Unload releases held resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
