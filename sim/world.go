// Package sim holds the headless simulation core: the ECS world, the
// tick pipeline, and the spawn bookkeeping. It knows nothing about
// rendering; the render layer observes it through EachCrab, EachPellet
// and the effects queue.
package sim

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/crabs/components"
	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/effects"
	"github.com/pthm-cable/crabs/genome"
	"github.com/pthm-cable/crabs/systems"
	"github.com/pthm-cable/crabs/telemetry"
)

// World holds the complete simulation state.
type World struct {
	cfg    *config.Config
	rng    *rand.Rand
	world  *ecs.World
	layout genome.Layout

	crabMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Energy,
		components.Accumulator,
		components.Crab,
	]
	crabFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Energy,
		components.Accumulator,
		components.Crab,
	]

	pelletMapper *ecs.Map2[components.Position, components.Pellet]
	pelletFilter *ecs.Filter2[components.Position, components.Pellet]

	fx        *effects.Queue
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	tick       int32
	simTime    float32
	nextID     uint32
	aliveCount int
	pelletCnt  int

	// At most one user-requested spawn per tick, consumed at the top
	// of the next Step.
	pendingSpawn *spawnRequest

	// Scratch buffers reused across ticks.
	crabs          []systems.CrabState
	pellets        []systems.PelletRef
	pelletEntities []ecs.Entity
	energySample   []float64

	lastStats telemetry.WindowStats
	hasStats  bool
}

type spawnRequest struct {
	x, y float32
}

// NewWorld builds a world from cfg, seeds the RNG, and spawns the
// initial population.
func NewWorld(cfg *config.Config, seed int64) *World {
	world := ecs.NewWorld()

	w := &World{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		world:  world,
		layout: genome.Layout{LimbCount: cfg.Genome.LimbCount},
		crabMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Energy,
			components.Accumulator,
			components.Crab,
		](world),
		crabFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Energy,
			components.Accumulator,
			components.Crab,
		](world),
		pelletMapper: ecs.NewMap2[components.Position, components.Pellet](world),
		pelletFilter: ecs.NewFilter2[components.Position, components.Pellet](world),
		fx:           effects.NewQueue(cfg.Effects.QueueSize),
		collector:    telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		perf:         telemetry.NewPerfCollector(60),
	}

	w.spawnInitialPopulation()
	return w
}

func (w *World) spawnInitialPopulation() {
	for i := 0; i < w.cfg.Population.Initial; i++ {
		x := w.rng.Float32() * w.cfg.Derived.WorldW32
		y := w.rng.Float32() * w.cfg.Derived.WorldH32
		g := genome.NewRandom(w.rng, w.layout)
		w.spawnCrab(g, x, y, float32(w.cfg.Energy.Initial))
	}
}

// spawnCrab creates a crab entity. Must not run while component
// pointers from a query are live.
func (w *World) spawnCrab(g genome.Genome, x, y, energy float32) ecs.Entity {
	id := w.nextID
	w.nextID++

	tr := genome.Derive(g, w.layout)

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Rotation{Heading: w.rng.Float32() * 2 * math.Pi}
	body := components.Body{Radius: tr.Radius}
	en := components.Energy{Value: energy, Alive: true}
	acc := components.Accumulator{}
	acc.Reset(tr.Inertia())
	crab := components.Crab{ID: id, Genes: g}

	entity := w.crabMapper.NewEntity(&pos, &vel, &rot, &body, &en, &acc, &crab)
	w.aliveCount++
	return entity
}

// RequestCrabCreation queues a random crab spawn at the given world
// position. Only one request is held; a second request in the same
// tick replaces the first.
func (w *World) RequestCrabCreation(x, y float32) {
	x = clamp32(x, 0, w.cfg.Derived.WorldW32)
	y = clamp32(y, 0, w.cfg.Derived.WorldH32)
	w.pendingSpawn = &spawnRequest{x: x, y: y}
}

// Tick returns the current tick number.
func (w *World) Tick() int32 { return w.tick }

// Time returns the running simulation clock in seconds.
func (w *World) Time() float32 { return w.simTime }

// AliveCount returns the number of living crabs.
func (w *World) AliveCount() int { return w.aliveCount }

// PelletCount returns the number of uneaten pellets.
func (w *World) PelletCount() int { return w.pelletCnt }

// Layout returns the gene layout shared by every crab.
func (w *World) Layout() genome.Layout { return w.layout }

// Config returns the configuration the world was built with.
func (w *World) Config() *config.Config { return w.cfg }

// Effects returns the visual effect queue for the render layer to drain.
func (w *World) Effects() *effects.Queue { return w.fx }

// Perf returns the performance collector.
func (w *World) Perf() *telemetry.PerfCollector { return w.perf }

// LastStats returns the most recently flushed window stats.
func (w *World) LastStats() (telemetry.WindowStats, bool) {
	return w.lastStats, w.hasStats
}

// CrabView is the read access handed to EachCrab callbacks. Pointers
// are only valid for the duration of the callback.
type CrabView struct {
	Entity ecs.Entity
	Pos    *components.Position
	Vel    *components.Velocity
	Rot    *components.Rotation
	Body   *components.Body
	Energy *components.Energy
	Crab   *components.Crab
}

// EachCrab calls fn for every crab, dead or alive.
func (w *World) EachCrab(fn func(CrabView)) {
	query := w.crabFilter.Query()
	for query.Next() {
		pos, vel, rot, body, en, _, crab := query.Get()
		fn(CrabView{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Rot:    rot,
			Body:   body,
			Energy: en,
			Crab:   crab,
		})
	}
}

// EachPellet calls fn for every pellet.
func (w *World) EachPellet(fn func(pos *components.Position, p *components.Pellet)) {
	query := w.pelletFilter.Query()
	for query.Next() {
		pos, p := query.Get()
		fn(pos, p)
	}
}

// SetSelected marks exactly one crab as selected, or clears the
// selection when no crab matches id.
func (w *World) SetSelected(id uint32, selected bool) {
	query := w.crabFilter.Query()
	for query.Next() {
		_, _, _, _, _, _, crab := query.Get()
		if crab.ID == id {
			crab.Selected = selected
		} else if selected {
			crab.Selected = false
		}
	}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
