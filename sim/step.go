package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/crabs/genome"
	"github.com/pthm-cable/crabs/systems"
	"github.com/pthm-cable/crabs/telemetry"
)

// Step runs a single simulation tick. Phases run in a fixed order and
// all structural changes (entity create/remove) happen either before
// the crab component pointers are gathered or after the last phase
// that uses them. Returns freshly flushed window stats, or nil when
// the window has not elapsed.
func (w *World) Step() *telemetry.WindowStats {
	w.perf.StartTick()

	// 1. Consume the pending user spawn.
	w.perf.StartPhase(telemetry.PhaseSpawn)
	if w.pendingSpawn != nil {
		g := genome.NewRandom(w.rng, w.layout)
		w.spawnCrab(g, w.pendingSpawn.x, w.pendingSpawn.y, float32(w.cfg.Energy.Initial))
		w.pendingSpawn = nil
	}

	// 2. Food: spawn a pellet if the system is short on energy, then
	// gather this tick's working sets and run the feeding pass.
	w.perf.StartPhase(telemetry.PhaseFood)
	w.updateFood()
	w.gatherCrabs()
	eaten := systems.EatPellets(w.crabs, w.pellets,
		float32(w.cfg.Food.Radius), w.cfg.Derived.MaxEnergy32)
	if eaten > 0 {
		w.collector.RecordMeals(eaten)
	}

	// 3. Forces: limb oscillators, drag, gravity well.
	w.perf.StartPhase(telemetry.PhaseForces)
	systems.ApplyForces(w.crabs, w.rng, w.layout, w.simTime, w.cfg)

	// 4. Collisions, with buffered births.
	w.perf.StartPhase(telemetry.PhaseCollisions)
	births, hits := systems.ResolveCollisions(w.crabs, w.rng, w.layout, w.cfg, w.fx)
	if hits > 0 {
		w.collector.RecordCollisions(hits)
	}

	// 5. Integration and wall response.
	w.perf.StartPhase(telemetry.PhaseIntegration)
	for i := range w.crabs {
		c := &w.crabs[i]
		if !c.Energy.Alive {
			continue
		}
		systems.Integrate(c, w.cfg)
		systems.ApplyWalls(c, w.rng, w.cfg, w.fx)
	}

	// 6. Cleanup: consumed pellets out, dead crabs out, newborns in.
	// Death records are taken before any removal so the snapshots read
	// valid component data.
	w.perf.StartPhase(telemetry.PhaseCleanup)
	w.removeConsumedPellets()
	w.sweepDead()
	for i := range births {
		b := &births[i]
		w.spawnCrab(b.Genes, b.X, b.Y, b.Energy)
		w.collector.RecordBirth()
	}

	// 7. Telemetry window roll.
	w.perf.StartPhase(telemetry.PhaseTelemetry)
	w.tick++
	w.simTime += w.cfg.Derived.DT32

	var flushed *telemetry.WindowStats
	if w.collector.ShouldFlush(w.tick) {
		stats := w.flushStats()
		w.lastStats = stats
		w.hasStats = true
		flushed = &stats
	}

	w.perf.EndTick()
	return flushed
}

// gatherCrabs fills the scratch slices with component pointers and
// derived traits for every crab. The pointers stay valid until the
// cleanup phase mutates the crab archetype.
func (w *World) gatherCrabs() {
	w.crabs = w.crabs[:0]

	query := w.crabFilter.Query()
	for query.Next() {
		pos, vel, rot, body, en, acc, crab := query.Get()
		w.crabs = append(w.crabs, systems.CrabState{
			Pos:    pos,
			Vel:    vel,
			Rot:    rot,
			Body:   body,
			Energy: en,
			Acc:    acc,
			Crab:   crab,
			Traits: genome.Derive(crab.Genes, w.layout),
		})
	}
}

// sweepDead removes every crab whose energy ran out this tick. First
// pass records death effects and collects entities; the second pass
// removes them, after which no gathered pointer may be used.
func (w *World) sweepDead() {
	var toRemove []ecs.Entity

	query := w.crabFilter.Query()
	for query.Next() {
		pos, _, rot, _, en, _, crab := query.Get()
		if en.Alive {
			continue
		}
		w.fx.PushDeath(pos.X, pos.Y, rot.Heading, crab.Genes)
		toRemove = append(toRemove, query.Entity())
	}

	for _, dead := range toRemove {
		w.collector.RecordDeath()
		w.crabMapper.Remove(dead)
		w.aliveCount--
	}
}

// flushStats samples the population and rolls the telemetry window.
func (w *World) flushStats() telemetry.WindowStats {
	w.energySample = w.energySample[:0]
	query := w.crabFilter.Query()
	for query.Next() {
		_, _, _, _, en, _, _ := query.Get()
		if en.Alive {
			w.energySample = append(w.energySample, float64(en.Value))
		}
	}

	var pelletEnergy float64
	pq := w.pelletFilter.Query()
	for pq.Next() {
		_, p := pq.Get()
		pelletEnergy += float64(p.Value)
	}

	return w.collector.Flush(w.tick, w.aliveCount, w.pelletCnt, w.energySample, pelletEnergy)
}

// Rng exposes the world RNG for tools that extend the simulation.
func (w *World) Rng() *rand.Rand { return w.rng }
