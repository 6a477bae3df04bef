package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/crabs/components"
	"github.com/pthm-cable/crabs/systems"
)

// updateFood closes the energy loop. While the system total (living
// crabs plus uneaten pellets) sits below the configured target, each
// tick has a chance to drop one pellet at a random spot. The spawn
// happens before the crab pointers are gathered, then the pellet
// working set is built for the feeding pass.
func (w *World) updateFood() {
	total := w.systemEnergy()

	if total < float32(w.cfg.Energy.TargetSystem) && w.rng.Float64() < w.cfg.Food.SpawnChance {
		pos := components.Position{
			X: w.rng.Float32() * w.cfg.Derived.WorldW32,
			Y: w.rng.Float32() * w.cfg.Derived.WorldH32,
		}
		pellet := components.Pellet{Value: float32(w.cfg.Food.Value)}
		w.pelletMapper.NewEntity(&pos, &pellet)
		w.pelletCnt++
		w.collector.RecordPelletSpawn()
	}

	w.gatherPellets()
}

// systemEnergy sums living crab energy and uneaten pellet energy via
// plain queries, holding no pointers past the call.
func (w *World) systemEnergy() float32 {
	var total float32

	query := w.crabFilter.Query()
	for query.Next() {
		_, _, _, _, en, _, _ := query.Get()
		if en.Alive {
			total += en.Value
		}
	}

	pq := w.pelletFilter.Query()
	for pq.Next() {
		_, p := pq.Get()
		total += p.Value
	}

	return total
}

// gatherPellets snapshots every pellet into the scratch working set.
// Values are copied, so the feeding pass mutates only the snapshot;
// consumed entities are resolved through the parallel entity slice.
func (w *World) gatherPellets() {
	w.pellets = w.pellets[:0]
	w.pelletEntities = w.pelletEntities[:0]

	query := w.pelletFilter.Query()
	for query.Next() {
		pos, p := query.Get()
		w.pellets = append(w.pellets, systems.PelletRef{
			X:     pos.X,
			Y:     pos.Y,
			Value: p.Value,
		})
		w.pelletEntities = append(w.pelletEntities, query.Entity())
	}
}

// removeConsumedPellets removes every pellet the feeding pass marked.
func (w *World) removeConsumedPellets() {
	var toRemove []ecs.Entity
	for i := range w.pellets {
		if w.pellets[i].Consumed {
			toRemove = append(toRemove, w.pelletEntities[i])
		}
	}
	for _, e := range toRemove {
		w.pelletMapper.Remove(e)
		w.pelletCnt--
	}
}
