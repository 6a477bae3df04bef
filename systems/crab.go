// Package systems implements the per-tick simulation phases: force
// accumulation, collision resolution, integration, and the energy
// economy. Phases operate on CrabState slices gathered by the sim
// package; each phase is a complete pass over the population before
// the next begins.
package systems

import (
	"github.com/pthm-cable/crabs/components"
	"github.com/pthm-cable/crabs/genome"
)

// CrabState bundles one crab's component pointers plus the trait view
// derived from its genome for this tick. The trait struct replaces
// repeated gene lookups; the genome stays the only heritable owner.
type CrabState struct {
	Pos    *components.Position
	Vel    *components.Velocity
	Rot    *components.Rotation
	Body   *components.Body
	Energy *components.Energy
	Acc    *components.Accumulator
	Crab   *components.Crab

	Traits genome.Traits
}
