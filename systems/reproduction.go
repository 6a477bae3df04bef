package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/genome"
)

// Offspring is a pending birth, buffered by the collision pass and
// spawned into the world only after it completes.
type Offspring struct {
	Genes  genome.Genome
	X, Y   float32
	Energy float32
}

// TriggerReproduction breeds two colliding crabs. The energy transfer
// is a closed-system split: each parent contributes at most half the
// energy cap and never more than it has, and the child starts with
// exactly the sum of the contributions. On genome construction failure
// the deducted energy is restored and no offspring results.
//
// Population caps are not enforced here; scarcity is the economy's job.
func TriggerReproduction(a, b *CrabState, rng *rand.Rand, l genome.Layout, cfg *config.Config) (*Offspring, error) {
	maxEnergy := cfg.Derived.MaxEnergy32
	share := maxEnergy / 2

	contribA := a.Energy.Value
	if contribA > share {
		contribA = share
	}
	contribB := b.Energy.Value
	if contribB > share {
		contribB = share
	}
	total := contribA + contribB
	if total > maxEnergy {
		total = maxEnergy
	}

	a.Energy.Value -= contribA
	b.Energy.Value -= contribB

	child, err := buildChildGenome(a.Crab.Genes, b.Crab.Genes, rng, l, cfg)
	if err != nil {
		// Transactional rollback: the parents get their contribution
		// back and the collision carries no birth.
		a.Energy.Value += contribA
		b.Energy.Value += contribB
		return nil, fmt.Errorf("reproduction: %w", err)
	}

	jitter := float32(5)
	x := (a.Pos.X+b.Pos.X)/2 + (rng.Float32()*2-1)*jitter
	y := (a.Pos.Y+b.Pos.Y)/2 + (rng.Float32()*2-1)*jitter
	x = clampFloat(x, 0, cfg.Derived.WorldW32)
	y = clampFloat(y, 0, cfg.Derived.WorldH32)

	return &Offspring{Genes: child, X: x, Y: y, Energy: total}, nil
}

// buildChildGenome runs the full inheritance pipeline: crossover,
// mutation, then both symmetry passes. Symmetry is always enforced on
// offspring regardless of how the parents collided.
func buildChildGenome(a, b genome.Genome, rng *rand.Rand, l genome.Layout, cfg *config.Config) (genome.Genome, error) {
	child, err := genome.Crossover(rng, a, b)
	if err != nil {
		return nil, err
	}
	genome.Mutate(child, rng, l, float32(cfg.Genome.MutationRate))
	genome.ApplyBodySymmetry(child, l)
	genome.ApplyMovementSymmetry(child, l)
	return child, nil
}
