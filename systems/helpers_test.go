package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/crabs/components"
	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/genome"
)

// testConfig loads the embedded defaults.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

func testLayout(cfg *config.Config) genome.Layout {
	return genome.Layout{LimbCount: cfg.Genome.LimbCount}
}

// newTestCrab builds a standalone CrabState around a fresh random
// genome, at the given position and velocity.
func newTestCrab(rng *rand.Rand, l genome.Layout, x, y, vx, vy float32) CrabState {
	g := genome.NewRandom(rng, l)
	tr := genome.Derive(g, l)

	acc := &components.Accumulator{}
	acc.Reset(tr.Inertia())

	return CrabState{
		Pos:    &components.Position{X: x, Y: y},
		Vel:    &components.Velocity{X: vx, Y: vy},
		Rot:    &components.Rotation{},
		Body:   &components.Body{Radius: tr.Radius},
		Energy: &components.Energy{Value: 60, Alive: true},
		Acc:    acc,
		Crab:   &components.Crab{ID: 1, Genes: g},
		Traits: tr,
	}
}

// setElasticity forces the elasticity gene and re-derives traits.
func setElasticity(c *CrabState, l genome.Layout, v float32) {
	c.Crab.Genes.Set(l.Elasticity(), v)
	c.Traits = genome.Derive(c.Crab.Genes, l)
}
