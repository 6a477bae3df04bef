package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/crabs/effects"
)

func TestHeadOnElasticSwap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Physics.Restitution = 1.0
	cfg.Physics.CollisionCost = 0 // isolate the velocity response
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(31))

	a := newTestCrab(rng, l, 100, 100, 10, 0)
	b := newTestCrab(rng, l, 130, 100, -10, 0)
	a.Body.Radius = 20
	b.Body.Radius = 20
	setElasticity(&a, l, 1)
	setElasticity(&b, l, 1)

	// Keep both below the reproduction threshold.
	a.Energy.Value = 30
	b.Energy.Value = 30

	fx := effects.NewQueue(16)
	ResolveCollisions([]CrabState{a, b}, rng, l, cfg, fx)

	// Newtonian elastic head-on case: velocities swap.
	if math.Abs(float64(a.Vel.X+10)) > 1e-3 || math.Abs(float64(b.Vel.X-10)) > 1e-3 {
		t.Errorf("velocities not swapped: a.vx=%f b.vx=%f, want -10, 10", a.Vel.X, b.Vel.X)
	}
	if fx.Len() == 0 {
		t.Error("closing collision should emit an effect")
	}
}

func TestCollisionRestitutionScenario(t *testing.T) {
	// Two stationary radius-20 crabs 30 apart, approaching at speed 10
	// each, elasticity 1.0, restitution 0.5.
	cfg := testConfig(t)
	cfg.Physics.Restitution = 0.5
	cfg.Physics.CollisionCost = 0
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(32))

	a := newTestCrab(rng, l, 100, 100, 10, 0)
	b := newTestCrab(rng, l, 130, 100, -10, 0)
	a.Body.Radius = 20
	b.Body.Radius = 20
	setElasticity(&a, l, 1)
	setElasticity(&b, l, 1)
	a.Energy.Value = 30
	b.Energy.Value = 30

	axBefore := a.Pos.X
	bxBefore := b.Pos.X

	fx := effects.NewQueue(16)
	ResolveCollisions([]CrabState{a, b}, rng, l, cfg, fx)

	// approach = -20, e = 0.5, impulse = -(1+e)*approach/2 = 15.
	if math.Abs(float64(a.Vel.X+5)) > 1e-3 || math.Abs(float64(b.Vel.X-5)) > 1e-3 {
		t.Errorf("post-collision velocities a.vx=%f b.vx=%f, want -5, 5", a.Vel.X, b.Vel.X)
	}

	// Separating relative velocity equals -e * approach.
	rel := b.Vel.X - a.Vel.X
	if math.Abs(float64(rel-10)) > 1e-3 {
		t.Errorf("separation speed = %f, want 10", rel)
	}

	// Kinetic energy dropped from 100+100 to 25+25 (per unit mass).
	keAfter := (a.Vel.X*a.Vel.X + b.Vel.X*b.Vel.X) / 2
	if math.Abs(float64(keAfter-25)) > 1e-2 {
		t.Errorf("post KE = %f, want 25", keAfter)
	}

	// Overlap correction: (minDist - dist) * repulsion / 2 each way.
	wantPush := float32(40-30) * float32(cfg.Physics.CollisionRepulsion) / 2
	if math.Abs(float64((axBefore-a.Pos.X)-wantPush)) > 1e-3 {
		t.Errorf("a pushed by %f, want %f", axBefore-a.Pos.X, wantPush)
	}
	if math.Abs(float64((b.Pos.X-bxBefore)-wantPush)) > 1e-3 {
		t.Errorf("b pushed by %f, want %f", b.Pos.X-bxBefore, wantPush)
	}
}

func TestCollisionEnergyCost(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(33))

	a := newTestCrab(rng, l, 100, 100, 10, 0)
	b := newTestCrab(rng, l, 130, 100, -10, 0)
	a.Body.Radius = 20
	b.Body.Radius = 20
	a.Energy.Value = 30
	b.Energy.Value = 40

	fx := effects.NewQueue(16)
	ResolveCollisions([]CrabState{a, b}, rng, l, cfg, fx)

	if a.Energy.Value >= 30 || b.Energy.Value >= 40 {
		t.Errorf("collision should cost both crabs energy: %f, %f", a.Energy.Value, b.Energy.Value)
	}
	// Equal cost for both.
	if math.Abs(float64((30-a.Energy.Value)-(40-b.Energy.Value))) > 1e-4 {
		t.Errorf("costs differ: %f vs %f", 30-a.Energy.Value, 40-b.Energy.Value)
	}
}

func TestGrazingOverlapStillSeparates(t *testing.T) {
	// No closing velocity: no impulse, no cost, but the overlap
	// correction still pushes the pair apart.
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(34))

	a := newTestCrab(rng, l, 100, 100, 0, 0)
	b := newTestCrab(rng, l, 120, 100, 0, 0)
	a.Body.Radius = 15
	b.Body.Radius = 15
	a.Energy.Value = 30
	b.Energy.Value = 30

	fx := effects.NewQueue(16)
	ResolveCollisions([]CrabState{a, b}, rng, l, cfg, fx)

	if a.Vel.X != 0 || b.Vel.X != 0 {
		t.Error("no impulse expected without closing velocity")
	}
	if a.Energy.Value != 30 || b.Energy.Value != 30 {
		t.Error("no energy cost expected without an impulse")
	}
	if !(a.Pos.X < 100 && b.Pos.X > 120) {
		t.Errorf("overlap not corrected: a.x=%f b.x=%f", a.Pos.X, b.Pos.X)
	}
}

func TestReproductionGate(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(35))

	a := newTestCrab(rng, l, 100, 100, 5, 0)
	b := newTestCrab(rng, l, 125, 100, -5, 0)
	a.Body.Radius = 15
	b.Body.Radius = 15
	a.Energy.Value = 90
	b.Energy.Value = 85

	fx := effects.NewQueue(16)
	births, _ := ResolveCollisions([]CrabState{a, b}, rng, l, cfg, fx)

	if len(births) != 1 {
		t.Fatalf("expected 1 offspring, got %d", len(births))
	}
	off := births[0]
	if off.Energy != 50+50 {
		t.Errorf("offspring energy = %f, want 100", off.Energy)
	}
	if a.Energy.Value != 40 || b.Energy.Value != 35 {
		t.Errorf("parent energies %f, %f, want 40, 35", a.Energy.Value, b.Energy.Value)
	}
	if len(off.Genes) != l.Length() {
		t.Errorf("offspring genome length %d, want %d", len(off.Genes), l.Length())
	}
}

func TestSweepSkipsDistantPairs(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(36))

	crabs := []CrabState{
		newTestCrab(rng, l, 100, 100, 0, 0),
		newTestCrab(rng, l, 500, 100, 0, 0),
		newTestCrab(rng, l, 900, 100, 0, 0),
	}
	var before []float32
	for i := range crabs {
		before = append(before, crabs[i].Pos.X, crabs[i].Pos.Y, crabs[i].Vel.X, crabs[i].Vel.Y)
	}

	fx := effects.NewQueue(16)
	ResolveCollisions(crabs, rng, l, cfg, fx)

	var after []float32
	for i := range crabs {
		after = append(after, crabs[i].Pos.X, crabs[i].Pos.Y, crabs[i].Vel.X, crabs[i].Vel.Y)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("distant crabs must be untouched by the collision pass")
		}
	}
	if fx.Len() != 0 {
		t.Error("no effects expected without contacts")
	}
}
