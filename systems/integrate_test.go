package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/crabs/effects"
)

func TestIntegrateEuler(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(51))

	c := newTestCrab(rng, l, 100, 100, 2, -1)
	c.Acc.Fx = 30
	c.Acc.Fy = -60
	dt := cfg.Derived.DT32

	wantVX := 2 + 30*dt
	wantVY := -1 - 60*dt
	wantX := 100 + wantVX*dt
	wantY := 100 + wantVY*dt

	Integrate(&c, cfg)

	if math.Abs(float64(c.Vel.X-wantVX)) > 1e-5 || math.Abs(float64(c.Vel.Y-wantVY)) > 1e-5 {
		t.Errorf("velocity = (%f, %f), want (%f, %f)", c.Vel.X, c.Vel.Y, wantVX, wantVY)
	}
	// Semi-implicit: position moves with the updated velocity.
	if math.Abs(float64(c.Pos.X-wantX)) > 1e-4 || math.Abs(float64(c.Pos.Y-wantY)) > 1e-4 {
		t.Errorf("position = (%f, %f), want (%f, %f)", c.Pos.X, c.Pos.Y, wantX, wantY)
	}
}

func TestIntegrateNonFiniteGuard(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(52))

	c := newTestCrab(rng, l, 100, 100, 1, 1)
	c.Acc.Fx = float32(math.NaN())
	c.Acc.Fy = 1e6
	c.Acc.Torque = 5

	Integrate(&c, cfg)

	if c.Pos.X != 100 || c.Pos.Y != 100 {
		t.Error("position must not move on non-finite forces")
	}
	if c.Vel.X != 1 || c.Vel.Y != 1 {
		t.Error("velocity must not change on non-finite forces")
	}
	if c.Acc.Fx != 0 || c.Acc.Fy != 0 || c.Acc.Torque != 0 || c.Acc.Thrust != 0 {
		t.Error("accumulator must be zeroed so the fault does not carry over")
	}
}

func TestIntegrateOmegaClamped(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(53))

	c := newTestCrab(rng, l, 100, 100, 0, 0)
	c.Acc.Torque = 1e9

	Integrate(&c, cfg)

	maxOmega := float32(cfg.Physics.MaxAngularVelocity)
	if c.Rot.Omega > maxOmega || c.Rot.Omega < -maxOmega {
		t.Errorf("omega = %f exceeds clamp %f", c.Rot.Omega, maxOmega)
	}
}

func TestIntegrateMetabolism(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(54))

	c := newTestCrab(rng, l, 100, 100, 0, 0)
	c.Energy.Value = 50
	c.Acc.Thrust = 200

	Integrate(&c, cfg)

	dt := cfg.Derived.DT32
	want := 50 - (float32(cfg.Energy.BasalCost)+200*float32(cfg.Energy.ThrustCost))*dt
	if math.Abs(float64(c.Energy.Value-want)) > 1e-5 {
		t.Errorf("energy = %f, want %f", c.Energy.Value, want)
	}
	if c.Acc.Thrust != 0 {
		t.Error("thrust accumulator must reset each tick")
	}
}

func TestIntegrateDeathAtZero(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(55))

	c := newTestCrab(rng, l, 100, 100, 0, 0)
	c.Energy.Value = 0.0001

	Integrate(&c, cfg)

	if c.Energy.Alive {
		t.Error("crab must die when metabolism drains the last energy")
	}
	if c.Energy.Value != 0 {
		t.Errorf("dead crab energy = %f, want 0", c.Energy.Value)
	}
}

func TestWallReflection(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(56))
	fx := effects.NewQueue(16)

	c := newTestCrab(rng, l, -3, 100, -20, 4)
	setElasticity(&c, l, 1)

	ApplyWalls(&c, rng, cfg, fx)

	if c.Pos.X != 0 {
		t.Errorf("position not clamped to wall: %f", c.Pos.X)
	}
	wantVX := 20 * float32(cfg.Physics.Restitution) * 0.7
	if math.Abs(float64(c.Vel.X-wantVX)) > 1e-5 {
		t.Errorf("reflected vx = %f, want %f", c.Vel.X, wantVX)
	}
	deflect := float32(cfg.Physics.WallDeflection)
	if c.Vel.Y < 4-deflect || c.Vel.Y > 4+deflect {
		t.Errorf("tangential deflection out of range: vy = %f", c.Vel.Y)
	}
}

func TestWallNoReboundWhenLeaving(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(57))
	fx := effects.NewQueue(16)

	// Past the wall but already moving back inside: clamp only.
	c := newTestCrab(rng, l, -3, 100, 15, 0)
	ApplyWalls(&c, rng, cfg, fx)

	if c.Pos.X != 0 {
		t.Errorf("position not clamped: %f", c.Pos.X)
	}
	if c.Vel.X != 15 {
		t.Errorf("inward velocity must be untouched, got %f", c.Vel.X)
	}
}

func TestWallEffectOnHardImpact(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(58))
	fx := effects.NewQueue(16)

	speed := float32(cfg.Physics.WallEffectSpeed) * 2
	c := newTestCrab(rng, l, cfg.Derived.WorldW32+5, 100, speed, 0)
	ApplyWalls(&c, rng, cfg, fx)

	if fx.Len() != 1 {
		t.Fatalf("hard wall impact must queue one effect, got %d", fx.Len())
	}
	ev := fx.Drain(nil)
	if ev[0].Kind != effects.KindCollision {
		t.Errorf("wrong effect kind %v", ev[0].Kind)
	}
	if ev[0].X != cfg.Derived.WorldW32 {
		t.Errorf("effect not at the wall: x = %f", ev[0].X)
	}
}
