package systems

import (
	"math/rand"
	"testing"
)

func TestApplyForcesResetsAccumulator(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(61))

	c := newTestCrab(rng, l, cfg.Derived.CenterX32, cfg.Derived.CenterY32, 0, 0)
	c.Acc.Fx = 1e9
	c.Acc.Fy = 1e9
	c.Acc.Torque = 1e9
	c.Acc.Thrust = 1e9

	crabs := []CrabState{c}
	ApplyForces(crabs, rng, l, 0, cfg)

	// Stale values must not survive the reset: whatever the new tick
	// accumulated is orders of magnitude below the planted garbage.
	if absf(c.Acc.Fx) > 1e6 || absf(c.Acc.Fy) > 1e6 || absf(c.Acc.Torque) > 1e6 {
		t.Errorf("accumulator carried stale values: fx=%f fy=%f tq=%f",
			c.Acc.Fx, c.Acc.Fy, c.Acc.Torque)
	}
	if c.Acc.Inertia != c.Traits.Inertia() {
		t.Errorf("inertia = %f, want %f", c.Acc.Inertia, c.Traits.Inertia())
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(62))

	c := newTestCrab(rng, l, 100, 100, 40, 0)
	c.Acc.Reset(c.Traits.Inertia())
	// Fast enough that skitter never fires.
	applyDrag(&c, rng, cfg)

	if c.Acc.Fx >= 0 {
		t.Errorf("drag must oppose +x motion, got fx = %f", c.Acc.Fx)
	}
	if absf(c.Acc.Fy) > 1e-4 {
		t.Errorf("no cross-axis drag expected, got fy = %f", c.Acc.Fy)
	}
}

func TestDragMisalignmentTorque(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(63))

	// Moving +x while facing +y: the torque must turn clockwise
	// (negative) toward the travel bearing.
	c := newTestCrab(rng, l, 100, 100, 40, 0)
	c.Rot.Heading = 1.5
	c.Rot.Omega = 0
	c.Acc.Reset(c.Traits.Inertia())

	applyDrag(&c, rng, cfg)

	if c.Acc.Torque >= 0 {
		t.Errorf("misalignment torque should be negative, got %f", c.Acc.Torque)
	}
}

func TestSkitterOnlyWhenSlow(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(64))

	slow := newTestCrab(rng, l, 100, 100, 0, 0)
	slow.Acc.Reset(slow.Traits.Inertia())
	applyDrag(&slow, rng, cfg)
	if slow.Acc.Fx == 0 && slow.Acc.Fy == 0 {
		t.Error("stationary crab should receive skitter jitter")
	}

	fast := newTestCrab(rng, l, 100, 100, 200, 0)
	fast.Rot.Heading = 0 // aligned with travel, no misalignment torque
	fast.Acc.Reset(fast.Traits.Inertia())
	applyDrag(&fast, rng, cfg)
	if fast.Acc.Fy != 0 {
		t.Errorf("fast crab must not skitter, got fy = %f", fast.Acc.Fy)
	}
}

func TestGravityWellBounds(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(65))

	// Well outside the falloff radius: no contribution at all.
	outside := newTestCrab(rng, l, 0, 0, 0, 0)
	outside.Pos.X = cfg.Derived.CenterX32 + cfg.Derived.WellRadius32 + 50
	outside.Pos.Y = cfg.Derived.CenterY32
	outside.Acc.Reset(outside.Traits.Inertia())
	applyGravityWell(&outside, cfg)
	if outside.Acc.Fx != 0 || outside.Acc.Fy != 0 || outside.Acc.Torque != 0 {
		t.Error("gravity well must not reach past its falloff radius")
	}

	// Halfway in: the pull points toward the centre.
	inside := newTestCrab(rng, l, 0, 0, 0, 0)
	inside.Pos.X = cfg.Derived.CenterX32 + cfg.Derived.WellRadius32/2
	inside.Pos.Y = cfg.Derived.CenterY32
	inside.Acc.Reset(inside.Traits.Inertia())
	applyGravityWell(&inside, cfg)
	if inside.Acc.Fx >= 0 {
		t.Errorf("pull should point at the centre (-x), got fx = %f", inside.Acc.Fx)
	}
}

func TestLimbThrustSkipsTruncatedGenome(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(66))

	c := newTestCrab(rng, l, 100, 100, 0, 0)
	// Keep only the first limb block; later limbs must be skipped
	// without panicking.
	c.Crab.Genes = c.Crab.Genes[:l.LimbBaseAngle(1)]
	c.Acc.Reset(c.Traits.Inertia())

	applyLimbThrust(&c, l, 1.0, cfg)

	if !isFinite(c.Acc.Fx, c.Acc.Fy, c.Acc.Torque, c.Acc.Thrust) {
		t.Error("truncated genome produced non-finite forces")
	}
}

func TestLimbThrustAccumulatesEffort(t *testing.T) {
	cfg := testConfig(t)
	l := testLayout(cfg)
	rng := rand.New(rand.NewSource(67))

	c := newTestCrab(rng, l, 100, 100, 0, 0)
	c.Acc.Reset(c.Traits.Inertia())

	applyLimbThrust(&c, l, 0.7, cfg)

	if c.Acc.Thrust <= 0 {
		t.Error("oscillating limbs should register metabolic effort")
	}
}
