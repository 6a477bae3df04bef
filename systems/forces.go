package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/genome"
)

// ApplyForces resets every crab's accumulator and runs the three force
// contributions in order: limb thrust, drag, and the central gravity
// well. simTime is the running simulation clock driving the limb
// oscillators.
func ApplyForces(crabs []CrabState, rng *rand.Rand, l genome.Layout, simTime float32, cfg *config.Config) {
	for i := range crabs {
		c := &crabs[i]
		c.Acc.Reset(c.Traits.Inertia())

		applyLimbThrust(c, l, simTime, cfg)
		applyDrag(c, rng, cfg)
		applyGravityWell(c, cfg)
	}
}

// applyLimbThrust accumulates reaction thrust from each limb's
// oscillation cycle. The first half cycle is the power stroke, the
// second the recovery stroke; limbs push the body opposite to their
// swing direction. Limbs whose genes run past the vector are skipped.
func applyLimbThrust(c *CrabState, l genome.Layout, simTime float32, cfg *config.Config) {
	tr := c.Traits
	speed := velocityMagnitude(c.Vel.X, c.Vel.Y)

	// Low-speed boost: pushing off still water is more effective than
	// water already moving with the crab.
	tensionRef := float32(cfg.Force.TensionRefSpeed)
	speedRatio := float32(1)
	if tensionRef > 0 {
		speedRatio = clampFloat(speed/tensionRef, 0, 1)
	}
	tension := 1 + float32(cfg.Force.SurfaceTension)*(1-speedRatio)

	cosH := fastCos(c.Rot.Heading)
	sinH := fastSin(c.Rot.Heading)

	for limb := 0; limb < l.LimbCount; limb++ {
		phase, ok1 := c.Crab.Genes.At(l.LimbPhase(limb))
		baseAngle, ok2 := c.Crab.Genes.At(l.LimbBaseAngle(limb))
		baseLen, ok3 := c.Crab.Genes.At(l.LimbBaseLength(limb))
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		cycle := mod2Pi(tr.Frequency*simTime + phase)

		var stroke float32
		if cycle < math.Pi {
			// Pulse envelope peaks mid power stroke.
			pulse := 0.5 + 0.5*fastSin(2*cycle-math.Pi/2)
			stroke = float32(cfg.Force.PowerFactor) * tr.PowerRatio * tension * pulse
		} else {
			stroke = float32(cfg.Force.RecoveryFactor)
		}

		mag := stroke * fastSin(cycle) * baseLen * tr.Amplitude
		if cycle > 0.4*math.Pi && cycle < 0.6*math.Pi {
			mag *= float32(cfg.Force.RippleMultiplier)
		}

		// Reaction thrust: opposite the limb's swing direction.
		dir := c.Rot.Heading + baseAngle + math.Pi
		fx := fastCos(dir) * mag
		fy := fastSin(dir) * mag
		c.Acc.Fx += fx
		c.Acc.Fy += fy

		// Off-centre limbs twist the body: lever arm from the centre
		// to the attachment point, crossed with the force.
		if p, ok := genome.AttachPoint(c.Crab.Genes, l, limb); ok {
			lx := p.X*cosH - p.Y*sinH
			ly := p.X*sinH + p.Y*cosH
			c.Acc.Torque += (lx*fy - ly*fx) * tr.TorqueEfficiency
		}

		c.Acc.Thrust += absf(mag)
	}
}

// applyDrag opposes motion quadratically, twists the heading toward
// the direction of travel, jitters near-stationary crabs, and damps
// angular velocity.
func applyDrag(c *CrabState, rng *rand.Rand, cfg *config.Config) {
	tr := c.Traits
	speed := velocityMagnitude(c.Vel.X, c.Vel.Y)

	if speed > 0.001 {
		// Resistance coefficient fades at speed: fast water slips by.
		resist := float32(cfg.Force.WaterResistance) / (1 + speed*float32(cfg.Force.ResistanceFade))
		dragMag := speed * speed * tr.Drag * resist
		c.Acc.Fx -= c.Vel.X / speed * dragMag
		c.Acc.Fy -= c.Vel.Y / speed * dragMag

		// Misalignment torque: rotate toward the velocity bearing.
		bearing := float32(math.Atan2(float64(c.Vel.Y), float64(c.Vel.X)))
		diff := normalizeAngle(bearing - c.Rot.Heading)
		c.Acc.Torque += diff * float32(cfg.Force.Misalignment) * speed * c.Acc.Inertia
	}

	// Near-stationary skitter keeps the pond from freezing solid.
	if speed < float32(cfg.Force.SkitterSpeed) {
		strength := float32(cfg.Force.SkitterStrength)
		c.Acc.Fx += (rng.Float32()*2 - 1) * strength
		c.Acc.Fy += (rng.Float32()*2 - 1) * strength
	}

	// Rotational drag grows quadratically with angular speed.
	omega := c.Rot.Omega
	c.Acc.Torque -= omega * absf(omega) * tr.RotationalDrag * float32(cfg.Force.RotationalDrag) * c.Acc.Inertia
}

// applyGravityWell pulls crabs toward the pond centre with a smoothed
// quadratic falloff, adds a tangential vortex, and nudges the heading
// toward the centre bearing. Outside the falloff radius it contributes
// nothing.
func applyGravityWell(c *CrabState, cfg *config.Config) {
	cx := cfg.Derived.CenterX32
	cy := cfg.Derived.CenterY32
	radius := cfg.Derived.WellRadius32
	if radius <= 0 {
		return
	}

	dx := cx - c.Pos.X
	dy := cy - c.Pos.Y
	d := velocityMagnitude(dx, dy)
	if d >= radius || d < 0.001 {
		return
	}

	falloff := 1 - d/radius
	f := falloff * falloff

	nx := dx / d
	ny := dy / d

	// Inward pull plus tangential swirl.
	c.Acc.Fx += nx * f * float32(cfg.Gravity.Strength)
	c.Acc.Fy += ny * f * float32(cfg.Gravity.Strength)
	c.Acc.Fx += -ny * f * float32(cfg.Gravity.Vortex)
	c.Acc.Fy += nx * f * float32(cfg.Gravity.Vortex)

	// Spin toward the centre bearing.
	bearing := float32(math.Atan2(float64(dy), float64(dx)))
	diff := normalizeAngle(bearing - c.Rot.Heading)
	c.Acc.Torque += diff * f * float32(cfg.Gravity.Align) * c.Acc.Inertia
}
