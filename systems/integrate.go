package systems

import (
	"math/rand"

	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/effects"
)

// Integrate advances one crab's kinematic state by one fixed timestep
// using semi-implicit Euler, then charges the tick's metabolic cost.
// Any non-finite input aborts the update for this crab this tick (the
// accumulator is zeroed) rather than letting a NaN spread through the
// population.
func Integrate(c *CrabState, cfg *config.Config) {
	dt := cfg.Derived.DT32

	if !isFinite(c.Pos.X, c.Pos.Y, c.Vel.X, c.Vel.Y, c.Rot.Heading, c.Rot.Omega,
		c.Acc.Fx, c.Acc.Fy, c.Acc.Torque, c.Acc.Inertia) || c.Acc.Inertia <= 0 {
		c.Acc.Fx = 0
		c.Acc.Fy = 0
		c.Acc.Torque = 0
		c.Acc.Thrust = 0
		return
	}

	// Slow crabs turn more readily; speed damps angular response.
	speed := velocityMagnitude(c.Vel.X, c.Vel.Y)
	turnFactor := 1 / (1 + speed*float32(cfg.Force.TurnAttenuation))
	omegaAccel := c.Acc.Torque * float32(cfg.Physics.TorqueMultiplier) * c.Traits.TorqueEfficiency / c.Acc.Inertia * turnFactor

	c.Vel.X += c.Acc.Fx * dt
	c.Vel.Y += c.Acc.Fy * dt

	maxOmega := float32(cfg.Physics.MaxAngularVelocity)
	c.Rot.Omega = clampFloat(c.Rot.Omega+omegaAccel*dt, -maxOmega, maxOmega)

	c.Pos.X += c.Vel.X * dt
	c.Pos.Y += c.Vel.Y * dt
	c.Rot.Heading = normalizeHeading(c.Rot.Heading + c.Rot.Omega*dt)

	// Metabolism: existing costs, swimming costs more.
	cost := (float32(cfg.Energy.BasalCost) + c.Acc.Thrust*float32(cfg.Energy.ThrustCost)) * dt
	c.Energy.Value -= cost
	if c.Energy.Value > cfg.Derived.MaxEnergy32 {
		c.Energy.Value = cfg.Derived.MaxEnergy32
	}
	if c.Energy.Value <= 0 {
		c.Energy.Value = 0
		c.Energy.Alive = false
	}
	c.Acc.Thrust = 0
}

// ApplyWalls keeps a crab inside the world box. A wall hit clamps
// position, reflects the perpendicular velocity scaled by restitution
// and the elasticity gene, deflects the tangential component a little,
// and kicks the spin. Hard impacts request a collision effect.
func ApplyWalls(c *CrabState, rng *rand.Rand, cfg *config.Config, fx *effects.Queue) {
	w := cfg.Derived.WorldW32
	h := cfg.Derived.WorldH32
	bounce := float32(cfg.Physics.Restitution) * 0.7 * c.Traits.Elasticity
	deflect := float32(cfg.Physics.WallDeflection)
	kick := float32(cfg.Physics.WallAngularKick)
	effectSpeed := float32(cfg.Physics.WallEffectSpeed)

	hit := func(impact float32, x, y float32) {
		c.Rot.Omega += (rng.Float32()*2 - 1) * kick
		if impact > effectSpeed {
			fx.PushCollision(x, y, 0, 0, clampFloat(impact, 0, float32(cfg.Effects.MaxIntensity)))
		}
	}

	if c.Pos.X < 0 {
		c.Pos.X = 0
		if c.Vel.X < 0 {
			impact := -c.Vel.X
			c.Vel.X = -c.Vel.X * bounce
			c.Vel.Y += (rng.Float32()*2 - 1) * deflect
			hit(impact, 0, c.Pos.Y)
		}
	} else if c.Pos.X > w {
		c.Pos.X = w
		if c.Vel.X > 0 {
			impact := c.Vel.X
			c.Vel.X = -c.Vel.X * bounce
			c.Vel.Y += (rng.Float32()*2 - 1) * deflect
			hit(impact, w, c.Pos.Y)
		}
	}

	if c.Pos.Y < 0 {
		c.Pos.Y = 0
		if c.Vel.Y < 0 {
			impact := -c.Vel.Y
			c.Vel.Y = -c.Vel.Y * bounce
			c.Vel.X += (rng.Float32()*2 - 1) * deflect
			hit(impact, c.Pos.X, 0)
		}
	} else if c.Pos.Y > h {
		c.Pos.Y = h
		if c.Vel.Y > 0 {
			impact := c.Vel.Y
			c.Vel.Y = -c.Vel.Y * bounce
			c.Vel.X += (rng.Float32()*2 - 1) * deflect
			hit(impact, c.Pos.X, h)
		}
	}
}
