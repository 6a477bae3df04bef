// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/crabs/genome"

// Position is an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity is an entity's velocity in world units per second.
type Velocity struct {
	X, Y float32
}

// Rotation holds orientation state.
type Rotation struct {
	Heading float32 // radians, wrapped to [0, 2pi)
	Omega   float32 // angular velocity, rad/s
}

// Body holds collision geometry. Radius comes from the radius gene at
// spawn and never changes during a crab's life.
type Body struct {
	Radius float32
}

// Energy holds the metabolic store, bounded to [0, max]. Alive flips
// false when the store empties; removal happens in the death sweep.
type Energy struct {
	Value float32
	Alive bool
}

// Accumulator collects per-tick force, torque, and thrust. Reset at the
// start of every force pass; Inertia is re-derived from the radius gene
// each tick rather than carried over.
type Accumulator struct {
	Fx, Fy  float32
	Torque  float32
	Thrust  float32 // total |thrust| this tick, charged by the integrator
	Inertia float32
}

// Reset zeroes the per-tick values and stores the freshly derived
// inertia.
func (a *Accumulator) Reset(inertia float32) {
	a.Fx = 0
	a.Fy = 0
	a.Torque = 0
	a.Thrust = 0
	a.Inertia = inertia
}

// Crab holds identity and heritable state. Genes is owned by value per
// crab; reproduction copies, never shares.
type Crab struct {
	ID       uint32
	Genes    genome.Genome
	Selected bool // UI concern, untouched by the simulation core
}

// Pellet is a food pellet's fixed energy value.
type Pellet struct {
	Value float32
}
