package systems

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/crabs/config"
	"github.com/pthm-cable/crabs/effects"
	"github.com/pthm-cable/crabs/genome"
)

// ResolveCollisions runs the pairwise collision pass and returns any
// offspring produced by collisions between well-fed crabs. crabs is
// sorted by x in place; the sweep stops scanning j for a given i once
// j's left bound passes i's right bound. Pairs are resolved
// sequentially, so later pairs see earlier pairs' velocity and energy
// updates within the same tick. That ordering (x-sorted) is a
// documented, reproducibility-bearing property.
//
// Offspring are returned rather than spawned so the caller can append
// them after the full pass: newborns never collide on their birth tick.
// The second return is the number of resolved overlaps.
func ResolveCollisions(crabs []CrabState, rng *rand.Rand, l genome.Layout, cfg *config.Config, fx *effects.Queue) ([]Offspring, int) {
	sort.Slice(crabs, func(a, b int) bool {
		return crabs[a].Pos.X < crabs[b].Pos.X
	})

	var births []Offspring
	hits := 0
	for i := range crabs {
		a := &crabs[i]
		rightA := a.Pos.X + a.Body.Radius

		for j := i + 1; j < len(crabs); j++ {
			b := &crabs[j]
			if b.Pos.X-b.Body.Radius > rightA {
				break // sweep: nothing further right can touch a
			}

			// Broad phase: axis-aligned box overlap on y (x is
			// already guaranteed by the sweep).
			if a.Pos.Y+a.Body.Radius < b.Pos.Y-b.Body.Radius ||
				a.Pos.Y-a.Body.Radius > b.Pos.Y+b.Body.Radius {
				continue
			}

			off, hit := resolvePair(a, b, rng, l, cfg, fx)
			if hit {
				hits++
			}
			if off != nil {
				births = append(births, *off)
			}
		}
	}
	return births, hits
}

// resolvePair runs the narrow phase and response for one pair. hit
// reports whether the pair actually overlapped.
func resolvePair(a, b *CrabState, rng *rand.Rand, l genome.Layout, cfg *config.Config, fx *effects.Queue) (off *Offspring, hit bool) {
	dx := b.Pos.X - a.Pos.X
	dy := b.Pos.Y - a.Pos.Y
	minDist := a.Body.Radius + b.Body.Radius
	distSq := dx*dx + dy*dy
	if distSq >= minDist*minDist {
		return nil, false
	}

	dist := fastSqrt(distSq)
	var nx, ny float32
	if dist > 0.001 {
		nx = dx / dist
		ny = dy / dist
	} else {
		// Perfectly coincident centres: pick an arbitrary normal.
		nx, ny = 1, 0
	}

	// Positional correction always applies, even without closing
	// velocity, so resting pairs do not stay interpenetrated.
	push := (minDist - dist) * float32(cfg.Physics.CollisionRepulsion) / 2
	a.Pos.X -= nx * push
	a.Pos.Y -= ny * push
	b.Pos.X += nx * push
	b.Pos.Y += ny * push

	relVX := b.Vel.X - a.Vel.X
	relVY := b.Vel.Y - a.Vel.Y
	approach := relVX*nx + relVY*ny

	impulseApplied := false
	var impulse float32
	if approach < 0 {
		e := float32(cfg.Physics.Restitution) * (a.Traits.Elasticity + b.Traits.Elasticity) / 2
		impulse = -(1 + e) * approach * 0.5

		a.Vel.X -= nx * impulse
		a.Vel.Y -= ny * impulse
		b.Vel.X += nx * impulse
		b.Vel.Y += ny * impulse
		impulseApplied = true

		// Glancing contacts spin more: weight the angular impulse by
		// how tangential the relative velocity is.
		glancing := float32(0)
		relSpeed := velocityMagnitude(relVX, relVY)
		if relSpeed > 0.001 {
			glancing = absf(nx*relVY/relSpeed - ny*relVX/relSpeed)
		}
		// A purely radial contact offset crossed with a normal impulse
		// is torque-free, so the spin comes entirely from the
		// tangential component, signed by which side the contact
		// sweeps past.
		side := nx*relVY - ny*relVX
		sign := float32(1)
		if side < 0 {
			sign = -1
		}
		spin := impulse * glancing * sign * float32(cfg.Physics.CollisionTorque)
		a.Rot.Omega += spin * a.Body.Radius / a.Acc.Inertia
		b.Rot.Omega -= spin * b.Body.Radius / b.Acc.Inertia

		mx := a.Pos.X + nx*a.Body.Radius
		my := a.Pos.Y + ny*a.Body.Radius
		intensity := clampFloat(absf(impulse), 0, float32(cfg.Effects.MaxIntensity))
		fx.PushCollision(mx, my, relVX/2, relVY/2, intensity)
	}

	// Reproduction gate: two well-fed crabs breed instead of paying
	// the collision toll.
	threshold := cfg.Derived.ReproThresh32
	if a.Energy.Value >= threshold && b.Energy.Value >= threshold {
		child, err := TriggerReproduction(a, b, rng, l, cfg)
		if err != nil {
			// Energy already rolled back; no offspring this contact.
			return nil, true
		}
		fx.PushBirth(child.X, child.Y)
		return child, true
	}

	if impulseApplied {
		cost := clampFloat(absf(impulse), 0, float32(cfg.Physics.MaxImpulseCost)) * float32(cfg.Physics.CollisionCost)
		a.Energy.Value -= cost
		b.Energy.Value -= cost
	}
	return nil, true
}
