// Package genome defines the flat gene vector encoding a crab's heritable
// traits, and the operators that breed it.
package genome

import (
	"math"
	"math/rand"
)

// genesPerLimb is the size of one limb block:
// base angle, base length, branch angle, length ratio, phase.
const genesPerLimb = 5

// Gene value ranges. Random generation draws inside these; mutation
// clamps back into them.
const (
	MinRadius     = 15.0
	MaxRadius     = 30.0
	MinElongation = 0.7
	MaxElongation = 1.3
	MaxOrientBias = 0.5 // orientation bias is symmetric around zero

	MinLimbLength = 1.0
	MaxLimbLength = 20.0
	MinBranchAng  = 0.05
	MaxBranchAng  = 1.0
	MinLengthRat  = 0.1
	MaxLengthRat  = 0.95

	MinFrequency = 1.0
	MaxFrequency = 4.0
	MinAmplitude = 0.5
	MaxAmplitude = 2.5

	MinSides = 3
	MaxSides = 8

	MinDrag       = 0.5
	MaxDrag       = 1.5
	MinElasticity = 0.3
	MaxElasticity = 1.0
	MinTorqueEff  = 0.5
	MaxTorqueEff  = 1.5
	MinPowerRatio = 0.5
	MaxPowerRatio = 1.5
)

// Fixed body gene indices. Limb blocks and everything after them depend
// on the configured limb count; use Layout for those.
const (
	GeneRadius     = 0
	GeneElongation = 1
	GeneOrientBias = 2
	limbBlockStart = 3
)

// Layout maps semantic gene names to vector indices for a given limb
// count. The whole vector is:
// body(3) + limbs(5 each) + freq/amp(2) + attach(1 each) + sides(1) +
// symmetry(2) + color(3) + trait scalars(5).
type Layout struct {
	LimbCount int
}

// Length returns the gene vector length for this layout.
func (l Layout) Length() int {
	return limbBlockStart + l.LimbCount*genesPerLimb + 2 + l.LimbCount + 1 + 2 + 3 + 5
}

// LimbBaseAngle returns the index of limb i's base angle gene.
func (l Layout) LimbBaseAngle(i int) int { return limbBlockStart + i*genesPerLimb }

// LimbBaseLength returns the index of limb i's base length gene.
func (l Layout) LimbBaseLength(i int) int { return limbBlockStart + i*genesPerLimb + 1 }

// LimbBranchAngle returns the index of limb i's branch angle gene.
func (l Layout) LimbBranchAngle(i int) int { return limbBlockStart + i*genesPerLimb + 2 }

// LimbLengthRatio returns the index of limb i's length ratio gene.
func (l Layout) LimbLengthRatio(i int) int { return limbBlockStart + i*genesPerLimb + 3 }

// LimbPhase returns the index of limb i's oscillator phase gene.
func (l Layout) LimbPhase(i int) int { return limbBlockStart + i*genesPerLimb + 4 }

// Frequency returns the index of the oscillation frequency gene.
func (l Layout) Frequency() int { return limbBlockStart + l.LimbCount*genesPerLimb }

// Amplitude returns the index of the oscillation amplitude gene.
func (l Layout) Amplitude() int { return l.Frequency() + 1 }

// AttachFraction returns the index of limb i's attachment fraction gene.
func (l Layout) AttachFraction(i int) int { return l.Frequency() + 2 + i }

// Sides returns the index of the polygon side count gene.
func (l Layout) Sides() int { return l.Frequency() + 2 + l.LimbCount }

// BodySymmetry returns the index of the body symmetry factor gene.
func (l Layout) BodySymmetry() int { return l.Sides() + 1 }

// MoveSymmetry returns the index of the movement symmetry factor gene.
func (l Layout) MoveSymmetry() int { return l.Sides() + 2 }

// ColorR returns the index of the red channel gene.
func (l Layout) ColorR() int { return l.Sides() + 3 }

// ColorG returns the index of the green channel gene.
func (l Layout) ColorG() int { return l.Sides() + 4 }

// ColorB returns the index of the blue channel gene.
func (l Layout) ColorB() int { return l.Sides() + 5 }

// Drag returns the index of the drag modifier gene.
func (l Layout) Drag() int { return l.Sides() + 6 }

// RotationalDrag returns the index of the rotational drag modifier gene.
func (l Layout) RotationalDrag() int { return l.Sides() + 7 }

// Elasticity returns the index of the elasticity gene.
func (l Layout) Elasticity() int { return l.Sides() + 8 }

// TorqueEfficiency returns the index of the torque efficiency gene.
func (l Layout) TorqueEfficiency() int { return l.Sides() + 9 }

// PowerRatio returns the index of the power ratio gene.
func (l Layout) PowerRatio() int { return l.Sides() + 10 }

// isColor reports whether index i is one of the color channel genes.
func (l Layout) isColor(i int) bool {
	return i >= l.ColorR() && i <= l.ColorB()
}

// Genome is a flat vector of gene values. It is the sole owner of a
// crab's heritable traits; anything derived from it is a cache.
type Genome []float32

// At returns the gene at index i, or (0, false) if i is out of range.
// Callers that iterate limb blocks use the ok flag to skip limbs that
// run past the vector instead of panicking.
func (g Genome) At(i int) (float32, bool) {
	if i < 0 || i >= len(g) {
		return 0, false
	}
	return g[i], true
}

// Set writes the gene at index i and reports whether i was in range.
func (g Genome) Set(i int, v float32) bool {
	if i < 0 || i >= len(g) {
		return false
	}
	g[i] = v
	return true
}

// Clone returns a copy sharing no storage with g.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// NewRandom creates a fresh genome with every field drawn uniformly
// from its documented range. The result shares no storage with any
// other genome.
func NewRandom(rng *rand.Rand, l Layout) Genome {
	g := make(Genome, l.Length())

	g[GeneRadius] = uniform(rng, MinRadius, MaxRadius)
	g[GeneElongation] = uniform(rng, MinElongation, MaxElongation)
	g[GeneOrientBias] = uniform(rng, -MaxOrientBias, MaxOrientBias)

	for i := 0; i < l.LimbCount; i++ {
		g[l.LimbBaseAngle(i)] = rng.Float32() * 2 * math.Pi
		g[l.LimbBaseLength(i)] = uniform(rng, 5, MaxLimbLength)
		g[l.LimbBranchAngle(i)] = uniform(rng, MinBranchAng, MaxBranchAng)
		g[l.LimbLengthRatio(i)] = uniform(rng, MinLengthRat, MaxLengthRat)
		g[l.LimbPhase(i)] = rng.Float32() * 2 * math.Pi
		g[l.AttachFraction(i)] = rng.Float32()
	}

	g[l.Frequency()] = uniform(rng, MinFrequency, MaxFrequency)
	g[l.Amplitude()] = uniform(rng, MinAmplitude, MaxAmplitude)

	g[l.Sides()] = float32(MinSides + rng.Intn(MaxSides-MinSides+1))
	g[l.BodySymmetry()] = rng.Float32()
	g[l.MoveSymmetry()] = rng.Float32()

	g[l.ColorR()] = float32(rng.Intn(256))
	g[l.ColorG()] = float32(rng.Intn(256))
	g[l.ColorB()] = float32(rng.Intn(256))

	g[l.Drag()] = uniform(rng, MinDrag, MaxDrag)
	g[l.RotationalDrag()] = uniform(rng, MinDrag, MaxDrag)
	g[l.Elasticity()] = uniform(rng, MinElasticity, MaxElasticity)
	g[l.TorqueEfficiency()] = uniform(rng, MinTorqueEff, MaxTorqueEff)
	g[l.PowerRatio()] = uniform(rng, MinPowerRatio, MaxPowerRatio)

	return g
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
