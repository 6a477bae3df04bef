package genome

import (
	"fmt"
	"math"
	"math/rand"
)

// Mutation perturbation ranges.
const (
	relativePerturb = 0.2  // ordinary genes scale by 1 +/- this
	colorPerturb    = 50.0 // color channels shift additively by +/- this
)

// Crossover builds a child by picking each gene independently from a or
// b with equal probability. Color channels follow the same per-gene
// rule. Parents are never modified.
func Crossover(rng *rand.Rand, a, b Genome) (Genome, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("crossover: empty parent genome")
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("crossover: parent length mismatch %d != %d", len(a), len(b))
	}

	child := make(Genome, len(a))
	for i := range child {
		if rng.Float32() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child, nil
}

// Mutate perturbs g in place and returns it. Each gene independently
// mutates with probability rate: color channels shift additively,
// everything else scales by a relative factor. All range clamps and
// floors are re-applied afterwards.
func Mutate(g Genome, rng *rand.Rand, l Layout, rate float32) Genome {
	for i := range g {
		if rng.Float32() >= rate {
			continue
		}
		if l.isColor(i) {
			g[i] += uniform(rng, -colorPerturb, colorPerturb)
		} else {
			g[i] *= 1 + uniform(rng, -relativePerturb, relativePerturb)
		}
	}
	clampRanges(g, l)
	return g
}

// clampRanges restores every bounded gene to its canonical range.
// Mutation can push values anywhere; this is the single place values
// come back in bounds.
func clampRanges(g Genome, l Layout) {
	for i := 0; i < l.LimbCount; i++ {
		floorGene(g, l.LimbBaseLength(i), MinLimbLength)
		clampGene(g, l.LimbBranchAngle(i), MinBranchAng, MaxBranchAng)
		clampGene(g, l.LimbLengthRatio(i), MinLengthRat, MaxLengthRat)
		clampGene(g, l.AttachFraction(i), 0, 1)
	}

	floorGene(g, l.Frequency(), MinFrequency)
	floorGene(g, l.Amplitude(), MinAmplitude)

	if v, ok := g.At(l.Sides()); ok {
		g.Set(l.Sides(), clamp(float32(math.Round(float64(v))), MinSides, MaxSides))
	}
	clampGene(g, l.BodySymmetry(), 0, 1)
	clampGene(g, l.MoveSymmetry(), 0, 1)

	for _, idx := range []int{l.ColorR(), l.ColorG(), l.ColorB()} {
		if v, ok := g.At(idx); ok {
			g.Set(idx, clamp(float32(math.Round(float64(v))), 0, 255))
		}
	}

	clampGene(g, l.Drag(), MinDrag, MaxDrag)
	clampGene(g, l.RotationalDrag(), MinDrag, MaxDrag)
	clampGene(g, l.Elasticity(), MinElasticity, MaxElasticity)
	clampGene(g, l.TorqueEfficiency(), MinTorqueEff, MaxTorqueEff)
	clampGene(g, l.PowerRatio(), MinPowerRatio, MaxPowerRatio)
}

// ApplyBodySymmetry blends the second half of the limbs toward a
// mirror image of the first half, weighted by the body symmetry gene
// (0 = untouched, 1 = fully mirrored). Mirroring negates the base
// angle and reflects the attachment fraction across the perimeter
// midpoint. Applying it twice with the same factor leaves the mirrored
// half unchanged the second time.
func ApplyBodySymmetry(g Genome, l Layout) Genome {
	w, ok := g.At(l.BodySymmetry())
	if !ok || w <= 0 {
		return g
	}

	half := l.LimbCount / 2
	for i := 0; i < half; i++ {
		j := half + i
		blendGene(g, l.LimbBaseAngle(j), negated(g, l.LimbBaseAngle(i)), w)
		blendGene(g, l.LimbBaseLength(j), valueOr(g, l.LimbBaseLength(i)), w)
		blendGene(g, l.LimbBranchAngle(j), valueOr(g, l.LimbBranchAngle(i)), w)
		blendGene(g, l.LimbLengthRatio(j), valueOr(g, l.LimbLengthRatio(i)), w)
		blendGene(g, l.AttachFraction(j), 1-valueOr(g, l.AttachFraction(i)), w)
	}
	return g
}

// ApplyMovementSymmetry blends only the limb phases of the second half
// toward the first half, weighted by the movement symmetry gene.
func ApplyMovementSymmetry(g Genome, l Layout) Genome {
	w, ok := g.At(l.MoveSymmetry())
	if !ok || w <= 0 {
		return g
	}

	half := l.LimbCount / 2
	for i := 0; i < half; i++ {
		j := half + i
		blendGene(g, l.LimbPhase(j), valueOr(g, l.LimbPhase(i)), w)
	}
	return g
}

// blendGene lerps gene idx toward target by weight w.
func blendGene(g Genome, idx int, target, w float32) {
	if v, ok := g.At(idx); ok {
		g.Set(idx, v+(target-v)*w)
	}
}

// valueOr reads gene idx, treating out-of-range as zero.
func valueOr(g Genome, idx int) float32 {
	v, _ := g.At(idx)
	return v
}

func negated(g Genome, idx int) float32 {
	return -valueOr(g, idx)
}

func clampGene(g Genome, idx int, lo, hi float32) {
	if v, ok := g.At(idx); ok {
		g.Set(idx, clamp(v, lo, hi))
	}
}

func floorGene(g Genome, idx int, lo float32) {
	if v, ok := g.At(idx); ok && v < lo {
		g.Set(idx, lo)
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
