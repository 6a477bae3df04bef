package genome

// Traits holds the per-tick derived view of a genome: everything the
// physics phases read more than once. It is rebuilt from the gene
// vector each tick and never written back; the vector stays the only
// owner of heritable state.
type Traits struct {
	Radius     float32
	Elongation float32
	OrientBias float32

	Frequency float32
	Amplitude float32

	Sides int

	ColorR uint8
	ColorG uint8
	ColorB uint8

	Drag             float32
	RotationalDrag   float32
	Elasticity       float32
	TorqueEfficiency float32
	PowerRatio       float32
}

// Derive builds the trait view for g. Missing indices fall back to the
// low end of each range so a truncated genome still yields a usable,
// finite crab.
func Derive(g Genome, l Layout) Traits {
	t := Traits{
		Radius:           geneOr(g, GeneRadius, MinRadius),
		Elongation:       geneOr(g, GeneElongation, 1),
		OrientBias:       geneOr(g, GeneOrientBias, 0),
		Frequency:        geneOr(g, l.Frequency(), MinFrequency),
		Amplitude:        geneOr(g, l.Amplitude(), MinAmplitude),
		Drag:             geneOr(g, l.Drag(), MinDrag),
		RotationalDrag:   geneOr(g, l.RotationalDrag(), MinDrag),
		Elasticity:       geneOr(g, l.Elasticity(), MinElasticity),
		TorqueEfficiency: geneOr(g, l.TorqueEfficiency(), MinTorqueEff),
		PowerRatio:       geneOr(g, l.PowerRatio(), MinPowerRatio),
	}

	sides := geneOr(g, l.Sides(), MinSides)
	t.Sides = int(clamp(sides, MinSides, MaxSides))

	t.ColorR = uint8(clamp(geneOr(g, l.ColorR(), 128), 0, 255))
	t.ColorG = uint8(clamp(geneOr(g, l.ColorG(), 128), 0, 255))
	t.ColorB = uint8(clamp(geneOr(g, l.ColorB(), 128), 0, 255))

	return t
}

// Inertia returns the moment-of-inertia proxy for the trait set,
// derived from radius squared. Recomputed every tick, never carried.
func (t Traits) Inertia() float32 {
	i := t.Radius * t.Radius
	if i < 1 {
		i = 1
	}
	return i
}

func geneOr(g Genome, idx int, fallback float32) float32 {
	if v, ok := g.At(idx); ok {
		return v
	}
	return fallback
}
