package genome

import (
	"math"
	"math/rand"
	"testing"
)

func TestLayoutLength(t *testing.T) {
	tests := []struct {
		limbs int
		want  int
	}{
		{4, 3 + 4*5 + 2 + 4 + 1 + 2 + 3 + 5},
		{6, 3 + 6*5 + 2 + 6 + 1 + 2 + 3 + 5},
		{8, 3 + 8*5 + 2 + 8 + 1 + 2 + 3 + 5},
		{12, 3 + 12*5 + 2 + 12 + 1 + 2 + 3 + 5},
	}

	rng := rand.New(rand.NewSource(1))
	for _, tc := range tests {
		l := Layout{LimbCount: tc.limbs}
		if got := l.Length(); got != tc.want {
			t.Errorf("Layout{%d}.Length() = %d, want %d", tc.limbs, got, tc.want)
		}
		g := NewRandom(rng, l)
		if len(g) != tc.want {
			t.Errorf("NewRandom length = %d, want %d", len(g), tc.want)
		}
	}
}

func TestLayoutIndices(t *testing.T) {
	// The default 8-limb layout pins the attach block at offset 45.
	l := Layout{LimbCount: 8}

	if got := l.AttachFraction(0); got != 45 {
		t.Errorf("AttachFraction(0) = %d, want 45", got)
	}
	if got := l.Frequency(); got != 43 {
		t.Errorf("Frequency() = %d, want 43", got)
	}
	if got := l.PowerRatio(); got != l.Length()-1 {
		t.Errorf("PowerRatio() = %d, want last index %d", got, l.Length()-1)
	}
}

func TestNewRandomRanges(t *testing.T) {
	l := Layout{LimbCount: 8}
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		g := NewRandom(rng, l)

		if g[GeneRadius] < MinRadius || g[GeneRadius] > MaxRadius {
			t.Fatalf("radius %f outside [%f, %f]", g[GeneRadius], float32(MinRadius), float32(MaxRadius))
		}
		if g[GeneElongation] < MinElongation || g[GeneElongation] > MaxElongation {
			t.Fatalf("elongation %f out of range", g[GeneElongation])
		}
		sides := g[l.Sides()]
		if sides < MinSides || sides > MaxSides || sides != float32(math.Trunc(float64(sides))) {
			t.Fatalf("sides %f not an integer in [3, 8]", sides)
		}
		for _, idx := range []int{l.ColorR(), l.ColorG(), l.ColorB()} {
			if g[idx] < 0 || g[idx] > 255 {
				t.Fatalf("color gene %d = %f out of range", idx, g[idx])
			}
		}
		for i := 0; i < l.LimbCount; i++ {
			if g[l.AttachFraction(i)] < 0 || g[l.AttachFraction(i)] > 1 {
				t.Fatalf("attach fraction out of [0, 1]")
			}
		}
	}
}

func TestNewRandomNoSharedStorage(t *testing.T) {
	l := Layout{LimbCount: 8}
	rng := rand.New(rand.NewSource(2))

	a := NewRandom(rng, l)
	b := NewRandom(rng, l)

	a[GeneRadius] = 999
	if b[GeneRadius] == 999 {
		t.Error("two random genomes share storage")
	}

	c := a.Clone()
	a[GeneRadius] = 1
	if c[GeneRadius] != 999 {
		t.Error("clone shares storage with original")
	}
}

func TestAtSetBounds(t *testing.T) {
	g := Genome{1, 2, 3}

	if v, ok := g.At(1); !ok || v != 2 {
		t.Errorf("At(1) = %f, %v", v, ok)
	}
	if _, ok := g.At(3); ok {
		t.Error("At(3) should be out of range")
	}
	if _, ok := g.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
	if g.Set(5, 1) {
		t.Error("Set(5) should report out of range")
	}
	if !g.Set(0, 42) || g[0] != 42 {
		t.Error("Set(0) failed")
	}
}

func TestDeriveTruncatedGenome(t *testing.T) {
	l := Layout{LimbCount: 8}

	// A genome cut short must still derive finite, in-range traits.
	short := Genome{20, 1.0, 0}
	tr := Derive(short, l)

	if tr.Radius != 20 {
		t.Errorf("radius = %f, want 20", tr.Radius)
	}
	if tr.Sides < MinSides || tr.Sides > MaxSides {
		t.Errorf("sides = %d out of range", tr.Sides)
	}
	if tr.Inertia() < 1 {
		t.Errorf("inertia = %f, want >= 1", tr.Inertia())
	}
}
