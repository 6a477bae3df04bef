package genome

import "math"

// Vec2 is a 2D point in crab-local coordinates (body centre at origin,
// unrotated).
type Vec2 struct {
	X, Y float32
}

// Outline appends the body polygon vertices to dst and returns it.
// The polygon has the genome's side count, scaled by elongation along
// the local x axis and compressed along y so area stays roughly
// constant.
func Outline(g Genome, l Layout, dst []Vec2) []Vec2 {
	t := Derive(g, l)
	for k := 0; k < t.Sides; k++ {
		ang := 2 * math.Pi * float64(k) / float64(t.Sides)
		dst = append(dst, Vec2{
			X: float32(math.Cos(ang)) * t.Radius * t.Elongation,
			Y: float32(math.Sin(ang)) * t.Radius / t.Elongation,
		})
	}
	return dst
}

// AttachPoint returns the point on the body perimeter where limb i
// attaches: the limb's attach-fraction gene picks a position along the
// total edge length of the outline. Returns ok=false when the limb's
// genes run past the vector.
func AttachPoint(g Genome, l Layout, limb int) (Vec2, bool) {
	frac, ok := g.At(l.AttachFraction(limb))
	if !ok {
		return Vec2{}, false
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	verts := Outline(g, l, nil)
	if len(verts) < 2 {
		return Vec2{}, false
	}

	total := float32(0)
	for k := range verts {
		next := verts[(k+1)%len(verts)]
		total += dist(verts[k], next)
	}
	if total <= 0 {
		return verts[0], true
	}

	// Walk edges until the target arc length falls inside one.
	target := frac * total
	for k := range verts {
		next := verts[(k+1)%len(verts)]
		edge := dist(verts[k], next)
		if target <= edge || k == len(verts)-1 {
			u := float32(0)
			if edge > 0 {
				u = target / edge
			}
			return Vec2{
				X: verts[k].X + (next.X-verts[k].X)*u,
				Y: verts[k].Y + (next.Y-verts[k].Y)*u,
			}, true
		}
		target -= edge
	}
	return verts[0], true
}

// LimbSegments returns the three joints of limb i in local
// coordinates: the perimeter attachment, the elbow at the end of the
// base segment, and the branch tip. swing is the current oscillation
// offset added to the base angle (pass 0 for the rest pose). Returns
// ok=false when the limb's genes run past the vector.
func LimbSegments(g Genome, l Layout, limb int, swing float32) (base, elbow, tip Vec2, ok bool) {
	baseAngle, ok1 := g.At(l.LimbBaseAngle(limb))
	baseLen, ok2 := g.At(l.LimbBaseLength(limb))
	branchAngle, ok3 := g.At(l.LimbBranchAngle(limb))
	lengthRatio, ok4 := g.At(l.LimbLengthRatio(limb))
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Vec2{}, Vec2{}, Vec2{}, false
	}

	base, ok = AttachPoint(g, l, limb)
	if !ok {
		return Vec2{}, Vec2{}, Vec2{}, false
	}

	ang := float64(baseAngle + swing)
	elbow = Vec2{
		X: base.X + float32(math.Cos(ang))*baseLen,
		Y: base.Y + float32(math.Sin(ang))*baseLen,
	}

	branch := ang + float64(branchAngle)
	branchLen := baseLen * lengthRatio
	tip = Vec2{
		X: elbow.X + float32(math.Cos(branch))*branchLen,
		Y: elbow.Y + float32(math.Sin(branch))*branchLen,
	}
	return base, elbow, tip, true
}

func dist(a, b Vec2) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
