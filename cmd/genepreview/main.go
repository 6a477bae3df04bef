// Gene preview tool - interactive crab morphology editor with sliders.
//
// Usage: go run ./cmd/genepreview
package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/crabs/genome"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 620
	panelWidth   = windowWidth - previewSize - 30
	limbCount    = 8
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Crab Gene Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	layout := genome.Layout{LimbCount: limbCount}
	genes := genome.NewRandom(rng, layout)

	var simTime float32
	animating := true

	var outline []genome.Vec2

	for !rl.WindowShouldClose() {
		if animating {
			simTime += rl.GetFrameTime()
		}

		tr := genome.Derive(genes, layout)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(12, 24, 38, 255))

		drawCrab(genes, layout, tr, simTime, &outline)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("radius %.1f  sides %d  inertia %.0f", tr.Radius, tr.Sides, tr.Inertia()),
			15, statsY, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("freq %.2f  amp %.2f  power %.2f  drag %.2f", tr.Frequency, tr.Amplitude, tr.PowerRatio, tr.Drag),
			15, statsY+20, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Morphology Genes", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		panelY = geneSlider(genes, panelX, panelY, "Radius", genome.GeneRadius, genome.MinRadius, genome.MaxRadius)
		panelY = geneSlider(genes, panelX, panelY, "Elongation", genome.GeneElongation, genome.MinElongation, genome.MaxElongation)
		panelY = geneSlider(genes, panelX, panelY, "Sides", layout.Sides(), genome.MinSides, genome.MaxSides)
		panelY = geneSlider(genes, panelX, panelY, "Frequency", layout.Frequency(), genome.MinFrequency, genome.MaxFrequency)
		panelY = geneSlider(genes, panelX, panelY, "Amplitude", layout.Amplitude(), genome.MinAmplitude, genome.MaxAmplitude)
		panelY = geneSlider(genes, panelX, panelY, "Body symmetry", layout.BodySymmetry(), 0, 1)
		panelY = geneSlider(genes, panelX, panelY, "Move symmetry", layout.MoveSymmetry(), 0, 1)
		panelY = geneSlider(genes, panelX, panelY, "Elasticity", layout.Elasticity(), genome.MinElasticity, genome.MaxElasticity)

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reroll") {
			genes = genome.NewRandom(rng, layout)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Symmetrize") {
			genome.ApplyBodySymmetry(genes, layout)
			genome.ApplyMovementSymmetry(genes, layout)
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Freeze", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Mutate") {
			genome.Mutate(genes, rng, layout, 0.3)
		}

		rl.EndDrawing()
	}
}

// geneSlider draws one labelled slider bound to a gene index, writes
// the edited value back, and returns the next panel y.
func geneSlider(genes genome.Genome, x, y float32, label string, idx int, lo, hi float32) float32 {
	v, ok := genes.At(idx)
	if !ok {
		return y
	}

	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.1f", lo), fmt.Sprintf("%.1f", hi),
		v, lo, hi,
	)
	genes.Set(idx, next)
	return y + 30
}

func drawCrab(genes genome.Genome, l genome.Layout, tr genome.Traits, simTime float32, outline *[]genome.Vec2) {
	cx := float32(10 + previewSize/2)
	cy := float32(10 + previewSize/2)
	scale := float32(6)

	body := rl.NewColor(tr.ColorR, tr.ColorG, tr.ColorB, 255)
	limb := rl.NewColor(tr.ColorR/2+60, tr.ColorG/2+60, tr.ColorB/2+60, 255)

	for i := 0; i < l.LimbCount; i++ {
		phase, ok := genes.At(l.LimbPhase(i))
		if !ok {
			continue
		}
		swing := float32(math.Sin(float64(tr.Frequency*simTime+phase))) * tr.Amplitude * 0.4

		base, elbow, tip, ok := genome.LimbSegments(genes, l, i, swing)
		if !ok {
			continue
		}
		p0 := rl.NewVector2(cx+base.X*scale, cy+base.Y*scale)
		p1 := rl.NewVector2(cx+elbow.X*scale, cy+elbow.Y*scale)
		p2 := rl.NewVector2(cx+tip.X*scale, cy+tip.Y*scale)
		rl.DrawLineEx(p0, p1, 4, limb)
		rl.DrawLineEx(p1, p2, 3, limb)
	}

	*outline = genome.Outline(genes, l, (*outline)[:0])
	verts := *outline
	centre := rl.NewVector2(cx, cy)
	for i := range verts {
		cur := rl.NewVector2(cx+verts[i].X*scale, cy+verts[i].Y*scale)
		nxt := verts[(i+1)%len(verts)]
		next := rl.NewVector2(cx+nxt.X*scale, cy+nxt.Y*scale)
		rl.DrawTriangle(centre, next, cur, body)
	}

	// Attachment points, for eyeballing the torque levers.
	for i := 0; i < l.LimbCount; i++ {
		if p, ok := genome.AttachPoint(genes, l, i); ok {
			rl.DrawCircleV(rl.NewVector2(cx+p.X*scale, cy+p.Y*scale), 3, rl.Gold)
		}
	}
}

func toggleText(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
