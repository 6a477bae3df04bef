package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/crabs/components"
	"github.com/pthm-cable/crabs/effects"
	"github.com/pthm-cable/crabs/genome"
	"github.com/pthm-cable/crabs/sim"
)

var (
	waterColor  = rl.NewColor(12, 24, 38, 255)
	pelletColor = rl.NewColor(120, 220, 140, 255)
	hudColor    = rl.NewColor(200, 220, 230, 255)
)

// Draw renders one frame: water, pellets, crabs, effects, HUD.
func (g *Game) Draw() {
	g.world.Perf().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(waterColor)

	g.drawPellets()
	g.drawCrabs()
	g.updateAndDrawSparks()
	g.drawHUD()

	rl.EndDrawing()
}

func (g *Game) drawPellets() {
	r := float32(g.cfg.Food.Radius)
	g.world.EachPellet(func(pos *components.Position, _ *components.Pellet) {
		rl.DrawCircleV(rl.NewVector2(pos.X, pos.Y), r, pelletColor)
	})
}

// drawCrabs renders each crab's body polygon and articulated limbs.
// Limb swing is re-derived from the same oscillator phase the force
// pass uses, so the visible gait matches the physics.
func (g *Game) drawCrabs() {
	l := g.world.Layout()
	simTime := g.world.Time()
	maxEnergy := g.cfg.Derived.MaxEnergy32

	var outline []genome.Vec2
	var poly []rl.Vector2

	g.world.EachCrab(func(c sim.CrabView) {
		tr := genome.Derive(c.Crab.Genes, l)

		// Starving crabs fade out.
		alpha := uint8(90 + 165*clamp01(c.Energy.Value/maxEnergy))
		body := rl.NewColor(tr.ColorR, tr.ColorG, tr.ColorB, alpha)
		limb := rl.NewColor(tr.ColorR/2+60, tr.ColorG/2+60, tr.ColorB/2+60, alpha)

		sinH := float32(math.Sin(float64(c.Rot.Heading)))
		cosH := float32(math.Cos(float64(c.Rot.Heading)))

		// Limbs behind the body.
		for i := 0; i < l.LimbCount; i++ {
			phase, ok := c.Crab.Genes.At(l.LimbPhase(i))
			if !ok {
				continue
			}
			cycle := tr.Frequency*simTime + phase
			swing := float32(math.Sin(float64(cycle))) * tr.Amplitude * 0.4

			base, elbow, tip, ok := genome.LimbSegments(c.Crab.Genes, l, i, swing)
			if !ok {
				continue
			}
			p0 := worldPoint(base, cosH, sinH, c.Pos)
			p1 := worldPoint(elbow, cosH, sinH, c.Pos)
			p2 := worldPoint(tip, cosH, sinH, c.Pos)
			rl.DrawLineEx(p0, p1, 2, limb)
			rl.DrawLineEx(p1, p2, 1.5, limb)
		}

		// Body polygon as a triangle fan around the centre. raylib
		// culls clockwise triangles, so each slice winds centre ->
		// next -> current.
		outline = genome.Outline(c.Crab.Genes, l, outline[:0])
		poly = poly[:0]
		for _, v := range outline {
			poly = append(poly, worldPoint(v, cosH, sinH, c.Pos))
		}
		centre := rl.NewVector2(c.Pos.X, c.Pos.Y)
		for i := range poly {
			next := poly[(i+1)%len(poly)]
			rl.DrawTriangle(centre, next, poly[i], body)
		}

		if c.Crab.Selected {
			rl.DrawCircleLinesV(rl.NewVector2(c.Pos.X, c.Pos.Y), c.Body.Radius+6, rl.Gold)
		}
	})
}

func worldPoint(v genome.Vec2, cosH, sinH float32, pos *components.Position) rl.Vector2 {
	return rl.NewVector2(
		pos.X+v.X*cosH-v.Y*sinH,
		pos.Y+v.X*sinH+v.Y*cosH,
	)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// spark is one live visual particle spawned from an effect record.
type spark struct {
	x, y   float32
	vx, vy float32
	life   float32
	max    float32
	color  rl.Color
	radius float32
}

// updateAndDrawSparks drains new effects into particles, ages them by
// the frame time, and draws the survivors.
func (g *Game) updateAndDrawSparks() {
	for _, e := range g.world.Effects().Drain(nil) {
		g.spawnSparks(e)
	}

	dt := rl.GetFrameTime()
	alive := g.sparks[:0]
	for _, s := range g.sparks {
		s.life -= dt
		if s.life <= 0 {
			continue
		}
		s.x += s.vx * dt
		s.y += s.vy * dt

		fade := s.life / s.max
		c := s.color
		c.A = uint8(float32(c.A) * fade)
		rl.DrawCircleV(rl.NewVector2(s.x, s.y), s.radius*fade, c)

		alive = append(alive, s)
	}
	g.sparks = alive
}

func (g *Game) spawnSparks(e effects.Effect) {
	switch e.Kind {
	case effects.KindCollision:
		// Particle count scales with impact intensity.
		n := 2 + int(e.Intensity/6)
		if n > 8 {
			n = 8
		}
		for i := 0; i < n; i++ {
			ang := float64(i) / float64(n) * 2 * math.Pi
			speed := 20 + e.Intensity
			g.sparks = append(g.sparks, spark{
				x: e.X, y: e.Y,
				vx: e.VX + float32(math.Cos(ang))*speed,
				vy: e.VY + float32(math.Sin(ang))*speed,
				life: 0.4, max: 0.4,
				color:  rl.NewColor(230, 230, 255, 200),
				radius: 2,
			})
		}
	case effects.KindBirth:
		g.sparks = append(g.sparks, spark{
			x: e.X, y: e.Y,
			life: 0.8, max: 0.8,
			color:  rl.NewColor(150, 255, 170, 180),
			radius: 12,
		})
	case effects.KindDeath:
		g.sparks = append(g.sparks, spark{
			x: e.X, y: e.Y,
			life: 1.2, max: 1.2,
			color:  rl.NewColor(255, 120, 110, 160),
			radius: 10,
		})
	}
}

func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("tick %d  crabs %d  pellets %d",
		g.world.Tick(), g.world.AliveCount(), g.world.PelletCount()), 10, 10, 18, hudColor)
	rl.DrawText(fmt.Sprintf("speed x%d  fps %d", g.stepsPerUpdate, rl.GetFPS()), 10, 32, 18, hudColor)
	if g.paused {
		rl.DrawText("PAUSED", 10, 54, 18, rl.Gold)
	}

	if g.hasSelected {
		g.drawSelectedPanel()
	}
}

// drawSelectedPanel shows the selected crab's vitals and key genes.
func (g *Game) drawSelectedPanel() {
	l := g.world.Layout()
	found := false

	g.world.EachCrab(func(c sim.CrabView) {
		if c.Crab.ID != g.selectedID {
			return
		}
		found = true
		tr := genome.Derive(c.Crab.Genes, l)
		y := int32(g.cfg.Screen.Height - 96)
		rl.DrawText(fmt.Sprintf("crab #%d  energy %.1f", c.Crab.ID, c.Energy.Value), 10, y, 16, hudColor)
		rl.DrawText(fmt.Sprintf("radius %.1f  sides %d  limbs %d", tr.Radius, tr.Sides, l.LimbCount), 10, y+20, 16, hudColor)
		rl.DrawText(fmt.Sprintf("freq %.2f  amp %.2f  power %.2f", tr.Frequency, tr.Amplitude, tr.PowerRatio), 10, y+40, 16, hudColor)
		rl.DrawText(fmt.Sprintf("drag %.2f  elast %.2f  torque %.2f", tr.Drag, tr.Elasticity, tr.TorqueEfficiency), 10, y+60, 16, hudColor)
	})

	// Selection went stale (crab died): drop it.
	if !found {
		g.hasSelected = false
	}
}
