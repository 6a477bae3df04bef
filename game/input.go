package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/crabs/sim"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		g.selectAt(mouse.X, mouse.Y)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		mouse := rl.GetMousePosition()
		g.world.RequestCrabCreation(mouse.X, mouse.Y)
	}
}

// selectAt picks the crab under the cursor, or clears the selection
// when the click lands on open water.
func (g *Game) selectAt(x, y float32) {
	var picked uint32
	found := false

	g.world.EachCrab(func(c sim.CrabView) {
		dx := c.Pos.X - x
		dy := c.Pos.Y - y
		r := c.Body.Radius
		if dx*dx+dy*dy <= r*r {
			picked = c.Crab.ID
			found = true
		}
	})

	if found {
		g.selectedID = picked
		g.hasSelected = true
		g.world.SetSelected(picked, true)
	} else if g.hasSelected {
		g.world.SetSelected(g.selectedID, false)
		g.hasSelected = false
	}
}
