package systems

// PelletRef is the eat pass's view of one pellet. Consumed pellets are
// marked here and removed from the world by the caller after the pass.
type PelletRef struct {
	X, Y     float32
	Value    float32
	Consumed bool
}

// TotalSystemEnergy sums all living energy: every crab's store plus
// every uneaten pellet. The food spawner holds this near the
// configured target, which is what regulates population indirectly.
func TotalSystemEnergy(crabs []CrabState, pellets []PelletRef) float32 {
	var total float32
	for i := range crabs {
		if crabs[i].Energy.Alive {
			total += crabs[i].Energy.Value
		}
	}
	for i := range pellets {
		if !pellets[i].Consumed {
			total += pellets[i].Value
		}
	}
	return total
}

// EatPellets runs the crab-vs-pellet feeding pass: box overlap first,
// then an exact circle test. Each crab eats at most one pellet per
// tick, each pellet feeds at most one crab. Returns the number of
// pellets consumed.
func EatPellets(crabs []CrabState, pellets []PelletRef, pelletRadius, maxEnergy float32) int {
	eaten := 0
	for i := range crabs {
		c := &crabs[i]
		if !c.Energy.Alive {
			continue
		}
		reach := c.Body.Radius + pelletRadius

		for j := range pellets {
			p := &pellets[j]
			if p.Consumed {
				continue
			}

			dx := p.X - c.Pos.X
			dy := p.Y - c.Pos.Y
			if dx > reach || dx < -reach || dy > reach || dy < -reach {
				continue
			}
			if dx*dx+dy*dy >= reach*reach {
				continue
			}

			c.Energy.Value += p.Value
			if c.Energy.Value > maxEnergy {
				c.Energy.Value = maxEnergy
			}
			p.Consumed = true
			eaten++
			break // one pellet per crab per tick
		}
	}
	return eaten
}
