package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// normalizeHeading wraps a heading to [0, 2*Pi).
func normalizeHeading(h float32) float32 {
	const twoPi = 2 * math.Pi
	for h < 0 {
		h += twoPi
	}
	for h >= twoPi {
		h -= twoPi
	}
	return h
}

// mod2Pi wraps an oscillator cycle to [0, 2*Pi). Unlike
// normalizeHeading it handles arbitrarily large inputs in one step,
// since freq*time grows without bound.
func mod2Pi(x float32) float32 {
	const twoPi = 2 * math.Pi
	m := float32(math.Mod(float64(x), twoPi))
	if m < 0 {
		m += twoPi
	}
	return m
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}

// isFinite reports whether every value is a usable number.
func isFinite(vals ...float32) bool {
	for _, v := range vals {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
