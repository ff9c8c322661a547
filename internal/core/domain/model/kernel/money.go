package kernel

import "math"

// RoundCents rounds v half away from zero to 2 decimal places.
// Currency amounts and distances are carried with this precision.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
