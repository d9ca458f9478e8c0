package geometry

import "math"

// DefaultSnapDigits is the registry grid precision: coordinates equal to six
// decimal places share a key.
const DefaultSnapDigits = 6

// Key is a coordinate snapped to a fixed-precision grid. Two points that
// differ only by floating round-off map to the same Key.
type Key struct {
	X float64
	Y float64
}

// Snap returns the grid key for (x, y) at the given number of decimal digits.
func Snap(x, y float64, digits int) Key {
	scale := math.Pow10(digits)
	return Key{X: snap(x, scale), Y: snap(y, scale)}
}

// snap rounds v to the grid of step 1/scale. Values too large to scale are
// already coarser than the grid and are returned unchanged.
func snap(v, scale float64) float64 {
	scaled := v * scale
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.Round(scaled) / scale
}
