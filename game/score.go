package game

import "math"

// ScoreFunc returns the points awarded for a food item, given how many were
// eaten before it
type ScoreFunc func(eatenBefore int) int

const (
	minIncrement = 1
	maxIncrement = 50

	// curveSaturatesAt is the first count where the raw cubic reaches
	// maxIncrement. The cubic turns over far past this point, so the
	// increment is held at the cap from here on.
	curveSaturatesAt = 35

	// DefaultFlatPoints is the increment used by the flat score model
	DefaultFlatPoints = 10
)

// curveRaw is a cubic fit through (1,1) (5,3) (10,8) (15,14) (20,21) (25,30)
func curveRaw(n int) float64 {
	x := float64(n)
	return 0.4441263 + 0.3989887*x + 0.03551711*x*x - 0.000172774*x*x*x
}

// CurveScore is the default accelerating-then-saturating increment, floored
// and clamped to [1, 50]
func CurveScore(eatenBefore int) int {
	if eatenBefore < 0 {
		eatenBefore = 0
	}
	if eatenBefore >= curveSaturatesAt {
		return maxIncrement
	}
	v := int(math.Floor(curveRaw(eatenBefore)))
	return max(minIncrement, min(maxIncrement, v))
}

// FlatScore awards the same number of points for every food item
func FlatScore(points int) ScoreFunc {
	if points < 0 {
		points = 0
	}
	return func(int) int { return points }
}
