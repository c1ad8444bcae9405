package game

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// Source yields uniform floats in [0, 1)
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source with a fixed seed, so the same seed
// replays the same food placements
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource seeds from the wall clock
func NewTimeSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

// RandomInt returns an integer uniformly distributed in [min, max). The
// bounds are coerced to ceil(min) and floor(max) first; if the range is
// empty the lower bound is returned.
func RandomInt(src Source, min, max float64) int {
	lo := math.Ceil(min)
	hi := math.Floor(max)
	if hi <= lo {
		return int(lo)
	}
	v := int(math.Floor(src.Float64()*(hi-lo) + lo))
	// guard the float edge where u*(hi-lo) rounds up to hi-lo
	if v >= int(hi) {
		v = int(hi) - 1
	}
	return v
}

// randomCell draws a cell uniformly from the whole board
func randomCell(src Source, g Grid) Cell {
	return Cell{
		X: RandomInt(src, 0, float64(g.Width)),
		Y: RandomInt(src, 0, float64(g.Height)),
	}
}
