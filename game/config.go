package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Sizing used when a board is fitted to a host viewport
const (
	BlockWidth  = 20 // px per cell, horizontally
	BlockHeight = 20 // px per cell, vertically
	ScoreMargin = 40 // px reserved above the board for the score bar
	MaxGridSide = 41

	DefaultWidth         = 21
	DefaultHeight        = 21
	DefaultInitialLength = 5
	DefaultTick          = 75 * time.Millisecond

	minInitialLength = 5
	// initialLengthShare of the board is covered by a new snake on large boards
	initialLengthShare = 0.005
)

var (
	ErrGridSize      = errors.New("grid dimensions must be positive")
	ErrInitialLength = errors.New("initial snake length does not fit the grid")
	ErrTickDuration  = errors.New("tick duration must be positive")
)

// Config holds the recognized game options
type Config struct {
	Width         int
	Height        int
	InitialLength int
	Tick          time.Duration
	// Score is the per-food increment; nil selects CurveScore
	Score ScoreFunc
	// Wrap makes the board a torus. When false, leaving the board ends the game.
	Wrap bool
	// MaxCatchUp caps ticks fired per Advance; 0 is unlimited
	MaxCatchUp int
}

// DefaultConfig returns a 21x21 wrapping board with the curve score model
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		InitialLength: DefaultInitialLength,
		Tick:          DefaultTick,
		Score:         CurveScore,
		Wrap:          true,
	}
}

// ConfigForViewport sizes the board to fit a pxW by pxH viewport, leaving room
// for the score bar. The snake starts longer on large boards.
func ConfigForViewport(pxW, pxH int) Config {
	cfg := DefaultConfig()
	cfg.Width = min(MaxGridSide, pxW/BlockWidth)
	cfg.Height = min(MaxGridSide, (pxH-ScoreMargin)/BlockHeight)
	cfg.InitialLength = max(minInitialLength,
		int(math.Floor(float64(cfg.Width*cfg.Height)*initialLengthShare)))
	if cfg.Width > 0 && cfg.InitialLength > cfg.Width {
		cfg.InitialLength = cfg.Width
	}
	return cfg
}

// Validate checks the config before any state is built
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("validate config: %dx%d: %w", c.Width, c.Height, ErrGridSize)
	}
	// the snake is laid out along a single row
	if c.InitialLength < 1 || c.InitialLength > c.Width || c.InitialLength > c.Width*c.Height {
		return fmt.Errorf("validate config: length %d on %dx%d: %w",
			c.InitialLength, c.Width, c.Height, ErrInitialLength)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("validate config: tick %v: %w", c.Tick, ErrTickDuration)
	}
	return nil
}

// Grid returns the board described by the config
func (c Config) Grid() Grid {
	return Grid{Width: c.Width, Height: c.Height}
}

func (c Config) scoreFunc() ScoreFunc {
	if c.Score == nil {
		return CurveScore
	}
	return c.Score
}
