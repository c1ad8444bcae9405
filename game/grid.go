// Package game implements the grid snake simulation: movement, collision,
// food placement, scoring and the fixed-step scheduler that drives it.
// It performs no I/O and starts no goroutines; hosts call Advance once per
// rendered frame and read state back through the accessors or Project.
package game

import (
	"fmt"
	"strings"
)

// Cell is an integer grid coordinate
type Cell struct {
	X int
	Y int
}

// Add returns the cell offset by o
func (c Cell) Add(o Offset) Cell {
	return Cell{X: c.X + o.DX, Y: c.Y + o.DY}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Offset is a one-cell movement vector
type Offset struct {
	DX int
	DY int
}

// Direction is the snake heading. The zero value is not a valid direction.
type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// offsets maps each direction to its movement vector; y grows downward
var offsets = [...]Offset{
	Up:    {DX: 0, DY: -1},
	Down:  {DX: 0, DY: 1},
	Left:  {DX: -1, DY: 0},
	Right: {DX: 1, DY: 0},
}

var opposites = [...]Direction{
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Offset returns the movement vector for d, or the zero offset if d is invalid
func (d Direction) Offset() Offset {
	if !d.Valid() {
		return Offset{}
	}
	return offsets[d]
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return 0
	}
	return opposites[d]
}

// IsOpposite reports whether o is the exact reverse of d
func (d Direction) IsOpposite(o Direction) bool {
	return d.Valid() && o == opposites[d]
}

// Horizontal reports whether d moves along the x axis
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	if !d.Valid() {
		return "none"
	}
	return directionNames[d]
}

// Short returns the single-letter wire form used by the client protocol
func (d Direction) Short() string {
	if !d.Valid() {
		return ""
	}
	return directionNames[d][:1]
}

// ParseDirection accepts the single-letter wire form, the full name, or a
// browser key name such as "ArrowLeft". Matching is case-insensitive.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up", "arrowup":
		return Up, true
	case "d", "down", "arrowdown":
		return Down, true
	case "l", "left", "arrowleft":
		return Left, true
	case "r", "right", "arrowright":
		return Right, true
	}
	return 0, false
}

// Wrap reduces coord into [0, size). Movement never overshoots by more than a
// cell, so the common cases are the single-step edges; larger values fall
// back to a true modulo.
func Wrap(coord, size int) int {
	switch {
	case size <= 0:
		return 0
	case coord == -1:
		return size - 1
	case coord == size:
		return 0
	case coord >= 0 && coord < size:
		return coord
	}
	m := coord % size
	if m < 0 {
		m += size
	}
	return m
}

// Grid describes the board dimensions
type Grid struct {
	Width  int
	Height int
}

// Capacity is the number of cells on the board
func (g Grid) Capacity() int {
	return g.Width * g.Height
}

// Contains reports whether c lies on the board
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// WrapCell folds c back onto the board across opposite edges
func (g Grid) WrapCell(c Cell) Cell {
	return Cell{X: Wrap(c.X, g.Width), Y: Wrap(c.Y, g.Height)}
}

// Center returns the middle cell, rounding down
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// index flattens c into a row-major offset; c must be on the board
func (g Grid) index(c Cell) int {
	return c.Y*g.Width + c.X
}

func (g Grid) cellAt(i int) Cell {
	return Cell{X: i % g.Width, Y: i / g.Width}
}

// wrapDistance is the Manhattan distance between a and b, taking the shorter
// way around each axis when wrap is enabled
func (g Grid) wrapDistance(a, b Cell, wrap bool) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if wrap {
		dx = min(dx, g.Width-dx)
		dy = min(dy, g.Height-dy)
	}
	return dx + dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
