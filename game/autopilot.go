package game

// Autopilot steers a snake toward the food without immediately killing it.
// It is used for demo sessions and feeds the normal RequestDirection path.
type Autopilot struct {
	src       Source
	seekTicks int
	lastEaten int
}

// NewAutopilot creates an autopilot; src breaks out of food-seeking loops
func NewAutopilot(src Source) *Autopilot {
	if src == nil {
		src = NewTimeSource()
	}
	return &Autopilot{src: src}
}

// Decide picks the heading for the next tick. ok is false when every move is
// fatal, in which case the current heading is returned unchanged.
func (a *Autopilot) Decide(g *Game) (Direction, bool) {
	current := g.Heading()
	moves := a.safeMoves(g)
	if len(moves) == 0 {
		return current, false
	}

	// --- Progress check: reset the seek counter whenever food was eaten ---
	if g.Eaten() > a.lastEaten {
		a.seekTicks = 0
	}
	a.lastEaten = g.Eaten()

	// --- Break orbits: chasing the same food for longer than a full lap of the board ---
	if a.seekTicks > g.Grid().Capacity() {
		a.seekTicks = 0
		return moves[RandomInt(a.src, 0, float64(len(moves)))], true
	}

	food, ok := g.Food()
	if !ok {
		return moves[0], true
	}

	// --- Seek food: closest safe move, more free neighbours breaks ties ---
	a.seekTicks++
	grid := g.Grid()
	best := moves[0]
	bestDist, bestFree := -1, -1
	for _, d := range moves {
		next := a.target(g, d)
		dist := grid.wrapDistance(next, food, g.Wrap())
		free := a.liberties(g, next)
		if bestDist < 0 || dist < bestDist || (dist == bestDist && free > bestFree) {
			best, bestDist, bestFree = d, dist, free
		}
	}
	return best, true
}

// safeMoves lists non-reversing headings whose next cell is on the board and
// not covered by the body, current heading first
func (a *Autopilot) safeMoves(g *Game) []Direction {
	current := g.Heading()
	candidates := []Direction{current}
	if current.Horizontal() {
		candidates = append(candidates, Up, Down)
	} else {
		candidates = append(candidates, Left, Right)
	}

	moves := candidates[:0]
	for _, d := range candidates {
		next := g.Head().Add(d.Offset())
		if !g.Grid().Contains(next) {
			if !g.Wrap() {
				continue
			}
			next = g.Grid().WrapCell(next)
		}
		if g.Occupied(next) {
			continue
		}
		moves = append(moves, d)
	}
	return moves
}

func (a *Autopilot) target(g *Game, d Direction) Cell {
	next := g.Head().Add(d.Offset())
	if g.Wrap() {
		next = g.Grid().WrapCell(next)
	}
	return next
}

// liberties counts the free cells around c
func (a *Autopilot) liberties(g *Game, c Cell) int {
	n := 0
	for d := Up; d <= Right; d++ {
		next := c.Add(d.Offset())
		if !g.Grid().Contains(next) {
			if !g.Wrap() {
				continue
			}
			next = g.Grid().WrapCell(next)
		}
		if !g.Occupied(next) {
			n++
		}
	}
	return n
}
