package game

// occupancy is a dense per-cell counter of snake segments. It lets collision
// and food placement test membership without scanning the body, and it can
// enumerate the free cells when rejection sampling gives up.
type occupancy struct {
	grid  Grid
	cells []uint8
	used  int
}

func newOccupancy(g Grid) *occupancy {
	return &occupancy{
		grid:  g,
		cells: make([]uint8, g.Capacity()),
	}
}

// clear empties every cell without reallocating
func (o *occupancy) clear() {
	for i := range o.cells {
		o.cells[i] = 0
	}
	o.used = 0
}

func (o *occupancy) add(c Cell) {
	i := o.grid.index(c)
	if o.cells[i] == 0 {
		o.used++
	}
	o.cells[i]++
}

func (o *occupancy) remove(c Cell) {
	i := o.grid.index(c)
	if o.cells[i] == 0 {
		return
	}
	o.cells[i]--
	if o.cells[i] == 0 {
		o.used--
	}
}

// has reports whether any segment sits on c; off-board cells are never occupied
func (o *occupancy) has(c Cell) bool {
	if !o.grid.Contains(c) {
		return false
	}
	return o.cells[o.grid.index(c)] > 0
}

// free is the number of unoccupied cells
func (o *occupancy) free() int {
	return len(o.cells) - o.used
}

// freeCells lists every unoccupied cell in row-major order
func (o *occupancy) freeCells() []Cell {
	out := make([]Cell, 0, o.free())
	for i, n := range o.cells {
		if n == 0 {
			out = append(out, o.grid.cellAt(i))
		}
	}
	return out
}
