package game

const (
	// maxSpawnAttempts bounds rejection sampling before falling back to the free-cell list
	maxSpawnAttempts = 64
	// denseFreeRatio: below this share of free cells, skip rejection sampling entirely
	denseFreeRatio = 0.25
)

// SpawnFood picks a uniformly random cell not covered by body. It returns
// false when every cell is occupied, which the engine treats as a full board.
func SpawnFood(body []Cell, g Grid, src Source) (Cell, bool) {
	occ := newOccupancy(g)
	for _, c := range body {
		if g.Contains(c) {
			occ.add(c)
		}
	}
	return spawnFood(occ, src)
}

func spawnFood(occ *occupancy, src Source) (Cell, bool) {
	free := occ.free()
	if free == 0 {
		return Cell{}, false
	}

	if float64(free) >= float64(len(occ.cells))*denseFreeRatio {
		for i := 0; i < maxSpawnAttempts; i++ {
			c := randomCell(src, occ.grid)
			if !occ.has(c) {
				return c, true
			}
		}
	}

	cells := occ.freeCells()
	return cells[RandomInt(src, 0, float64(len(cells)))], true
}
