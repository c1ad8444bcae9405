package game

// Snake is the ordered body, tail first and head last. The occupancy index is
// kept in lockstep with the body on every push and truncate.
type Snake struct {
	body []Cell
	occ  *occupancy
}

func newSnake(g Grid) *Snake {
	return &Snake{occ: newOccupancy(g)}
}

// layout replaces the body with length cells in a row starting at start and
// extending to the right, so the head ends up rightmost
func (s *Snake) layout(start Cell, length int) {
	s.body = s.body[:0]
	s.occ.clear()
	for i := 0; i < length; i++ {
		s.push(Cell{X: start.X + i, Y: start.Y})
	}
}

// Head returns the last cell of the body
func (s *Snake) Head() Cell {
	return s.body[len(s.body)-1]
}

// Tail returns the oldest cell of the body
func (s *Snake) Tail() Cell {
	return s.body[0]
}

func (s *Snake) Len() int {
	return len(s.body)
}

// Contains reports whether any segment occupies c
func (s *Snake) Contains(c Cell) bool {
	return s.occ.has(c)
}

// Cells returns a copy of the body, tail first
func (s *Snake) Cells() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

func (s *Snake) push(c Cell) {
	s.body = append(s.body, c)
	s.occ.add(c)
}

// truncate drops cells from the tail until the body is at most n long
func (s *Snake) truncate(n int) {
	drop := len(s.body) - n
	if drop <= 0 {
		return
	}
	for _, c := range s.body[:drop] {
		s.occ.remove(c)
	}
	// shift in place so the backing array does not creep forward forever
	s.body = append(s.body[:0], s.body[drop:]...)
}
