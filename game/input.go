package game

// Pointer is a touch or click location in host viewport pixels
type Pointer struct {
	X, Y  float64
	ViewW float64
	ViewH float64
}

// IntentBuffer holds at most one pending direction request and one pending
// pointer location between ticks. Later writes replace earlier ones.
type IntentBuffer struct {
	dir     Direction
	pointer *Pointer
}

// RequestDirection records d as the pending heading and discards any pending pointer
func (b *IntentBuffer) RequestDirection(d Direction) {
	if !d.Valid() {
		return
	}
	b.dir = d
	b.pointer = nil
}

// RequestPointer records a pointer location and discards any pending direction
func (b *IntentBuffer) RequestPointer(p Pointer) {
	b.dir = 0
	b.pointer = &p
}

// Pending reports the queued direction, if any
func (b *IntentBuffer) Pending() (Direction, bool) {
	return b.dir, b.dir.Valid()
}

// Clear drops everything queued
func (b *IntentBuffer) Clear() {
	b.dir = 0
	b.pointer = nil
}

// Resolve consumes the buffer and returns the heading for the next tick.
// A queued direction is taken unless it reverses current. Otherwise a queued
// pointer turns the snake onto the perpendicular axis, toward the half of the
// viewport that was touched. Both slots are emptied either way.
func (b *IntentBuffer) Resolve(current Direction) Direction {
	defer b.Clear()

	if b.dir.Valid() {
		if current.IsOpposite(b.dir) {
			return current
		}
		return b.dir
	}
	if b.pointer != nil {
		return b.pointer.turn(current)
	}
	return current
}

func (p *Pointer) turn(current Direction) Direction {
	if current.Horizontal() {
		if p.Y <= p.ViewH/2 {
			return Up
		}
		return Down
	}
	if p.X <= p.ViewW/2 {
		return Left
	}
	return Right
}
