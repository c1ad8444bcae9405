package game

// Status lines shown over the board once a game has ended
const (
	GameOverText  = "Game over! Press any key to restart.."
	BoardFullText = "Board full! Press any key to play again.."
)

// Segment is one drawable body cell. Alpha runs from 0.5 at the tail to 1 at
// the head; Inset is the fraction of a cell trimmed from each side, from a
// quarter at the tail down to nothing at the head.
type Segment struct {
	Cell  Cell
	Alpha float64
	Inset float64
	Head  bool
}

// Frame is a read-only snapshot of everything a renderer needs
type Frame struct {
	Grid     Grid
	Segments []Segment
	Food     Cell
	HasFood  bool
	Score    int
	Eaten    int
	Status   Status
	Cause    Cause
	Heading  Direction
	Message  string
}

// Project maps the game state onto drawable primitives without mutating it
func Project(g *Game) Frame {
	body := g.snake.body
	f := Frame{
		Grid:     g.grid,
		Segments: make([]Segment, len(body)),
		Food:     g.food,
		HasFood:  g.hasFood,
		Score:    g.points,
		Eaten:    g.eaten,
		Status:   g.status,
		Cause:    g.cause,
		Heading:  g.heading,
	}
	for i, c := range body {
		t := 1.0
		if len(body) > 1 {
			t = float64(i) / float64(len(body)-1)
		}
		f.Segments[i] = Segment{
			Cell:  c,
			Alpha: (1-t)*0.5 + t,
			Inset: (1 - t) * 0.25,
			Head:  i == len(body)-1,
		}
	}
	switch g.status {
	case GameOver:
		f.Message = GameOverText
	case BoardFull:
		f.Message = BoardFullText
	}
	return f
}

// Cells returns just the segment coordinates, tail first
func (f Frame) Cells() []Cell {
	out := make([]Cell, len(f.Segments))
	for i, s := range f.Segments {
		out[i] = s.Cell
	}
	return out
}
