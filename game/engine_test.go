package game

import (
	"errors"
	"slices"
	"testing"
	"time"
)

// cornerSource always draws 0, so food lands on the first free cell in row-major order
func cornerSource() Source {
	return &fixedSource{vals: []float64{0}}
}

func newTestGame(t *testing.T, cfg Config, src Source) *Game {
	t.Helper()
	g, err := New(cfg, src)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrGridSize},
		{"negative height", func(c *Config) { c.Height = -3 }, ErrGridSize},
		{"zero length", func(c *Config) { c.InitialLength = 0 }, ErrInitialLength},
		{"longer than row", func(c *Config) { c.Width, c.Height, c.InitialLength = 4, 10, 5 }, ErrInitialLength},
		{"zero tick", func(c *Config) { c.Tick = 0 }, ErrTickDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			g, err := New(cfg, cornerSource())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if g != nil {
				t.Error("expected nil game on invalid config")
			}
		})
	}
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), NewSource(3))

	want := []Cell{{8, 10}, {9, 10}, {10, 10}, {11, 10}, {12, 10}}
	if got := g.Snake(); !slices.Equal(got, want) {
		t.Fatalf("snake = %v, want %v", got, want)
	}
	if g.Heading() != Right || g.Status() != Running || g.Score() != 0 || g.Eaten() != 0 {
		t.Errorf("heading=%v status=%v score=%d eaten=%d", g.Heading(), g.Status(), g.Score(), g.Eaten())
	}
	if g.TargetLength() != 5 || g.Elapsed() != 0 {
		t.Errorf("target=%d elapsed=%v", g.TargetLength(), g.Elapsed())
	}
	food, ok := g.Food()
	if !ok || g.Occupied(food) {
		t.Errorf("food %v (ok=%v) overlaps the snake", food, ok)
	}
}

func TestStepMovesOneCell(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), cornerSource())

	res := g.Step()
	if !res.Moved || res.Ate {
		t.Fatalf("step result = %+v", res)
	}
	if g.Head() != (Cell{13, 10}) {
		t.Errorf("head = %v, want (13,10)", g.Head())
	}
	if g.Snake()[0] != (Cell{9, 10}) {
		t.Errorf("tail = %v, want (9,10)", g.Snake()[0])
	}
	if g.Len() != 5 {
		t.Errorf("len = %d, want 5", g.Len())
	}
}

func TestReverseRequestNeverChangesHeading(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), cornerSource())
	for i := 0; i < 4; i++ {
		h := g.Heading()
		g.RequestDirection(h.Opposite())
		g.Step()
		if g.Heading() != h {
			t.Fatalf("reverse of %v changed heading to %v", h, g.Heading())
		}
		// turn clockwise so every heading is covered
		next := map[Direction]Direction{Right: Down, Down: Left, Left: Up, Up: Right}[h]
		g.RequestDirection(next)
		g.Step()
	}
	if g.Status() != Running {
		t.Fatalf("status = %v, cause = %v", g.Status(), g.Cause())
	}
}

func TestWrapAroundEdge(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), cornerSource())
	for i := 0; i < 9; i++ {
		g.Step()
	}
	if g.Head() != (Cell{0, 10}) {
		t.Errorf("head = %v, want (0,10) after crossing the right edge", g.Head())
	}
	for _, c := range g.Snake() {
		if !g.Grid().Contains(c) {
			t.Errorf("cell %v off the board", c)
		}
	}

	g.RequestDirection(Up)
	for i := 0; i < 11; i++ {
		g.Step()
	}
	if g.Head() != (Cell{0, 20}) {
		t.Errorf("head = %v, want (0,20) after crossing the top edge", g.Head())
	}
}

func TestWallModeEndsGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wrap = false
	g := newTestGame(t, cfg, cornerSource())

	for i := 0; i < 8; i++ {
		if res := g.Step(); res.Died {
			t.Fatalf("died early at step %d", i)
		}
	}
	before := g.Snake()
	if res := g.Step(); !res.Died {
		t.Fatal("expected to hit the wall")
	}
	if g.Status() != GameOver || g.Cause() != CauseWall {
		t.Errorf("status=%v cause=%v", g.Status(), g.Cause())
	}
	if !slices.Equal(g.Snake(), before) {
		t.Error("snake moved on the fatal tick")
	}
}

func TestSelfCollisionFreezesState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	g := newTestGame(t, cfg, cornerSource())

	// body (0..4,2), food parked at (0,0)
	g.RequestDirection(Down)
	g.Step()
	g.RequestDirection(Left)
	g.Step()
	g.RequestDirection(Up)
	res := g.Step()

	if !res.Died || !g.GameOver() || g.Cause() != CauseSelf {
		t.Fatalf("res=%+v status=%v cause=%v", res, g.Status(), g.Cause())
	}

	body, score, ticks := g.Snake(), g.Score(), g.Ticks()
	g.RequestDirection(Left)
	for i := 0; i < 5; i++ {
		if res := g.Step(); res != (StepResult{}) {
			t.Fatalf("step after game over returned %+v", res)
		}
	}
	if n, _ := g.Advance(time.Second); n != 0 {
		t.Errorf("Advance fired %d ticks after game over", n)
	}
	if !slices.Equal(g.Snake(), body) || g.Score() != score || g.Ticks() != ticks {
		t.Error("state changed after game over")
	}
	if g.Elapsed() != 0 {
		t.Errorf("time accumulated after game over: %v", g.Elapsed())
	}
}

func TestCollisionIncludesTailCell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.InitialLength = 4, 4, 4
	g := newTestGame(t, cfg, cornerSource())

	// body (0..3,2); loop up, left, then down into the cell the tail is leaving
	g.RequestDirection(Up)
	g.Step()
	g.RequestDirection(Left)
	g.Step()
	if tail := g.Snake()[0]; tail != (Cell{2, 2}) {
		t.Fatalf("tail = %v, want (2,2)", tail)
	}
	g.RequestDirection(Down)
	if res := g.Step(); !res.Died {
		t.Fatalf("moving onto the departing tail should be fatal, res=%+v", res)
	}
	if g.Cause() != CauseSelf {
		t.Errorf("cause = %v", g.Cause())
	}
}

func TestBoardFullOnTinyGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.InitialLength = 2, 2, 2
	g := newTestGame(t, cfg, cornerSource())

	// body (0,1),(1,1) with food at (0,0)
	g.RequestDirection(Up)
	g.Step() // head (1,0)
	g.RequestDirection(Left)
	if res := g.Step(); !res.Ate { // head (0,0)
		t.Fatalf("expected to eat at (0,0), res=%+v", res)
	}
	// (0,1) is the only free cell and holds the new food
	if food, _ := g.Food(); food != (Cell{0, 1}) {
		t.Fatalf("food = %v, want (0,1)", food)
	}
	g.RequestDirection(Down)
	if res := g.Step(); !res.Filled {
		t.Fatalf("expected board full, res=%+v", res)
	}
	if g.Status() != BoardFull {
		t.Fatalf("status = %v", g.Status())
	}

	cfg.Width, cfg.Height, cfg.InitialLength = 4, 1, 4
	g = newTestGame(t, cfg, cornerSource())
	if g.Status() != BoardFull {
		t.Errorf("a snake covering the board at reset should be full, got %v", g.Status())
	}
}

func TestEatingGrowsAndScores(t *testing.T) {
	// food at (14,10): two cells ahead of the head
	src := &fixedSource{vals: []float64{14.5 / 21, 10.5 / 21}}
	g := newTestGame(t, DefaultConfig(), src)
	if food, _ := g.Food(); food != (Cell{14, 10}) {
		t.Fatalf("food = %v, want (14,10)", food)
	}

	g.Step()
	res := g.Step()
	if !res.Ate {
		t.Fatal("expected to eat")
	}
	if g.Score() != CurveScore(0) || g.Eaten() != 1 || g.TargetLength() != 6 || g.Len() != 6 {
		t.Errorf("score=%d eaten=%d target=%d len=%d", g.Score(), g.Eaten(), g.TargetLength(), g.Len())
	}
	food, ok := g.Food()
	if !ok || g.Occupied(food) {
		t.Errorf("new food %v overlaps the snake", food)
	}

	tail := g.Snake()[0]
	g.Step()
	if g.Len() != 6 || g.Snake()[0] == tail {
		t.Errorf("len=%d tail=%v after growth", g.Len(), g.Snake()[0])
	}
}

func TestFlatScoreConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Score = FlatScore(DefaultFlatPoints)
	src := &fixedSource{vals: []float64{13.5 / 21, 10.5 / 21}}
	g := newTestGame(t, cfg, src)
	g.Step()
	if g.Score() != DefaultFlatPoints {
		t.Errorf("score = %d, want %d", g.Score(), DefaultFlatPoints)
	}
}

func TestBoardFullTerminates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.InitialLength = 4, 1, 2
	g := newTestGame(t, cfg, NewSource(11))

	filled := false
	for i := 0; i < 20 && !g.Status().Terminal(); i++ {
		filled = g.Step().Filled || filled
	}
	if !filled || g.Status() != BoardFull {
		t.Fatalf("status = %v after filling, filled=%v", g.Status(), filled)
	}
	if g.Eaten() != g.Grid().Capacity()-cfg.InitialLength {
		t.Errorf("eaten = %d, want %d", g.Eaten(), g.Grid().Capacity()-cfg.InitialLength)
	}
	if g.Len() != g.Grid().Capacity() {
		t.Errorf("len = %d, want %d", g.Len(), g.Grid().Capacity())
	}
	if _, ok := g.Food(); ok {
		t.Error("food reported on a full board")
	}
	if n, _ := g.Advance(time.Second); n != 0 {
		t.Errorf("ticks fired on a full board: %d", n)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), NewSource(5))
	g.RequestDirection(Down)
	g.Advance(time.Second)

	g.Reset()
	first := Project(g)
	g.Reset()
	second := Project(g)

	if !slices.Equal(first.Cells(), second.Cells()) {
		t.Errorf("snake differs: %v vs %v", first.Cells(), second.Cells())
	}
	if first.Score != second.Score || first.Eaten != second.Eaten || first.Status != second.Status ||
		first.Heading != second.Heading {
		t.Errorf("state differs: %+v vs %+v", first, second)
	}
	if g.Elapsed() != 0 || g.Ticks() != 0 || g.TargetLength() != 5 {
		t.Errorf("elapsed=%v ticks=%d target=%d", g.Elapsed(), g.Ticks(), g.TargetLength())
	}
	if _, pending := g.intent.Pending(); pending {
		t.Error("intent survived reset")
	}
	food, _ := g.Food()
	if g.Occupied(food) {
		t.Errorf("food %v overlaps the snake after reset", food)
	}
}

func TestAdvanceRunsDueTicks(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), cornerSource())
	var fired int
	for i := 0; i < 5; i++ {
		n, _ := g.Advance(16 * time.Millisecond)
		fired += n
	}
	if fired != 1 || g.Head() != (Cell{13, 10}) {
		t.Errorf("fired=%d head=%v", fired, g.Head())
	}

	n, res := g.Advance(3 * DefaultTick)
	if n != 3 || !res.Moved {
		t.Errorf("catch-up fired %d, res=%+v", n, res)
	}
}

func TestAdvanceStopsOnGameOver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wrap = false
	g := newTestGame(t, cfg, cornerSource())

	n, res := g.Advance(20 * DefaultTick)
	if n != 9 || !res.Died {
		t.Errorf("fired %d, res=%+v; want 9 with a death", n, res)
	}
	if g.Ticks() != 8 {
		t.Errorf("ticks = %d, want 8 moves before the wall", g.Ticks())
	}
}

func TestConfigForViewport(t *testing.T) {
	tests := []struct {
		w, h          int
		gw, gh, start int
	}{
		{1920, 1080, 41, 41, 8},
		{300, 400, 15, 18, 5},
		{80, 400, 4, 18, 4},
	}
	for _, tt := range tests {
		cfg := ConfigForViewport(tt.w, tt.h)
		if cfg.Width != tt.gw || cfg.Height != tt.gh || cfg.InitialLength != tt.start {
			t.Errorf("viewport %dx%d: %dx%d len %d, want %dx%d len %d",
				tt.w, tt.h, cfg.Width, cfg.Height, cfg.InitialLength, tt.gw, tt.gh, tt.start)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("viewport %dx%d: %v", tt.w, tt.h, err)
		}
	}
}

// scriptedPilot replays a fixed list of headings, then lets the player steer
type scriptedPilot struct {
	moves []Direction
}

func (p *scriptedPilot) Decide(*Game) (Direction, bool) {
	if len(p.moves) == 0 {
		return 0, false
	}
	d := p.moves[0]
	p.moves = p.moves[1:]
	return d, true
}

func TestPilotSteersBeforePlayer(t *testing.T) {
	g := newTestGame(t, DefaultConfig(), cornerSource())
	g.SetPilot(&scriptedPilot{moves: []Direction{Up, Left}})

	g.RequestDirection(Down)
	g.Step()
	if g.Heading() != Up || g.Head() != (Cell{X: 12, Y: 9}) {
		t.Fatalf("after pilot Up: heading %v head %v", g.Heading(), g.Head())
	}
	g.Step()
	if g.Heading() != Left {
		t.Fatalf("after pilot Left: heading %v", g.Heading())
	}

	// pilot is out of moves, player input applies again
	g.RequestDirection(Up)
	g.Step()
	if g.Heading() != Up {
		t.Errorf("heading %v, want player's Up", g.Heading())
	}

	g.SetPilot(nil)
	g.Step()
	if g.Status() != Running || g.Head() != (Cell{X: 11, Y: 7}) {
		t.Errorf("after removing pilot: status %v head %v", g.Status(), g.Head())
	}
}
