package game

import "time"

// Status is the engine state machine
type Status uint8

const (
	Running Status = iota
	// GameOver is reached by hitting the body, or a wall when wrapping is off
	GameOver
	// BoardFull means the snake covers every cell and no food can be placed
	BoardFull
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "over"
	case BoardFull:
		return "full"
	}
	return "unknown"
}

// Terminal reports whether the game has stopped until the next Reset
func (s Status) Terminal() bool {
	return s != Running
}

// Cause records why a game stopped
type Cause uint8

const (
	CauseNone Cause = iota
	CauseSelf
	CauseWall
)

func (c Cause) String() string {
	switch c {
	case CauseSelf:
		return "self"
	case CauseWall:
		return "wall"
	}
	return ""
}

// StepResult summarises what happened during one or more ticks
type StepResult struct {
	Moved  bool
	Ate    bool
	Died   bool
	Filled bool
}

func (r StepResult) merge(o StepResult) StepResult {
	return StepResult{
		Moved:  r.Moved || o.Moved,
		Ate:    r.Ate || o.Ate,
		Died:   r.Died || o.Died,
		Filled: r.Filled || o.Filled,
	}
}

// Pilot chooses a heading before each tick in place of a human player
type Pilot interface {
	Decide(g *Game) (Direction, bool)
}

// Game owns the full simulation state. It is not safe for concurrent use;
// hosts serialise input and Advance themselves.
type Game struct {
	cfg   Config
	grid  Grid
	src   Source
	score ScoreFunc
	sched *Scheduler
	pilot Pilot

	snake   *Snake
	food    Cell
	hasFood bool
	heading Direction
	intent  IntentBuffer

	points int
	eaten  int
	target int
	ticks  uint64
	status Status
	cause  Cause
}

// New validates cfg and returns a freshly reset game. A nil src seeds from the clock.
func New(cfg Config, src Source) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewTimeSource()
	}
	g := &Game{
		cfg:   cfg,
		grid:  cfg.Grid(),
		src:   src,
		score: cfg.scoreFunc(),
		sched: NewScheduler(cfg.Tick, cfg.MaxCatchUp),
	}
	g.snake = newSnake(g.grid)
	g.Reset()
	return g, nil
}

// Reset rebuilds the initial state: a centred snake heading right, fresh
// food, zero score and no carried time
func (g *Game) Reset() {
	length := g.cfg.InitialLength
	start := Cell{X: (g.grid.Width - length) / 2, Y: g.grid.Height / 2}
	g.snake.layout(start, length)

	g.heading = Right
	g.intent.Clear()
	g.sched.Reset()
	g.points = 0
	g.eaten = 0
	g.target = length
	g.ticks = 0
	g.status = Running
	g.cause = CauseNone

	g.food, g.hasFood = spawnFood(g.snake.occ, g.src)
	if !g.hasFood {
		g.status = BoardFull
	}
}

// SetPilot hands steering to p; nil returns control to RequestDirection callers.
// The pilot survives Reset.
func (g *Game) SetPilot(p Pilot) {
	g.pilot = p
}

// RequestDirection queues a heading change for the next tick
func (g *Game) RequestDirection(d Direction) {
	g.intent.RequestDirection(d)
}

// RequestPointer queues a touch-style turn for the next tick
func (g *Game) RequestPointer(p Pointer) {
	g.intent.RequestPointer(p)
}

// Advance feeds delta of wall-clock time to the scheduler and runs every tick
// that falls due. Time does not accumulate once the game is terminal.
func (g *Game) Advance(delta time.Duration) (int, StepResult) {
	if g.status.Terminal() {
		return 0, StepResult{}
	}
	var res StepResult
	n := g.sched.Advance(delta, func() bool {
		res = res.merge(g.Step())
		return !g.status.Terminal()
	})
	return n, res
}

// Step runs exactly one tick
func (g *Game) Step() StepResult {
	if g.status.Terminal() {
		return StepResult{}
	}

	if g.pilot != nil {
		if d, ok := g.pilot.Decide(g); ok {
			g.intent.RequestDirection(d)
		}
	}
	g.heading = g.intent.Resolve(g.heading)
	next := g.snake.Head().Add(g.heading.Offset())
	if !g.grid.Contains(next) {
		if !g.cfg.Wrap {
			g.end(GameOver, CauseWall)
			return StepResult{Died: true}
		}
		next = g.grid.WrapCell(next)
	}

	// the tail that would be dropped this tick still counts
	if g.snake.Contains(next) {
		g.end(GameOver, CauseSelf)
		return StepResult{Died: true}
	}

	ate := g.hasFood && next == g.food
	if ate {
		g.points += g.score(g.eaten)
		g.eaten++
		g.target++
	}

	g.snake.push(next)
	g.snake.truncate(g.target)
	g.ticks++

	res := StepResult{Moved: true, Ate: ate}
	if ate {
		// placed against the post-move body so it cannot land on the new head
		g.food, g.hasFood = spawnFood(g.snake.occ, g.src)
		if !g.hasFood {
			g.end(BoardFull, CauseNone)
			res.Filled = true
		}
	}
	return res
}

func (g *Game) end(s Status, c Cause) {
	g.status = s
	g.cause = c
}

// Snake returns a copy of the body, tail first
func (g *Game) Snake() []Cell { return g.snake.Cells() }

// Head returns the current head cell
func (g *Game) Head() Cell { return g.snake.Head() }

// Len is the current body length
func (g *Game) Len() int { return g.snake.Len() }

// Food returns the food cell. ok is false only on a full board.
func (g *Game) Food() (Cell, bool) { return g.food, g.hasFood }

func (g *Game) Score() int             { return g.points }
func (g *Game) Eaten() int             { return g.eaten }
func (g *Game) TargetLength() int      { return g.target }
func (g *Game) Heading() Direction     { return g.heading }
func (g *Game) Status() Status         { return g.status }
func (g *Game) Cause() Cause           { return g.cause }
func (g *Game) GameOver() bool         { return g.status == GameOver }
func (g *Game) Grid() Grid             { return g.grid }
func (g *Game) Wrap() bool             { return g.cfg.Wrap }
func (g *Game) Config() Config         { return g.cfg }
func (g *Game) Elapsed() time.Duration { return g.sched.Elapsed() }

// Ticks counts moves since the last reset
func (g *Game) Ticks() uint64 { return g.ticks }

// Occupied reports whether the snake covers c
func (g *Game) Occupied(c Cell) bool { return g.snake.Contains(c) }
