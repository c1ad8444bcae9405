package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gridsnake/game"
)

// ErrBadDirection is returned for input messages with an unknown direction
var ErrBadDirection = errors.New("unknown direction")

// Session is one player's game. Input arrives on the connection's read
// goroutine and frames are driven by the game loop, so every access to the
// game goes through mu.
type Session struct {
	ID    string
	Name  string
	Color string

	mu        sync.Mutex
	game      *game.Game
	demo      bool
	lastFrame time.Time
	endedAt   time.Time
	dirty     bool // push a frame even if no tick fired (join, reset)
}

// NewSession creates a running game. Demo sessions are steered by the
// autopilot and restart themselves after a short pause.
func NewSession(id, name string, cfg game.Config, demo bool, now time.Time) (*Session, error) {
	g, err := game.New(cfg, game.NewTimeSource())
	if err != nil {
		return nil, fmt.Errorf("new session %s: %w", id, err)
	}
	if demo {
		g.SetPilot(game.NewAutopilot(game.NewTimeSource()))
	}
	if name == "" {
		name = "Player"
	}
	return &Session{
		ID:        id,
		Name:      name,
		Color:     randomColor(),
		game:      g,
		demo:      demo,
		lastFrame: now,
		dirty:     true,
	}, nil
}

// HandleInput applies one client message. While the game is over any input
// restarts it, so "press any key" works for keys and taps alike.
func (s *Session) HandleInput(msg ClientMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Status().Terminal() {
		s.reset()
		return nil
	}

	switch msg.Type {
	case MsgInput:
		d, ok := game.ParseDirection(msg.Dir)
		if !ok {
			return fmt.Errorf("%w %q", ErrBadDirection, msg.Dir)
		}
		s.game.RequestDirection(d)
	case MsgPointer:
		s.game.RequestPointer(game.Pointer{X: msg.X, Y: msg.Y, ViewW: msg.W, ViewH: msg.H})
	}
	return nil
}

// reset restarts the game; caller must hold mu
func (s *Session) reset() {
	s.game.Reset()
	s.endedAt = time.Time{}
	s.dirty = true
}

// Advance runs the game up to now. It returns a state frame and true when
// anything visible changed since the previous frame.
func (s *Session) Advance(now time.Time) (StateMsg, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta := now.Sub(s.lastFrame)
	s.lastFrame = now

	if s.demo && !s.endedAt.IsZero() && now.Sub(s.endedAt) >= DemoRestartDelay {
		s.reset()
	}

	n, res := s.game.Advance(delta)
	if res.Died || res.Filled {
		s.endedAt = now
	}
	if n == 0 && !s.dirty {
		return StateMsg{}, false
	}
	s.dirty = false
	return newStateMsg(game.Project(s.game), res), true
}

// State returns the current frame without advancing
func (s *Session) State() StateMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newStateMsg(game.Project(s.game), game.StepResult{})
}

// Welcome describes the board to the client
func (s *Session) Welcome(codec string) WelcomeMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.game.Config()
	wrap := 0
	if cfg.Wrap {
		wrap = 1
	}
	return WelcomeMsg{
		Type:   MsgWelcome,
		ID:     s.ID,
		Width:  cfg.Width,
		Height: cfg.Height,
		TickMS: int(cfg.Tick / time.Millisecond),
		Wrap:   wrap,
		Codec:  codec,
		Color:  s.Color,
	}
}

// Score returns the current score and whether the game is still running
func (s *Session) Score() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Score(), !s.game.Status().Terminal()
}
