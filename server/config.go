package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gridsnake/game"
)

// Server configuration constants
const (
	// Server
	ServerPort    = ":8080"
	StaticDir     = "client"
	WebSocketPath = "/ws"
	SoundPath     = "/sfx/"

	// Frame driver: state is advanced and pushed at this rate
	FrameRate = 60 // frames per second
	// MaxCatchUp caps simulation ticks fired in one frame after a stall
	MaxCatchUp = 8

	// Limits
	MaxPlayers    = 64
	IPCooldownSec = 3 // seconds between connections from one IP

	// Viewport assumed when a client joins without reporting one
	DefaultViewportW = 840
	DefaultViewportH = 880

	// Leaderboard
	LeaderboardSize  = 10
	LeaderboardEvery = FrameRate // frames between leaderboard pushes (~1 sec)

	// Demo (autopilot) sessions restart on their own after this long
	DemoRestartDelay = 2 * time.Second

	// Score models accepted by SNAKE_SCORE
	ScoreCurve = "curve"
	ScoreFlat  = "flat"
)

// Config holds settings resolved from the environment at startup
type Config struct {
	Addr       string
	StaticDir  string
	Tick       time.Duration
	Score      string
	FlatPoints int
	Wrap       bool
	Codec      string
	MaxPlayers int
}

// LoadConfig resolves the server config, letting SNAKE_* variables override
// the defaults. getenv is os.Getenv outside of tests.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:       ServerPort,
		StaticDir:  StaticDir,
		Tick:       game.DefaultTick,
		Score:      ScoreCurve,
		FlatPoints: game.DefaultFlatPoints,
		Wrap:       true,
		Codec:      CodecJSON,
		MaxPlayers: MaxPlayers,
	}

	if v := getenv("SNAKE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("SNAKE_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := getenv("SNAKE_TICK_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return cfg, fmt.Errorf("SNAKE_TICK_MS=%q: want a positive integer", v)
		}
		cfg.Tick = time.Duration(ms) * time.Millisecond
	}
	if v := getenv("SNAKE_SCORE"); v != "" {
		v = strings.ToLower(v)
		if v != ScoreCurve && v != ScoreFlat {
			return cfg, fmt.Errorf("SNAKE_SCORE=%q: want %q or %q", v, ScoreCurve, ScoreFlat)
		}
		cfg.Score = v
	}
	if v := getenv("SNAKE_FLAT_POINTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("SNAKE_FLAT_POINTS=%q: want a positive integer", v)
		}
		cfg.FlatPoints = n
	}
	if v := getenv("SNAKE_WRAP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("SNAKE_WRAP=%q: %w", v, err)
		}
		cfg.Wrap = b
	}
	if v := getenv("SNAKE_CODEC"); v != "" {
		if _, err := CodecByName(v); err != nil {
			return cfg, err
		}
		cfg.Codec = strings.ToLower(v)
	}
	if v := getenv("SNAKE_MAX_PLAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("SNAKE_MAX_PLAYERS=%q: want a positive integer", v)
		}
		cfg.MaxPlayers = n
	}
	return cfg, nil
}

// GameConfig sizes a board for a client viewport and applies the server-wide
// tick, score model and edge behaviour
func (c Config) GameConfig(viewW, viewH int) game.Config {
	if viewW <= 0 || viewH <= 0 {
		viewW, viewH = DefaultViewportW, DefaultViewportH
	}
	gc := game.ConfigForViewport(viewW, viewH)
	gc.Tick = c.Tick
	gc.Wrap = c.Wrap
	gc.MaxCatchUp = MaxCatchUp
	if c.Score == ScoreFlat {
		gc.Score = game.FlatScore(c.FlatPoints)
	} else {
		gc.Score = game.CurveScore
	}
	return gc
}

// Player colors palette
var PlayerColors = []string{
	"#84dccf", "#e74c3c", "#3498db", "#2ecc71", "#f39c12",
	"#9b59b6", "#1abc9c", "#e67e22", "#e91e63", "#00bcd4",
}
