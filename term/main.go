package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
)

const (
	frameInterval    = 16 * time.Millisecond // ~60 FPS
	logFileName      = "gridsnake.log"
	demoRestartDelay = 2 * time.Second
)

type options struct {
	width, height int
	length        int
	tick          time.Duration
	flat          int
	walls         bool
	seed          uint64
	demo          bool
	debug         bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("gridsnake", flag.ContinueOnError)
	fs.IntVar(&o.width, "w", game.DefaultWidth, "board width in cells")
	fs.IntVar(&o.height, "h", game.DefaultHeight, "board height in cells")
	fs.IntVar(&o.length, "len", game.DefaultInitialLength, "initial snake length")
	fs.DurationVar(&o.tick, "tick", game.DefaultTick, "time per move")
	fs.IntVar(&o.flat, "flat", 0, "flat points per food (0 = difficulty curve)")
	fs.BoolVar(&o.walls, "walls", false, "die at the board edge instead of wrapping")
	fs.Uint64Var(&o.seed, "seed", 0, "food placement seed (0 = time based)")
	fs.BoolVar(&o.demo, "demo", false, "let the autopilot play")
	fs.BoolVar(&o.debug, "debug", false, "write a debug log to "+logFileName)
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.flat < 0 {
		return o, errors.New("-flat must not be negative")
	}
	return o, nil
}

func (o options) gameConfig() game.Config {
	cfg := game.Config{
		Width:         o.width,
		Height:        o.height,
		InitialLength: o.length,
		Tick:          o.tick,
		Wrap:          !o.walls,
		Score:         game.CurveScore,
		MaxCatchUp:    8,
	}
	if o.flat > 0 {
		cfg.Score = game.FlatScore(o.flat)
	}
	return cfg
}

// setupLogging sends log output to a file when debug is on and drops it
// otherwise, since tcell owns the terminal
func setupLogging(debug bool) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

func newGame(o options) (*game.Game, error) {
	src := game.NewTimeSource()
	if o.seed != 0 {
		src = game.NewSource(o.seed)
	}
	g, err := game.New(o.gameConfig(), src)
	if err != nil {
		return nil, err
	}
	if o.demo {
		g.SetPilot(game.NewAutopilot(game.NewSource(o.seed + 1)))
	}
	return g, nil
}

func run(screen tcell.Screen, host *Host) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !host.HandleEvent(ev) {
				close(quit)
				return
			}
		case now := <-ticker.C:
			host.Frame(now)
		}
	}
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logFile, err := setupLogging(o.debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	g, err := newGame(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid board: %v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	host := NewHost(screen, g, time.Now())
	if o.demo {
		host.restartAfter = demoRestartDelay
	}
	log.Printf("started %dx%d len %d tick %s wrap %t", o.width, o.height, o.length, o.tick, !o.walls)
	run(screen, host)
}
