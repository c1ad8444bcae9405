package main

import (
	"context"
	"log"
	"time"
)

// GameLoop is the frame driver: once per frame it hands every session the
// wall-clock time elapsed since its previous frame and pushes the resulting
// state to the owning connection. All simulation happens on this goroutine.
type GameLoop struct {
	world *World
	conns *ConnManager
	codec Codec
	frame uint64 // total frames elapsed, used for leaderboard timing
}

// NewGameLoop creates a game loop bound to world and conn manager
func NewGameLoop(world *World, conns *ConnManager, codec Codec) *GameLoop {
	return &GameLoop{
		world: world,
		conns: conns,
		codec: codec,
	}
}

// Run drives frames at FrameRate until ctx is cancelled
func (gl *GameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()
	log.Printf("game loop started at %d frames/sec", FrameRate)

	for {
		select {
		case <-ctx.Done():
			log.Printf("game loop stopped after %d frames", gl.frame)
			return
		case now := <-ticker.C:
			gl.tick(now)
		}
	}
}

// tick executes a single frame
func (gl *GameLoop) tick(now time.Time) {
	gl.frame++

	for _, c := range gl.conns.Snapshot() {
		session, ok := gl.world.Session(c.ID)
		if !ok {
			continue // connected but not joined yet
		}

		state, changed := session.Advance(now)
		if !changed {
			continue
		}
		if len(state.Events) > 0 && state.Status != "running" {
			log.Printf("session %s (%s) ended: %s %s, score %d, eaten %d",
				session.ID, session.Name, state.Status, state.Cause, state.Score, state.Eaten)
		}
		if err := c.SendFrame(gl.codec, state); err != nil {
			log.Printf("send error to %s: %v", c.ID, err)
		}
	}

	if gl.frame%LeaderboardEvery == 0 {
		gl.broadcastLeaderboard()
	}
}

// broadcastLeaderboard sends the top scores to every connection
func (gl *GameLoop) broadcastLeaderboard() {
	if gl.world.Count() == 0 {
		return
	}
	msg := LeaderboardMsg{Type: MsgLeaderboard, Entries: gl.world.Leaderboard()}
	for _, c := range gl.conns.Snapshot() {
		if err := c.Send(msg); err != nil {
			log.Printf("leaderboard send error to %s: %v", c.ID, err)
		}
	}
}
