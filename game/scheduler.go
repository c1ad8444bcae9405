package game

import "time"

// Scheduler turns variable frame deltas into a whole number of fixed-length
// ticks. Leftover time carries into the next frame.
type Scheduler struct {
	tick       time.Duration
	elapsed    time.Duration
	maxCatchUp int
}

// NewScheduler creates a scheduler firing once per tick. maxCatchUp caps the
// steps fired by a single Advance; 0 means no cap.
func NewScheduler(tick time.Duration, maxCatchUp int) *Scheduler {
	return &Scheduler{tick: tick, maxCatchUp: maxCatchUp}
}

// Advance adds delta and fires step for every full tick accumulated. step
// returns false to stop early, e.g. when the game ends mid-frame; the tick
// that ended it is still consumed. When the catch-up cap is hit the
// remaining backlog is dropped so a long stall does not replay in a burst.
func (s *Scheduler) Advance(delta time.Duration, step func() bool) int {
	if delta < 0 {
		delta = 0
	}
	s.elapsed += delta

	fired := 0
	for s.elapsed >= s.tick {
		if s.maxCatchUp > 0 && fired >= s.maxCatchUp {
			s.elapsed %= s.tick
			break
		}
		s.elapsed -= s.tick
		fired++
		if !step() {
			break
		}
	}
	return fired
}

// Elapsed is the time carried toward the next tick
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// Tick is the fixed step length
func (s *Scheduler) Tick() time.Duration {
	return s.tick
}

// Reset discards any carried time
func (s *Scheduler) Reset() {
	s.elapsed = 0
}
