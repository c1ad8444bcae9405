package main

import (
	"sort"
	"sync"
)

// World holds every live session, keyed by connection ID
type World struct {
	mu       sync.RWMutex
	Sessions map[string]*Session
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Sessions: make(map[string]*Session),
	}
}

// AddSession registers s, replacing any earlier session for the same connection
func (w *World) AddSession(s *Session) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Sessions[s.ID] = s
}

// RemoveSession drops a session
func (w *World) RemoveSession(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.Sessions, id)
}

// Session looks up the session owned by a connection
func (w *World) Session(id string) (*Session, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.Sessions[id]
	return s, ok
}

// Count returns the number of sessions
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.Sessions)
}

// Leaderboard returns the top sessions sorted by score, highest first.
// Finished games keep their place until the player restarts.
func (w *World) Leaderboard() []LeaderboardEntry {
	w.mu.RLock()
	sessions := make([]*Session, 0, len(w.Sessions))
	for _, s := range w.Sessions {
		sessions = append(sessions, s)
	}
	w.mu.RUnlock()

	entries := make([]LeaderboardEntry, 0, len(sessions))
	for _, s := range sessions {
		score, _ := s.Score()
		entries = append(entries, LeaderboardEntry{ID: s.ID, Name: s.Name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ID < entries[j].ID
	})
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}
