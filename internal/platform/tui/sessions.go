package tui

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// SessionInfo describes a connected SSH session.
type SessionInfo struct {
	ID        string
	User      string
	Remote    string
	StartedAt time.Time
	Level     string // level being played, empty in the menu
}

// Sessions tracks the connected SSH sessions. Safe for concurrent use.
type Sessions struct {
	mutex    deadlock.RWMutex
	sessions map[string]*SessionInfo
}

// NewSessions creates an empty tracker.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*SessionInfo)}
}

// Add registers a session and returns its id.
func (s *Sessions) Add(user, remote string) string {
	id := uuid.NewString()
	s.mutex.Lock()
	s.sessions[id] = &SessionInfo{
		ID:        id,
		User:      user,
		Remote:    remote,
		StartedAt: time.Now(),
	}
	s.mutex.Unlock()
	return id
}

// Remove forgets a session. Unknown ids are ignored.
func (s *Sessions) Remove(id string) {
	s.mutex.Lock()
	delete(s.sessions, id)
	s.mutex.Unlock()
}

// SetLevel records the level a session is playing.
func (s *Sessions) SetLevel(id, level string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if info, ok := s.sessions[id]; ok {
		info.Level = level
	}
}

// Len returns the number of connected sessions.
func (s *Sessions) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// List returns a copy of the sessions, oldest first.
func (s *Sessions) List() []SessionInfo {
	s.mutex.RLock()
	out := make([]SessionInfo, 0, len(s.sessions))
	for _, info := range s.sessions {
		out = append(out, *info)
	}
	s.mutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
