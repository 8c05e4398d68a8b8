package telegram

import (
	"sync"
	"time"

	"air-trip-planner/internal/submission"
)

// Session is the planning state of one chat.
type Session struct {
	ChatID    int64
	Submitter Submitter
	LastUsed  time.Time
}

// SessionRepository keeps one Submitter per chat so that each chat has its
// own display state and its own in-flight slot.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	newFunc  func() Submitter
	now      func() time.Time
}

// NewSessionRepository creates a repository that builds submitters with
// newFunc on first use.
func NewSessionRepository(newFunc func() Submitter) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[int64]*Session),
		newFunc:  newFunc,
		now:      time.Now,
	}
}

// Get returns the session of a chat, creating it if needed.
func (sr *SessionRepository) Get(chatID int64) *Session {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	s, ok := sr.sessions[chatID]
	if !ok {
		s = &Session{ChatID: chatID, Submitter: sr.newFunc()}
		sr.sessions[chatID] = s
	}
	s.LastUsed = sr.now()
	return s
}

// Len returns the number of live sessions.
func (sr *SessionRepository) Len() int {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return len(sr.sessions)
}

// CleanupExpired drops sessions idle for longer than ttl. Sessions with a
// submission in flight are kept.
func (sr *SessionRepository) CleanupExpired(ttl time.Duration) int {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	cutoff := sr.now().Add(-ttl)
	removed := 0
	for id, s := range sr.sessions {
		if s.LastUsed.Before(cutoff) && s.Submitter.View().Phase != submission.PhaseLoading {
			delete(sr.sessions, id)
			removed++
		}
	}
	return removed
}
