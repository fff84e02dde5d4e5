// Package session tracks the in-progress guided parameter entry for each
// user. Exactly one session exists per user; starting a new flow replaces
// whatever was there (last write wins).
package session

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/ashureev/forgebot/internal/domain"
)

var fieldOrder = map[domain.Category][]string{
	domain.CategoryMetaplex: {"name", "symbol", "tokens", "uri", "network"},
	domain.CategoryEVM:      {"name", "symbol", "decimals", "network"},
}

// Fields returns the ordered required-field sequence for a target category.
func Fields(target domain.Category) []string {
	return fieldOrder[target]
}

// Session is one user's step-cursor state. Step indexes the field currently
// being collected; Complete marks the terminal ready-for-confirmation state.
type Session struct {
	Target    domain.Category
	Step      int
	Complete  bool
	Collected domain.RawParams
}

// Field returns the name of the field the session is currently awaiting.
func (s Session) Field() string {
	fields := fieldOrder[s.Target]
	if s.Step < 0 || s.Step >= len(fields) {
		return ""
	}
	return fields[s.Step]
}

// Store holds one session per user behind a mutex; handler goroutines for
// different users touch it concurrently.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Start begins a custom flow for a user, discarding any existing session.
func (s *Store) Start(userID int64, target domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &Session{Target: target, Collected: domain.RawParams{}}
	slog.Info("Session started", "user_id", userID, "target", target)
}

// Get returns a copy of the user's session, if any.
func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return snapshot(sess), true
}

// Advance stores a text reply into the awaited field and moves the cursor.
// Answering the last field marks the session complete instead of moving the
// cursor past it. The returned snapshot reflects the updated state; ok is
// false when the user has no session or it already completed.
func (s *Store) Advance(userID int64, text string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[userID]
	if !exists || sess.Complete {
		return Session{}, false
	}

	fields := fieldOrder[sess.Target]
	field := fields[sess.Step]
	value := strings.TrimSpace(text)
	if field == "network" {
		value = strings.ToLower(value)
	}
	sess.Collected[field] = value

	if sess.Step == len(fields)-1 {
		sess.Complete = true
	} else {
		sess.Step++
	}
	return snapshot(sess), true
}

// Clear removes the user's session. Clearing a missing session is a no-op.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		slog.Info("Session cleared", "user_id", userID)
	}
}

func snapshot(sess *Session) Session {
	copied := *sess
	copied.Collected = make(domain.RawParams, len(sess.Collected))
	for k, v := range sess.Collected {
		copied.Collected[k] = v
	}
	return copied
}
