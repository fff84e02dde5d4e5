// Package history keeps a bounded, in-memory record of deployment attempts
// per user. Nothing survives a restart.
package history

import (
	"sync"
	"time"

	"github.com/ashureev/forgebot/internal/domain"
)

// maxEntries caps the per-user list; recording beyond it evicts the oldest.
const maxEntries = 12

// Status marks a deployment attempt outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Entry is one recorded deployment attempt.
type Entry struct {
	Time     time.Time
	Category domain.Category
	Status   Status
	Summary  string
}

// Ledger owns the per-user attempt lists.
type Ledger struct {
	mu      sync.RWMutex
	entries map[int64][]Entry
	total   int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[int64][]Entry)}
}

// Record prepends an entry to the user's list and truncates it to the most
// recent entries.
func (l *Ledger) Record(userID int64, e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.entries[userID]
	next := make([]Entry, 0, len(prev)+1)
	next = append(next, e)
	next = append(next, prev...)
	if len(next) > maxEntries {
		next = next[:maxEntries]
	}
	l.entries[userID] = next
	l.total++
}

// Total returns the number of attempts recorded since startup, across all
// users and including evicted entries.
func (l *Ledger) Total() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// List returns a copy of the user's entries, newest first. A user with no
// history gets an empty slice.
func (l *Ledger) List(userID int64) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stored := l.entries[userID]
	out := make([]Entry, len(stored))
	copy(out, stored)
	return out
}
