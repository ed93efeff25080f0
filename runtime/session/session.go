package session

import (
	"sync"
	"time"

	"github.com/viant/gridlock/internal/clock"
	"github.com/viant/gridlock/journal"
	"github.com/viant/gridlock/model"
)

// Session lifecycle state constants. A session starts active and reaches
// exactly one terminal state.
const (
	StateActive     = "active"
	StateCompleted  = "completed"  // every process finished
	StateDeadlocked = "deadlocked" // detection found no reduction order
	StateExhausted  = "exhausted"  // move budget spent before completion
)

// Session is one playable run of a level. It exclusively owns its Level
// (and transitively the pool and process records) for its lifetime; the
// presentation layer only observes snapshots and issues commands through
// the runtime.
type Session struct {
	ID         string       `json:"id"`
	Level      *model.Level `json:"level"`
	State      string       `json:"state"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	FinishedAt *time.Time   `json:"finishedAt,omitempty"`

	journal *journal.Journal
	mu      sync.RWMutex
}

// New creates an active session owning the supplied level. journalLimit
// bounds audit-log retention (<=0 uses the journal default).
func New(id string, level *model.Level, journalLimit int) *Session {
	now := clock.Now()
	return &Session{
		ID:        id,
		Level:     level,
		State:     StateActive,
		CreatedAt: now,
		UpdatedAt: now,
		journal:   journal.New(journalLimit),
	}
}

// Journal returns the session's audit log.
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

// GetState returns the lifecycle state.
func (s *Session) GetState() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State
}

// Active reports whether the session has not reached a terminal state.
func (s *Session) Active() bool {
	return s.GetState() == StateActive
}

// SetState updates the lifecycle state, stamping FinishedAt on terminal
// transitions.
func (s *Session) SetState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = state
	switch state {
	case StateCompleted, StateDeadlocked, StateExhausted:
		now := clock.Now()
		s.FinishedAt = &now
	}
	s.UpdatedAt = clock.Now()
}

// Touch stamps the session as mutated.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdatedAt = clock.Now()
}

// CopyFrom overwrites this session's content with o's. Used by stores that
// keep a canonical instance per ID.
func (s *Session) CopyFrom(o *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Level = o.Level
	s.State = o.State
	s.CreatedAt = o.CreatedAt
	s.UpdatedAt = o.UpdatedAt
	s.FinishedAt = o.FinishedAt
	s.journal = o.journal
}
