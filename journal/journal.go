package journal

import (
	"fmt"
	"sync"
	"time"

	"github.com/viant/gridlock/internal/clock"
)

// DefaultLimit caps retained entries when no explicit limit is configured.
const DefaultLimit = 256

// Entry is a single timestamped audit line.
type Entry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Journal keeps a bounded, append-only list of audit entries. It is safe
// for concurrent use so observers can poll while the engine appends.
type Journal struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
}

// New creates a journal retaining at most limit entries; non-positive limit
// falls back to DefaultLimit.
func New(limit int) *Journal {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Journal{limit: limit}
}

// Appendf formats and appends one entry, evicting the oldest entries once
// the retention limit is exceeded.
func (j *Journal) Appendf(format string, args ...interface{}) {
	entry := Entry{At: clock.Now(), Message: fmt.Sprintf(format, args...)}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	if overflow := len(j.entries) - j.limit; overflow > 0 {
		j.entries = append([]Entry(nil), j.entries[overflow:]...)
	}
}

// Tail returns a copy of the most recent n entries in chronological order.
func (j *Journal) Tail(n int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if n <= 0 || n > len(j.entries) {
		n = len(j.entries)
	}
	ret := make([]Entry, n)
	copy(ret, j.entries[len(j.entries)-n:])
	return ret
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Messages returns the retained entry texts in chronological order.
func (j *Journal) Messages() []string {
	entries := j.Tail(0)
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry.Message)
	}
	return ret
}
