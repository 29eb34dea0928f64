package admin

import (
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/socialadmin/internal/platform/timeouts"
)

// viewStateCleanupInterval controls how often idle entries are purged.
const viewStateCleanupInterval = 5 * time.Minute

// viewStateStore keeps per-(session, page) list state in memory. Entries
// expire after timeouts.ViewState without access.
type viewStateStore struct {
	mu          sync.Mutex
	entries     map[string]*viewStateEntry
	lastCleanup time.Time
	now         func() time.Time
}

type viewStateEntry struct {
	value     any
	expiresAt time.Time
}

func newViewStateStore(now func() time.Time) *viewStateStore {
	if now == nil {
		now = time.Now
	}
	return &viewStateStore{entries: map[string]*viewStateEntry{}, now: now}
}

func viewStateKey(sessionID, page string) string {
	return sessionID + "|" + page
}

// load returns the entry for key, creating it with create when absent or
// expired. Access extends the entry's lifetime.
func (s *viewStateStore) load(key string, create func() any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &viewStateEntry{value: create()}
		s.entries[key] = entry
	}
	entry.expiresAt = now.Add(timeouts.ViewState)
	return entry.value
}

// peek returns a live entry without creating or extending it.
func (s *viewStateStore) peek(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// dropSession forgets every page state of a signed-out session.
func (s *viewStateStore) dropSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := sessionID + "|"
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

func (s *viewStateStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *viewStateStore) cleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < viewStateCleanupInterval {
		return
	}
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.lastCleanup = now
}
