package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/socialadmin/internal/services/admin/session"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// SessionStore persists signed-in admin sessions.
type SessionStore interface {
	PutSession(ctx context.Context, s session.Session) error
	// GetSession returns ErrNotFound for unknown IDs.
	GetSession(ctx context.Context, id string) (session.Session, error)
	DeleteSession(ctx context.Context, id string) error
	// DeleteExpiredSessions removes sessions that expired before now and
	// reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Preferences are per-admin UI settings.
type Preferences struct {
	DarkMode         bool
	SidebarCollapsed bool
	UpdatedAt        time.Time
}

// PreferenceStore persists UI preferences keyed by admin identity.
type PreferenceStore interface {
	// GetPreferences returns zero preferences for unknown admins.
	GetPreferences(ctx context.Context, adminKey string) (Preferences, error)
	PutPreferences(ctx context.Context, adminKey string, prefs Preferences) error
}

// Store is a composite interface for admin storage concerns.
type Store interface {
	SessionStore
	PreferenceStore
	Close() error
}
