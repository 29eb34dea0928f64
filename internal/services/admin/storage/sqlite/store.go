package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/socialadmin/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	"github.com/louisbranch/socialadmin/internal/services/admin/storage"
	"github.com/louisbranch/socialadmin/internal/services/admin/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing admin storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutSession inserts or replaces a session record.
func (s *Store) PutSession(ctx context.Context, sess session.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(sess.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if sess.ExpiresAt.IsZero() {
		return fmt.Errorf("session expiry is required")
	}
	createdAt := sess.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO admin_sessions (session_id, token, role, email, admin_id, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
    token = excluded.token,
    role = excluded.role,
    email = excluded.email,
    admin_id = excluded.admin_id,
    expires_at = excluded.expires_at`,
		sess.ID, sess.Token, sess.Role, sess.Email, sess.AdminID,
		createdAt.UTC().Format(timeFormat), sess.ExpiresAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (session.Session, error) {
	if err := s.ready(ctx); err != nil {
		return session.Session{}, err
	}
	var (
		sess      session.Session
		createdAt string
		expiresAt int64
	)
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT session_id, token, role, email, admin_id, created_at, expires_at
FROM admin_sessions WHERE session_id = ?`, id)
	if err := row.Scan(&sess.ID, &sess.Token, &sess.Role, &sess.Email, &sess.AdminID, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, storage.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}
	parsed, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return session.Session{}, fmt.Errorf("parse session created_at: %w", err)
	}
	sess.CreatedAt = parsed
	sess.ExpiresAt = time.UnixMilli(expiresAt).UTC()
	return sess, nil
}

// DeleteSession removes a session; unknown IDs are not an error.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM admin_sessions WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session that expired at or before now.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM admin_sessions WHERE expires_at <= ?", now.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// GetPreferences loads preferences; unknown admins get the zero value.
func (s *Store) GetPreferences(ctx context.Context, adminKey string) (storage.Preferences, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Preferences{}, err
	}
	var (
		prefs     storage.Preferences
		updatedAt string
	)
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT dark_mode, sidebar_collapsed, updated_at
FROM admin_preferences WHERE admin_key = ?`, adminKey)
	if err := row.Scan(&prefs.DarkMode, &prefs.SidebarCollapsed, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Preferences{}, nil
		}
		return storage.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	if parsed, err := time.Parse(timeFormat, updatedAt); err == nil {
		prefs.UpdatedAt = parsed
	}
	return prefs, nil
}

// PutPreferences stores preferences for adminKey.
func (s *Store) PutPreferences(ctx context.Context, adminKey string, prefs storage.Preferences) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(adminKey) == "" {
		return fmt.Errorf("admin key is required")
	}
	updatedAt := prefs.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO admin_preferences (admin_key, dark_mode, sidebar_collapsed, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(admin_key) DO UPDATE SET
    dark_mode = excluded.dark_mode,
    sidebar_collapsed = excluded.sidebar_collapsed,
    updated_at = excluded.updated_at`,
		adminKey, prefs.DarkMode, prefs.SidebarCollapsed, updatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
