// Package session models the signed-in admin as a typed value built once at
// login, carried through request contexts, and torn down on logout.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/platform/requestctx"
)

// DefaultTTL applies when the API token carries no usable exp claim.
const DefaultTTL = 24 * time.Hour

// CookieName holds the opaque session ID, never the API token.
const CookieName = "social_admin_session"

// Session is one signed-in admin.
type Session struct {
	ID        string
	Token     string
	Role      string
	Email     string
	AdminID   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// New builds a session from a login grant. The token is parsed without
// verification, only to read its expiry; the API verifies it on every call.
func New(token, role, email, adminID string, now time.Time) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, apperrors.New(apperrors.CodeValidation, "session token is required")
	}
	now = now.UTC()
	expiresAt := now.Add(DefaultTTL)
	if exp, ok := tokenExpiry(token); ok {
		if !exp.After(now) {
			return Session{}, apperrors.New(apperrors.CodeSessionExpired, "token already expired")
		}
		expiresAt = exp
	}
	return Session{
		ID:        uuid.NewString(),
		Token:     token,
		Role:      strings.ToLower(strings.TrimSpace(role)),
		Email:     strings.TrimSpace(email),
		AdminID:   strings.TrimSpace(adminID),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.UTC(), true
}

// Active reports whether the session is usable at now.
func (s Session) Active(now time.Time) bool {
	return s.ID != "" && s.Token != "" && now.Before(s.ExpiresAt)
}

// Roles is the set of roles allowed into the console.
type Roles map[string]struct{}

// ParseRoles reads a comma separated role list; blanks are ignored.
func ParseRoles(raw string) Roles {
	roles := Roles{}
	for _, part := range strings.Split(raw, ",") {
		if role := strings.ToLower(strings.TrimSpace(part)); role != "" {
			roles[role] = struct{}{}
		}
	}
	return roles
}

// Allows reports whether role may use the console.
func (r Roles) Allows(role string) bool {
	_, ok := r[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// Check validates a session against the clock and the allowed roles.
func (r Roles) Check(s Session, now time.Time) error {
	if !s.Active(now) {
		return apperrors.New(apperrors.CodeSessionExpired, "session expired")
	}
	if !r.Allows(s.Role) {
		return apperrors.WithMetadata(apperrors.CodeRoleNotPermitted, "role not permitted", map[string]string{"role": s.Role})
	}
	return nil
}

// Cookie returns the cookie that references s.
func Cookie(s Session, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns a cookie that removes the session reference.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// IDFromRequest returns the session ID referenced by the request cookie.
func IDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(cookie.Value)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

type contextKey struct{}

// WithSession attaches s to ctx, along with the token and admin ID the API
// client reads.
func WithSession(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, s)
	ctx = requestctx.WithToken(ctx, s.Token)
	return requestctx.WithUserID(ctx, s.AdminID)
}

// FromContext returns the session attached to ctx.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
