package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	"github.com/louisbranch/socialadmin/internal/services/admin/storage"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
)

// nextParam carries the page to return to after sign-in.
const nextParam = "next"

// requireSession wraps next with the session gate. Requests without an
// active session for a permitted role are sent to the login page.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAuthExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		s, err := h.currentSession(r)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		case apperrors.HasCode(err, apperrors.CodeRoleNotPermitted):
			loc, _ := h.localizer(w, r)
			http.Error(w, loc.Sprintf("error.role_not_permitted"), http.StatusForbidden)
		default:
			if !errors.Is(err, storage.ErrNotFound) && !apperrors.HasCode(err, apperrors.CodeSessionExpired) {
				log.Printf("admin auth: %v", err)
			}
			http.SetCookie(w, session.ClearCookie(h.secureCookies))
			htmx.Redirect(w, r, loginURL(r))
		}
	})
}

// currentSession loads and checks the session referenced by the request.
// Expired sessions are removed from the store.
func (h *Handler) currentSession(r *http.Request) (session.Session, error) {
	id, ok := session.IDFromRequest(r)
	if !ok {
		return session.Session{}, storage.ErrNotFound
	}
	s, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		return session.Session{}, err
	}
	if err := h.roles.Check(s, h.now()); err != nil {
		if apperrors.HasCode(err, apperrors.CodeSessionExpired) {
			h.endSession(r, id)
		}
		return session.Session{}, err
	}
	return s, nil
}

func (h *Handler) endSession(r *http.Request, id string) {
	if err := h.store.DeleteSession(r.Context(), id); err != nil {
		log.Printf("delete session: %v", err)
	}
	h.views.dropSession(id)
}

// isAuthExempt returns true for paths that should bypass authentication.
func isAuthExempt(path string) bool {
	return path == routepath.Login ||
		path == routepath.Health ||
		strings.HasPrefix(path, routepath.StaticPrefix)
}

// loginURL returns the login page remembering the requested page. Partial
// requests remember the page the browser shows instead.
func loginURL(r *http.Request) string {
	target := r.URL.RequestURI()
	if htmx.IsHTMXRequest(r) {
		if current := r.Header.Get("HX-Current-URL"); current != "" {
			if parsed, err := url.Parse(current); err == nil {
				target = parsed.RequestURI()
			}
		}
	}
	if safeNext(target) == routepath.Root {
		return routepath.Login
	}
	return templates.AppendQueryParam(routepath.Login, nextParam, target)
}

// safeNext limits post-login redirects to local paths.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return routepath.Root
	}
	if next == routepath.Login || strings.HasPrefix(next, routepath.Login+"?") {
		return routepath.Root
	}
	return next
}
