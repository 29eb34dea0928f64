package admin

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/i18n"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	"github.com/louisbranch/socialadmin/internal/services/admin/storage"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"golang.org/x/text/message"
)

// Handler routes admin console requests.
type Handler struct {
	api           *api.Client
	store         storage.Store
	roles         session.Roles
	views         *viewStateStore
	lists         listPages
	secureCookies bool
	now           func() time.Time
}

// Options tunes a Handler.
type Options struct {
	// Roles lists the admin roles allowed past the session gate.
	Roles session.Roles
	// SecureCookies marks session cookies Secure.
	SecureCookies bool
	// Now replaces the clock in tests.
	Now func() time.Time
}

// NewHandler builds the HTTP handler for the admin server.
func NewHandler(client *api.Client, store storage.Store, opts Options) http.Handler {
	return newHandler(client, store, opts).routes()
}

func newHandler(client *api.Client, store storage.Store, opts Options) *Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	roles := opts.Roles
	if len(roles) == 0 {
		roles = session.ParseRoles("admin")
	}
	h := &Handler{
		api:           client,
		store:         store,
		roles:         roles,
		views:         newViewStateStore(now),
		secureCookies: opts.SecureCookies,
		now:           now,
	}
	h.lists = newListPages(h)
	return h
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

// pageContext builds the shell context: signed-in admin, stored UI
// preferences and the cached unread count.
func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request, active string) templates.PageContext {
	page := templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
		Active:       active,
	}
	s, ok := session.FromContext(r.Context())
	if !ok {
		return page
	}
	page.AdminEmail = s.Email
	if h.store != nil {
		prefs, err := h.store.GetPreferences(r.Context(), preferenceKey(s))
		if err != nil {
			log.Printf("load preferences: %v", err)
		} else {
			page.DarkMode = prefs.DarkMode
			page.SidebarCollapsed = prefs.SidebarCollapsed
		}
	}
	if count, ok := h.cachedUnread(s.ID); ok {
		page.UnreadCount = count
	}
	return page
}

func preferenceKey(s session.Session) string {
	if s.Email != "" {
		return strings.ToLower(s.Email)
	}
	return s.AdminID
}

// errorMessage maps an API failure onto a localized banner text.
func errorMessage(loc *message.Printer, err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeValidation:
		return loc.Sprintf("error.validation", validationText(err))
	case apperrors.CodeTransport:
		return loc.Sprintf("error.api_unreachable")
	case apperrors.CodeNotFound:
		return loc.Sprintf("error.not_found")
	case apperrors.CodeUnauthorized:
		return loc.Sprintf("error.unauthorized")
	case apperrors.CodeInvalidResponse:
		return loc.Sprintf("error.invalid_response")
	default:
		return loc.Sprintf("error.unexpected")
	}
}

// validationText is the domain error text including its cause, which carries
// the detail for wrapped validation failures.
func validationText(err error) string {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.Error()
	}
	return err.Error()
}

// noticeKeys whitelists the ?notice= values rendered as toasts after a
// redirect.
var noticeKeys = map[string]string{
	"created": "toast.created",
	"updated": "toast.updated",
	"deleted": "toast.deleted",
	"toggled": "toast.toggled",
	"cleared": "toast.cleared",
	"saved":   "toast.saved",
	"failed":  "toast.failed",
}

// noticeMessage returns the toast for the request's notice and whether it
// reports a failure.
func noticeMessage(loc *message.Printer, r *http.Request) (string, bool) {
	notice := r.URL.Query().Get("notice")
	key, ok := noticeKeys[notice]
	if !ok {
		return "", false
	}
	return loc.Sprintf(key), notice == "failed"
}

func withNotice(target, notice string) string {
	return templates.AppendQueryParam(target, "notice", notice)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func requireSameOrigin(w http.ResponseWriter, r *http.Request, loc *message.Printer) bool {
	if r == nil {
		http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
		return false
	}
	source := strings.TrimSpace(r.Header.Get("Origin"))
	if source == "" {
		source = strings.TrimSpace(r.Referer())
	}
	if !sameOrigin(source, r) {
		http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
		return false
	}
	return true
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		first, _, _ := strings.Cut(proto, ",")
		return strings.ToLower(strings.TrimSpace(first))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
