package admin

import (
	"log"
	"net/http"
	"net/url"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
)

// handleLogin renders the sign-in form and exchanges credentials for a
// session. The API token stays server side; the cookie holds the session ID.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.LoginView{Next: safeNext(r.URL.Query().Get(nextParam))}
	render := func(status int) {
		pageCtx := h.pageContext(lang, loc, r, "")
		htmx.RenderPageStatus(w, r,
			templates.LoginPage(view, loc),
			templates.LoginFullPage(view, pageCtx),
			templates.PageTitle(loc.Sprintf("title.login")),
			status,
		)
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if _, err := h.currentSession(r); err == nil {
			htmx.Redirect(w, r, view.Next)
			return
		}
		render(http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		view.Email = fieldValue(r, "email")
		view.Next = safeNext(r.PostFormValue(nextParam))

		result, err := h.api.Login(r.Context(), view.Email, r.PostFormValue("password"))
		if err != nil {
			log.Printf("admin login: %v", err)
			if apperrors.HasCode(err, apperrors.CodeUnauthorized) {
				view.Error = loc.Sprintf("login.invalid")
				render(http.StatusUnauthorized)
				return
			}
			view.Error = errorMessage(loc, err)
			render(apperrors.CodeOf(err).HTTPStatus())
			return
		}
		if !h.roles.Allows(result.Role) {
			view.Error = loc.Sprintf("error.role_not_permitted")
			render(http.StatusForbidden)
			return
		}
		s, err := session.New(result.Token, result.Role, result.Email, result.AdminID, h.now())
		if err != nil {
			view.Error = errorMessage(loc, err)
			render(http.StatusBadGateway)
			return
		}
		if err := h.store.PutSession(r.Context(), s); err != nil {
			log.Printf("store session: %v", err)
			view.Error = loc.Sprintf("error.unexpected")
			render(http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, session.Cookie(s, h.secureCookies))
		htmx.Redirect(w, r, view.Next)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleLogout ends the session and drops every cached list of it.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	if s, ok := session.FromContext(r.Context()); ok {
		h.endSession(r, s.ID)
	}
	http.SetCookie(w, session.ClearCookie(h.secureCookies))
	htmx.Redirect(w, r, routepath.Login)
}

func (h *Handler) handlePassword(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.FormView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("nav.password")},
		ActionURL: routepath.Password,
		CancelURL: routepath.Root,
		Fields: []templates.FormField{
			{Name: "current_password", Label: loc.Sprintf("form.current_password"), Type: templates.InputPassword, Required: true},
			{Name: "new_password", Label: loc.Sprintf("form.new_password"), Type: templates.InputPassword, Required: true, Help: "form.password_rules"},
			{Name: "confirm_password", Label: loc.Sprintf("form.confirm_password"), Type: templates.InputPassword, Required: true},
		},
	}
	switch r.Method {
	case http.MethodGet:
		view.Toast, _ = noticeMessage(loc, r)
		h.renderForm(w, r, loc, lang, "password", view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		next := r.PostFormValue("new_password")
		if next != r.PostFormValue("confirm_password") {
			view.Fields[2].Error = loc.Sprintf("form.password_mismatch")
			h.renderForm(w, r, loc, lang, "password", view, http.StatusUnprocessableEntity)
			return
		}
		s, _ := session.FromContext(r.Context())
		if err := h.api.UpdatePassword(r.Context(), s.Email, r.PostFormValue("current_password"), next); err != nil {
			log.Printf("update password: %v", err)
			h.renderForm(w, r, loc, lang, "password", view, formError(loc, &view, err))
			return
		}
		htmx.Redirect(w, r, withNotice(routepath.Password, "saved"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handlePreferences flips one shell preference and returns to the page it
// was changed on.
func (h *Handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	loc, _ := h.localizer(w, r)
	if !formPost(w, r, loc) {
		return
	}
	s, _ := session.FromContext(r.Context())
	key := preferenceKey(s)
	prefs, err := h.store.GetPreferences(r.Context(), key)
	if err != nil {
		log.Printf("load preferences: %v", err)
		http.Error(w, loc.Sprintf("error.unexpected"), http.StatusInternalServerError)
		return
	}
	if r.PostForm.Has("sidebar") {
		prefs.SidebarCollapsed = !prefs.SidebarCollapsed
	}
	if r.PostForm.Has("dark_mode") {
		prefs.DarkMode = !prefs.DarkMode
	}
	prefs.UpdatedAt = h.now().UTC()
	if err := h.store.PutPreferences(r.Context(), key, prefs); err != nil {
		log.Printf("save preferences: %v", err)
		http.Error(w, loc.Sprintf("error.unexpected"), http.StatusInternalServerError)
		return
	}
	htmx.Redirect(w, r, returnPath(r))
}

// returnPath is the same-origin referring page, or the dashboard.
func returnPath(r *http.Request) string {
	referer := r.Referer()
	if !sameOrigin(referer, r) {
		return routepath.Root
	}
	parsed, err := url.Parse(referer)
	if err != nil {
		return routepath.Root
	}
	return safeNext(parsed.RequestURI())
}
