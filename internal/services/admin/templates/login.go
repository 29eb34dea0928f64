package templates

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// LoginView provides data for the sign-in form.
type LoginView struct {
	Email string
	Next  string
	Error string
}

// LoginPage renders the sign-in card.
func LoginPage(view LoginView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="login card"><h1>`)
		h.text(AppName())
		h.raw("</h1><p>")
		h.text(T(loc, "login.subtitle"))
		h.raw("</p>")
		h.render(ErrorBanner(view.Error, "", ""))
		h.raw(`<form method="post"`)
		h.href("action", routepath.Login)
		h.raw(`><input type="hidden" name="next"`)
		h.attr("value", view.Next)
		h.raw(">")
		formField(h, FormField{Name: "email", Label: T(loc, "login.email"), Type: InputEmail, Value: view.Email, Required: true}, loc)
		formField(h, FormField{Name: "password", Label: T(loc, "login.password"), Type: InputPassword, Required: true}, loc)
		h.raw(`<button type="submit" class="btn btn-primary btn-block">`)
		h.text(T(loc, "login.submit"))
		h.raw("</button></form></div>")
	})
}

// LoginFullPage renders the sign-in page without navigation.
func LoginFullPage(view LoginView, page PageContext) templ.Component {
	return Bare(page, T(page.Loc, "title.login"), LoginPage(view, page.Loc))
}
