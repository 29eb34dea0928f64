package admin

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/text/message"
)

func userFormFields(loc *message.Printer, create bool) []templates.FormField {
	password := templates.FormField{Name: "password", Label: loc.Sprintf("form.password"), Type: templates.InputPassword, Required: create}
	if !create {
		password.Help = "form.password_keep"
	}
	return []templates.FormField{
		{Name: "full_name", Label: loc.Sprintf("column.name"), Required: create},
		{Name: "username", Label: loc.Sprintf("column.username")},
		{Name: "email", Label: loc.Sprintf("column.email"), Type: templates.InputEmail, Required: create},
		{Name: "phone", Label: loc.Sprintf("column.phone")},
		password,
		{Name: "role", Label: loc.Sprintf("column.role"), Type: templates.InputSelect, Options: options(loc,
			"user", "option.role_user",
			"creator", "option.role_creator",
			"admin", "option.role_admin",
		)},
		{Name: "status", Label: loc.Sprintf("column.status"), Type: templates.InputSelect, Options: options(loc,
			"active", "option.active",
			"inactive", "option.inactive",
			"banned", "option.banned",
		)},
		{Name: "coins", Label: loc.Sprintf("column.coins"), Type: templates.InputNumber},
	}
}

// parseUserInput reads the user form. A malformed coin amount fails before
// any request is sent.
func parseUserInput(r *http.Request) (api.UserInput, error) {
	in := api.UserInput{
		FullName: fieldValue(r, "full_name"),
		Username: fieldValue(r, "username"),
		Email:    fieldValue(r, "email"),
		Phone:    fieldValue(r, "phone"),
		Password: r.PostFormValue("password"),
		Role:     fieldValue(r, "role"),
		Status:   fieldValue(r, "status"),
	}
	if raw := fieldValue(r, "coins"); raw != "" {
		coins, err := api.ParseAmount("coins", raw)
		if err != nil {
			return in, err
		}
		in.Coins = &coins
	}
	return in, nil
}

func (h *Handler) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.FormView{
		Heading: templates.PageHeading{
			Title:       loc.Sprintf("title.user_new"),
			Breadcrumbs: []templates.Breadcrumb{{Label: loc.Sprintf("nav.users"), URL: routepath.Users}},
		},
		ActionURL: routepath.New(routepath.Users),
		CancelURL: routepath.Users,
		Submit:    loc.Sprintf("action.create"),
		Fields:    userFormFields(loc, true),
	}
	switch r.Method {
	case http.MethodGet:
		view.Fields[5].Value = "user"
		view.Fields[6].Value = "active"
		h.renderForm(w, r, loc, lang, usersKey, view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		in, err := parseUserInput(r)
		if err == nil {
			var user api.User
			var ok bool
			user, ok, err = h.api.CreateUser(r.Context(), in)
			if err == nil {
				st := h.lists.users.state(r)
				if ok {
					st.coll.Upsert(user)
				}
				st.coll.MarkStale()
				htmx.Redirect(w, r, withNotice(routepath.Users, "created"))
				return
			}
		}
		h.renderForm(w, r, loc, lang, usersKey, view, formError(loc, &view, err))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) handleUserEdit(w http.ResponseWriter, r *http.Request, id string) {
	loc, lang := h.localizer(w, r)
	page := h.lists.users
	st := page.state(r)
	view := templates.FormView{
		Heading: templates.PageHeading{
			Title: loc.Sprintf("title.user_edit"),
			Breadcrumbs: []templates.Breadcrumb{
				{Label: loc.Sprintf("nav.users"), URL: routepath.Users},
				{Label: id, URL: routepath.Detail(routepath.Users, id)},
			},
		},
		ActionURL: routepath.Edit(routepath.Users, id),
		CancelURL: routepath.Detail(routepath.Users, id),
		Fields:    userFormFields(loc, false),
	}
	switch r.Method {
	case http.MethodGet:
		user, found, err := page.find(r.Context(), st, id)
		switch {
		case err != nil:
			view.Error = errorMessage(loc, err)
			h.renderForm(w, r, loc, lang, usersKey, view, http.StatusBadGateway)
			return
		case !found:
			view.Error = loc.Sprintf("detail.not_found")
			h.renderForm(w, r, loc, lang, usersKey, view, http.StatusNotFound)
			return
		}
		for i, value := range []string{user.FullName, user.Username, user.Email, user.Phone, "", user.Role, user.Status, formatNumber(user.Coins)} {
			view.Fields[i].Value = value
		}
		h.renderForm(w, r, loc, lang, usersKey, view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		in, err := parseUserInput(r)
		if err == nil {
			var user api.User
			var ok bool
			user, ok, err = h.api.UpdateUser(r.Context(), id, in)
			if err == nil {
				if ok {
					st.coll.Upsert(user)
				}
				st.coll.MarkStale()
				htmx.Redirect(w, r, withNotice(routepath.Users, "updated"))
				return
			}
		}
		h.renderForm(w, r, loc, lang, usersKey, view, formError(loc, &view, err))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}
