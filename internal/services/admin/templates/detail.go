package templates

import "github.com/a-h/templ"

// DetailView provides data for a single record page.
type DetailView struct {
	Heading PageHeading
	Fields  []DetailField
	// Message replaces the field list, e.g. when the record does not exist.
	Message   string
	Error     string
	RetryURL  string
	EditURL   string
	DeleteURL string
	BackURL   string
}

// DetailField is one labelled value.
type DetailField struct {
	Label string
	Value string
	// Link renders Value as a link when set.
	Link string
}

// DetailPage renders a record detail.
func DetailPage(view DetailView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Heading(view.Heading))
		h.render(ErrorBanner(view.Error, view.RetryURL, T(loc, "list.retry")))
		if view.Message != "" {
			h.render(EmptyState(view.Message))
		} else if len(view.Fields) > 0 {
			h.raw(`<dl class="detail">`)
			for _, field := range view.Fields {
				h.element("dt", "", field.Label)
				h.raw("<dd>")
				if field.Link != "" {
					h.raw("<a")
					h.href("href", field.Link)
					h.raw(">")
					h.text(field.Value)
					h.raw("</a>")
				} else {
					h.text(field.Value)
				}
				h.raw("</dd>")
			}
			h.raw("</dl>")
		}
		h.raw(`<div class="actions">`)
		if view.BackURL != "" {
			h.raw(`<a class="btn btn-ghost"`)
			h.href("href", view.BackURL)
			h.raw(">")
			h.text(T(loc, "action.back"))
			h.raw("</a>")
		}
		if view.EditURL != "" {
			h.raw(`<a class="btn"`)
			h.href("href", view.EditURL)
			h.raw(">")
			h.text(T(loc, "action.edit"))
			h.raw("</a>")
		}
		if view.DeleteURL != "" {
			h.raw(`<a class="btn btn-error"`)
			h.href("href", view.DeleteURL)
			h.raw(">")
			h.text(T(loc, "action.delete"))
			h.raw("</a>")
		}
		h.raw("</div>")
	})
}

// DetailFullPage renders the detail inside the admin shell.
func DetailFullPage(view DetailView, page PageContext) templ.Component {
	return Layout(page, view.Heading.Title, DetailPage(view, page.Loc))
}

// ConfirmView asks before a destructive request is sent.
type ConfirmView struct {
	Heading   PageHeading
	Message   string
	ActionURL string
	CancelURL string
	Error     string
}

// ConfirmPage renders the confirmation form. Submitting posts confirm=yes.
func ConfirmPage(view ConfirmView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Heading(view.Heading))
		h.render(ErrorBanner(view.Error, "", ""))
		h.raw(`<div class="confirm card"><p>`)
		h.text(view.Message)
		h.raw(`</p><form method="post"`)
		h.href("action", view.ActionURL)
		h.raw(`><input type="hidden" name="confirm" value="yes"><button type="submit" class="btn btn-error">`)
		h.text(T(loc, "action.confirm"))
		h.raw(`</button><a class="btn btn-ghost"`)
		h.href("href", view.CancelURL)
		h.raw(">")
		h.text(T(loc, "action.cancel"))
		h.raw("</a></form></div>")
	})
}

// ConfirmFullPage renders the confirmation inside the admin shell.
func ConfirmFullPage(view ConfirmView, page PageContext) templ.Component {
	return Layout(page, view.Heading.Title, ConfirmPage(view, page.Loc))
}
