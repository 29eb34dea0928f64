package admin

import (
	"log"
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/text/message"
)

func downloadFormFields(loc *message.Printer, create bool) []templates.FormField {
	fields := []templates.FormField{
		{Name: "version", Label: loc.Sprintf("column.version"), Required: true},
		{Name: "url", Label: loc.Sprintf("column.url"), Type: templates.InputURL, Required: true},
		{Name: "notes", Label: loc.Sprintf("column.notes"), Type: templates.InputTextarea},
		{Name: "enabled", Label: loc.Sprintf("column.enabled"), Type: templates.InputCheckbox, Checked: create},
	}
	if create {
		kind := templates.FormField{Name: "type", Label: loc.Sprintf("column.type"), Required: true, Help: "form.download_type_help"}
		fields = append([]templates.FormField{kind}, fields...)
	}
	return fields
}

func parseDownloadInput(r *http.Request) api.DownloadInput {
	return api.DownloadInput{
		Type:    fieldValue(r, "type"),
		Version: fieldValue(r, "version"),
		URL:     fieldValue(r, "url"),
		Notes:   fieldValue(r, "notes"),
		Enabled: checked(r, "enabled"),
	}
}

func downloadsCrumbs(loc *message.Printer) []templates.Breadcrumb {
	return []templates.Breadcrumb{{Label: loc.Sprintf("nav.downloads"), URL: routepath.Downloads}}
}

func (h *Handler) handleDownloadCreate(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.FormView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("title.download_new"), Breadcrumbs: downloadsCrumbs(loc)},
		ActionURL: routepath.New(routepath.Downloads),
		CancelURL: routepath.Downloads,
		Submit:    loc.Sprintf("action.create"),
		Fields:    downloadFormFields(loc, true),
	}
	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, r, loc, lang, downloadsKey, view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		cfg, ok, err := h.api.CreateDownloadConfig(r.Context(), parseDownloadInput(r))
		if err != nil {
			h.renderForm(w, r, loc, lang, downloadsKey, view, formError(loc, &view, err))
			return
		}
		st := h.lists.downloads.state(r)
		if ok {
			st.coll.Upsert(cfg)
		}
		st.coll.MarkStale()
		htmx.Redirect(w, r, withNotice(routepath.Downloads, "created"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) handleDownloadEdit(w http.ResponseWriter, r *http.Request, kind string) {
	loc, lang := h.localizer(w, r)
	page := h.lists.downloads
	st := page.state(r)
	view := templates.FormView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("title.download_edit", kind), Breadcrumbs: downloadsCrumbs(loc)},
		ActionURL: routepath.Edit(routepath.Downloads, kind),
		CancelURL: routepath.Downloads,
		Fields:    downloadFormFields(loc, false),
	}
	switch r.Method {
	case http.MethodGet:
		cfg, found, err := page.find(r.Context(), st, kind)
		switch {
		case err != nil:
			view.Error = errorMessage(loc, err)
			h.renderForm(w, r, loc, lang, downloadsKey, view, http.StatusBadGateway)
			return
		case !found:
			view.Error = loc.Sprintf("detail.not_found")
			h.renderForm(w, r, loc, lang, downloadsKey, view, http.StatusNotFound)
			return
		}
		view.Fields[0].Value = cfg.Version
		view.Fields[1].Value = cfg.URL
		view.Fields[2].Value = cfg.Notes
		view.Fields[3].Checked = cfg.Enabled
		h.renderForm(w, r, loc, lang, downloadsKey, view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		cfg, ok, err := h.api.UpdateDownloadConfig(r.Context(), kind, parseDownloadInput(r))
		if err != nil {
			h.renderForm(w, r, loc, lang, downloadsKey, view, formError(loc, &view, err))
			return
		}
		if ok {
			st.coll.Upsert(cfg)
		}
		st.coll.MarkStale()
		htmx.Redirect(w, r, withNotice(routepath.Downloads, "updated"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleDownloadToggle flips the enabled flag. Failures leave the cached
// row untouched and surface as an error toast on the list.
func (h *Handler) handleDownloadToggle(w http.ResponseWriter, r *http.Request, kind string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	loc, _ := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	st := h.lists.downloads.state(r)
	cfg, ok, err := h.api.ToggleDownloadConfig(r.Context(), kind)
	if err != nil {
		log.Printf("toggle download %s: %v", kind, err)
		htmx.Redirect(w, r, withNotice(routepath.Downloads, "failed"))
		return
	}
	if ok {
		st.coll.Upsert(cfg)
	} else if current, found := st.coll.Find(kind); found {
		current.Enabled = !current.Enabled
		st.coll.Upsert(current)
	}
	st.coll.MarkStale()
	htmx.Redirect(w, r, withNotice(routepath.Downloads, "toggled"))
}
