package admin

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/text/message"
)

// renderForm renders a form page with status.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, loc *message.Printer, lang, active string, view templates.FormView, status int) {
	pageCtx := h.pageContext(lang, loc, r, active)
	htmx.RenderPageStatus(w, r,
		templates.FormPage(view, loc),
		templates.FormFullPage(view, pageCtx),
		templates.PageTitle(view.Heading.Title),
		status,
	)
}

// formError attaches err to the field it names, or to the form banner when no
// field matches. It returns the status to render with.
func formError(loc *message.Printer, view *templates.FormView, err error) int {
	if field := apperrors.MetadataValue(err, "field"); field != "" {
		for i := range view.Fields {
			if view.Fields[i].Name == field {
				view.Fields[i].Error = loc.Sprintf("error.validation", validationText(err))
				return http.StatusUnprocessableEntity
			}
		}
	}
	view.Error = errorMessage(loc, err)
	if apperrors.HasCode(err, apperrors.CodeValidation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// formPost checks the method and origin of a form submission and parses it.
// It returns false when the response has already been written.
func formPost(w http.ResponseWriter, r *http.Request, loc *message.Printer) bool {
	if !requireSameOrigin(w, r, loc) {
		return false
	}
	if err := r.ParseForm(); err != nil {
		log.Printf("parse form: %v", err)
		http.Error(w, loc.Sprintf("error.form_invalid"), http.StatusBadRequest)
		return false
	}
	return true
}

// fieldValue returns the trimmed form value.
func fieldValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

func checked(r *http.Request, name string) bool {
	switch strings.ToLower(fieldValue(r, name)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// fillFields copies the submitted values back into the form.
func fillFields(r *http.Request, fields []templates.FormField) {
	for i := range fields {
		switch fields[i].Type {
		case templates.InputPassword:
		case templates.InputCheckbox:
			fields[i].Checked = checked(r, fields[i].Name)
		default:
			fields[i].Value = fieldValue(r, fields[i].Name)
		}
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func options(loc *message.Printer, pairs ...string) []templates.OptionView {
	out := make([]templates.OptionView, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, templates.OptionView{Value: pairs[i], Label: loc.Sprintf(pairs[i+1])})
	}
	return out
}
