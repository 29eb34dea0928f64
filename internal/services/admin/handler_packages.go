package admin

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/text/message"
)

func packageFormView(loc *message.Printer, title, navKey, base string, fields []templates.FormField) templates.FormView {
	return templates.FormView{
		Heading: templates.PageHeading{
			Title: loc.Sprintf(title),
			Breadcrumbs: []templates.Breadcrumb{
				{Label: loc.Sprintf("nav.group_packages")},
				{Label: loc.Sprintf(navKey), URL: base},
			},
		},
		ActionURL: routepath.New(base),
		CancelURL: base,
		Submit:    loc.Sprintf("action.create"),
		Fields:    fields,
	}
}

func (h *Handler) handleCoinPackageCreate(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := packageFormView(loc, "title.coin_package_new", "nav.coin_packages", routepath.CoinPackages, []templates.FormField{
		{Name: "name", Label: loc.Sprintf("column.name"), Required: true},
		{Name: "coins", Label: loc.Sprintf("column.coins"), Type: templates.InputNumber, Required: true},
		{Name: "price", Label: loc.Sprintf("column.price"), Type: templates.InputNumber, Required: true},
		{Name: "bonus", Label: loc.Sprintf("column.bonus"), Type: templates.InputNumber, Value: "0"},
		{Name: "active", Label: loc.Sprintf("column.active"), Type: templates.InputCheckbox, Checked: true},
	})
	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, r, loc, lang, coinPackagesKey, view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		in, err := parseCoinPackage(r)
		if err == nil {
			var pkg api.CoinPackage
			var ok bool
			pkg, ok, err = h.api.CreateCoinPackage(r.Context(), in)
			if err == nil {
				st := h.lists.coinPackages.state(r)
				if ok {
					st.coll.Upsert(pkg)
				}
				st.coll.MarkStale()
				htmx.Redirect(w, r, withNotice(routepath.CoinPackages, "created"))
				return
			}
		}
		h.renderForm(w, r, loc, lang, coinPackagesKey, view, formError(loc, &view, err))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func parseCoinPackage(r *http.Request) (api.CoinPackageInput, error) {
	in := api.CoinPackageInput{Name: fieldValue(r, "name"), Active: checked(r, "active")}
	var err error
	if in.Coins, err = api.ParseAmount("coins", fieldValue(r, "coins")); err != nil {
		return in, err
	}
	if in.Price, err = api.ParseAmount("price", fieldValue(r, "price")); err != nil {
		return in, err
	}
	if raw := fieldValue(r, "bonus"); raw != "" {
		if in.Bonus, err = api.ParseAmount("bonus", raw); err != nil {
			return in, err
		}
	}
	return in, nil
}

func (h *Handler) handleCampaignPackageCreate(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := packageFormView(loc, "title.campaign_package_new", "nav.campaign_packages", routepath.CampaignPackages, []templates.FormField{
		{Name: "name", Label: loc.Sprintf("column.name"), Required: true},
		{Name: "price", Label: loc.Sprintf("column.price"), Type: templates.InputNumber, Required: true},
		{Name: "duration_days", Label: loc.Sprintf("column.duration"), Type: templates.InputNumber, Required: true},
		{Name: "reach", Label: loc.Sprintf("column.reach"), Type: templates.InputNumber, Value: "0"},
		{Name: "active", Label: loc.Sprintf("column.active"), Type: templates.InputCheckbox, Checked: true},
	})
	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, r, loc, lang, campaignPackagesKey, view, http.StatusOK)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		in, err := parseCampaignPackage(r)
		if err == nil {
			var pkg api.CampaignPackage
			var ok bool
			pkg, ok, err = h.api.CreateCampaignPackage(r.Context(), in)
			if err == nil {
				st := h.lists.campaignPackages.state(r)
				if ok {
					st.coll.Upsert(pkg)
				}
				st.coll.MarkStale()
				htmx.Redirect(w, r, withNotice(routepath.CampaignPackages, "created"))
				return
			}
		}
		h.renderForm(w, r, loc, lang, campaignPackagesKey, view, formError(loc, &view, err))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func parseCampaignPackage(r *http.Request) (api.CampaignPackageInput, error) {
	in := api.CampaignPackageInput{Name: fieldValue(r, "name"), Active: checked(r, "active")}
	var err error
	if in.Price, err = api.ParseAmount("price", fieldValue(r, "price")); err != nil {
		return in, err
	}
	if in.DurationDays, err = api.ParseCount("duration_days", fieldValue(r, "duration_days")); err != nil {
		return in, err
	}
	if raw := fieldValue(r, "reach"); raw != "" {
		if in.Reach, err = api.ParseAmount("reach", raw); err != nil {
			return in, err
		}
	}
	return in, nil
}
