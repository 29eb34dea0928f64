package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/pages"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/text/message"
)

// blankGridRows are appended to grid editors so new entries can be added.
const blankGridRows = 2

func gamesCrumbs(loc *message.Printer) []templates.Breadcrumb {
	return []templates.Breadcrumb{{Label: loc.Sprintf("nav.group_games")}}
}

var wheelColumns = []templates.GridColumn{
	{Name: "label", Label: "column.label"},
	{Name: "reward_type", Label: "column.reward"},
	{Name: "value", Label: "column.value", Type: templates.InputNumber},
	{Name: "probability", Label: "column.probability", Type: templates.InputNumber},
	{Name: "color", Label: "column.color", Type: templates.InputColor},
}

var slotColumns = []templates.GridColumn{
	{Name: "symbol", Label: "column.symbol"},
	{Name: "payout", Label: "column.payout", Type: templates.InputNumber},
	{Name: "weight", Label: "column.weight", Type: templates.InputNumber},
}

func localizeColumns(loc *message.Printer, columns []templates.GridColumn) []templates.GridColumn {
	out := make([]templates.GridColumn, len(columns))
	for i, column := range columns {
		column.Label = loc.Sprintf(column.Label)
		out[i] = column
	}
	return out
}

// gridRows reads the submitted grid as rows of column values. Rows whose
// cells are all blank are skipped.
func gridRows(r *http.Request, columns []templates.GridColumn) [][]string {
	n := 0
	for _, column := range columns {
		n = max(n, len(r.PostForm[column.Name]))
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(columns))
		blank := true
		for j, column := range columns {
			if values := r.PostForm[column.Name]; i < len(values) {
				row[j] = values[i]
			}
			if row[j] != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows
}

func withBlankRows(rows [][]string, width int) [][]string {
	for i := 0; i < blankGridRows; i++ {
		rows = append(rows, make([]string, width))
	}
	return rows
}

func parseGridNumber(row int, name, raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := api.ParseAmount(name, raw)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("row %d: %s", row+1, apperrors.Message(err)))
	}
	return value, nil
}

func wheelFromRows(rows [][]string) (api.WheelConfig, error) {
	var cfg api.WheelConfig
	for i, row := range rows {
		value, err := parseGridNumber(i, "value", row[2])
		if err != nil {
			return cfg, err
		}
		probability, err := parseGridNumber(i, "probability", row[3])
		if err != nil {
			return cfg, err
		}
		cfg.Segments = append(cfg.Segments, api.WheelSegment{
			Label:       row[0],
			RewardType:  row[1],
			Value:       value,
			Probability: probability,
			Color:       row[4],
		})
	}
	return cfg, nil
}

func wheelRows(cfg api.WheelConfig) [][]string {
	rows := make([][]string, 0, len(cfg.Segments))
	for _, s := range cfg.Segments {
		rows = append(rows, []string{s.Label, s.RewardType, formatNumber(s.Value), formatNumber(s.Probability), s.Color})
	}
	return rows
}

func wheelFooter(loc *message.Printer, cfg api.WheelConfig) string {
	return loc.Sprintf("wheel.total", pages.Decimal(cfg.TotalProbability()))
}

func (h *Handler) handleWheel(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.FormView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("nav.spin_wheel"), Breadcrumbs: gamesCrumbs(loc)},
		ActionURL: routepath.SpinWheel,
		Grid:      &templates.GridView{Label: loc.Sprintf("wheel.segments"), Columns: localizeColumns(loc, wheelColumns)},
	}
	switch r.Method {
	case http.MethodGet:
		view.Toast, _ = noticeMessage(loc, r)
		cfg, err := h.api.GetWheel(r.Context())
		status := http.StatusOK
		if err != nil {
			log.Printf("get wheel: %v", err)
			view.Error = errorMessage(loc, err)
			status = http.StatusBadGateway
		}
		view.Grid.Rows = withBlankRows(wheelRows(cfg), len(wheelColumns))
		view.Grid.Footer = wheelFooter(loc, cfg)
		h.renderForm(w, r, loc, lang, "spin-wheel", view, status)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		rows := gridRows(r, wheelColumns)
		view.Grid.Rows = withBlankRows(rows, len(wheelColumns))
		cfg, err := wheelFromRows(rows)
		if err == nil {
			view.Grid.Footer = wheelFooter(loc, cfg)
			err = h.api.SaveWheel(r.Context(), cfg)
		}
		if err != nil {
			h.renderForm(w, r, loc, lang, "spin-wheel", view, formError(loc, &view, err))
			return
		}
		htmx.Redirect(w, r, withNotice(routepath.SpinWheel, "saved"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func slotFromForm(r *http.Request, rows [][]string) (api.SlotConfig, error) {
	reels, err := api.ParseCount("reels", fieldValue(r, "reels"))
	if err != nil {
		return api.SlotConfig{}, err
	}
	cfg := api.SlotConfig{Reels: reels}
	for i, row := range rows {
		payout, err := parseGridNumber(i, "payout", row[1])
		if err != nil {
			return cfg, err
		}
		weight, err := parseGridNumber(i, "weight", row[2])
		if err != nil {
			return cfg, err
		}
		cfg.Symbols = append(cfg.Symbols, api.SlotSymbol{Symbol: row[0], Payout: payout, Weight: weight})
	}
	return cfg, nil
}

func (h *Handler) handleSlot(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.FormView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("nav.spin_slot"), Breadcrumbs: gamesCrumbs(loc)},
		ActionURL: routepath.SpinSlot,
		Fields:    []templates.FormField{{Name: "reels", Label: loc.Sprintf("form.reels"), Type: templates.InputNumber, Required: true}},
		Grid:      &templates.GridView{Label: loc.Sprintf("slot.symbols"), Columns: localizeColumns(loc, slotColumns)},
	}
	switch r.Method {
	case http.MethodGet:
		view.Toast, _ = noticeMessage(loc, r)
		cfg, err := h.api.GetSlot(r.Context())
		status := http.StatusOK
		if err != nil {
			log.Printf("get slot: %v", err)
			view.Error = errorMessage(loc, err)
			status = http.StatusBadGateway
		}
		rows := make([][]string, 0, len(cfg.Symbols))
		for _, s := range cfg.Symbols {
			rows = append(rows, []string{s.Symbol, formatNumber(s.Payout), formatNumber(s.Weight)})
		}
		view.Fields[0].Value = strconv.Itoa(cfg.Reels)
		view.Grid.Rows = withBlankRows(rows, len(slotColumns))
		h.renderForm(w, r, loc, lang, "spin-slot", view, status)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		rows := gridRows(r, slotColumns)
		view.Grid.Rows = withBlankRows(rows, len(slotColumns))
		cfg, err := slotFromForm(r, rows)
		if err == nil {
			err = h.api.SaveSlot(r.Context(), cfg)
		}
		if err != nil {
			h.renderForm(w, r, loc, lang, "spin-slot", view, formError(loc, &view, err))
			return
		}
		htmx.Redirect(w, r, withNotice(routepath.SpinSlot, "saved"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) handleSpinConfig(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	view := templates.FormView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("nav.spin_config"), Breadcrumbs: gamesCrumbs(loc)},
		ActionURL: routepath.SpinConfig,
		Fields: []templates.FormField{
			{Name: "enabled", Label: loc.Sprintf("column.enabled"), Type: templates.InputCheckbox},
			{Name: "daily_free_spins", Label: loc.Sprintf("form.daily_free_spins"), Type: templates.InputNumber, Required: true},
			{Name: "spin_cost", Label: loc.Sprintf("form.spin_cost"), Type: templates.InputNumber, Required: true},
			{Name: "cooldown_minutes", Label: loc.Sprintf("form.cooldown_minutes"), Type: templates.InputNumber, Required: true},
		},
	}
	switch r.Method {
	case http.MethodGet:
		view.Toast, _ = noticeMessage(loc, r)
		cfg, err := h.api.GetSpinConfig(r.Context())
		status := http.StatusOK
		if err != nil {
			log.Printf("get spin config: %v", err)
			view.Error = errorMessage(loc, err)
			status = http.StatusBadGateway
		}
		view.Fields[0].Checked = cfg.Enabled
		view.Fields[1].Value = strconv.Itoa(cfg.DailyFreeSpins)
		view.Fields[2].Value = formatNumber(cfg.SpinCost)
		view.Fields[3].Value = strconv.Itoa(cfg.CooldownMinutes)
		h.renderForm(w, r, loc, lang, "spin-config", view, status)
	case http.MethodPost:
		if !formPost(w, r, loc) {
			return
		}
		fillFields(r, view.Fields)
		cfg, err := spinConfigFromForm(r)
		if err == nil {
			err = h.api.SaveSpinConfig(r.Context(), cfg)
		}
		if err != nil {
			h.renderForm(w, r, loc, lang, "spin-config", view, formError(loc, &view, err))
			return
		}
		htmx.Redirect(w, r, withNotice(routepath.SpinConfig, "saved"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func spinConfigFromForm(r *http.Request) (api.SpinConfig, error) {
	cfg := api.SpinConfig{Enabled: checked(r, "enabled")}
	var err error
	if cfg.DailyFreeSpins, err = api.ParseCount("daily_free_spins", fieldValue(r, "daily_free_spins")); err != nil {
		return cfg, err
	}
	if cfg.SpinCost, err = api.ParseAmount("spin_cost", fieldValue(r, "spin_cost")); err != nil {
		return cfg, err
	}
	if cfg.CooldownMinutes, err = api.ParseCount("cooldown_minutes", fieldValue(r, "cooldown_minutes")); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (h *Handler) handleClearSpins(w http.ResponseWriter, r *http.Request) {
	h.handleClear(w, r, clearAction{
		title:   "confirm.clear_spins_title",
		message: "confirm.clear_spins_message",
		action:  routepath.SpinsClear,
		cancel:  routepath.Spins,
		navKey:  spinsKey,
		clear:   h.api.ClearSpins,
		done: func(r *http.Request) {
			st := h.lists.spins.state(r)
			st.coll.Replace(nil)
			st.coll.MarkStale()
		},
	})
}

// clearAction describes a confirm-then-clear flow.
type clearAction struct {
	title   string
	message string
	action  string
	cancel  string
	navKey  string
	clear   func(ctx context.Context) error
	// done reconciles local state after a successful clear.
	done func(r *http.Request)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request, a clearAction) {
	loc, lang := h.localizer(w, r)
	view := templates.ConfirmView{
		Heading:   templates.PageHeading{Title: loc.Sprintf(a.title)},
		Message:   loc.Sprintf(a.message),
		ActionURL: a.action,
		CancelURL: a.cancel,
	}
	render := func(status int) {
		pageCtx := h.pageContext(lang, loc, r, a.navKey)
		htmx.RenderPageStatus(w, r,
			templates.ConfirmPage(view, loc),
			templates.ConfirmFullPage(view, pageCtx),
			templates.PageTitle(view.Heading.Title),
			status,
		)
	}
	switch r.Method {
	case http.MethodGet:
		render(http.StatusOK)
	case http.MethodPost:
		if !requireSameOrigin(w, r, loc) {
			return
		}
		if r.FormValue("confirm") != "yes" {
			view.Error = loc.Sprintf("error.confirm_required")
			render(http.StatusBadRequest)
			return
		}
		if err := a.clear(r.Context()); err != nil {
			log.Printf("clear %s: %v", a.navKey, err)
			view.Error = errorMessage(loc, err)
			render(http.StatusBadGateway)
			return
		}
		a.done(r)
		htmx.Redirect(w, r, withNotice(a.cancel, "cleared"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}
