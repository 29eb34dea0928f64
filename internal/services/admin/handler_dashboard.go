package admin

import (
	"log"
	"net/http"

	"github.com/louisbranch/socialadmin/internal/listview"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/pages"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/message"
)

// dashboardRecent is how many rows each dashboard section shows.
const dashboardRecent = 5

// handleDashboard loads the headline stats and the recent activity lists
// concurrently. Each source fails on its own; the rest still render.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, lang := h.localizer(w, r)
	ctx := r.Context()

	users := h.lists.users
	payments := h.lists.coinPayments
	notifications := h.lists.notifications
	usersState, paymentsState, notificationsState := users.state(r), payments.state(r), notifications.state(r)

	var (
		stats api.DashboardStats
		// errs holds one slot per source: stats, users, payments, notifications.
		errs [4]error
		g    errgroup.Group
	)
	g.Go(func() error {
		stats, errs[0] = h.api.GetDashboard(ctx)
		return errs[0]
	})
	g.Go(func() error {
		errs[1] = users.load(ctx, usersState)
		return errs[1]
	})
	g.Go(func() error {
		errs[2] = payments.load(ctx, paymentsState)
		return errs[2]
	})
	g.Go(func() error {
		errs[3] = notifications.load(ctx, notificationsState)
		return errs[3]
	})

	view := templates.DashboardView{RetryURL: routepath.Root}
	if err := g.Wait(); err != nil {
		log.Printf("dashboard: %v", err)
		for _, err := range errs {
			if err != nil {
				view.Errors = append(view.Errors, errorMessage(loc, err))
			}
		}
	}
	if errs[0] == nil {
		view.Cards = statCards(loc, stats)
	}
	unread := 0
	if notificationsState.coll.Loaded() {
		unread = api.UnreadCount(notificationsState.coll.Records())
	}
	view.Cards = append(view.Cards, templates.StatCard{Label: loc.Sprintf("dashboard.unread"), Value: pages.Count(float64(unread)), URL: routepath.Notifications})

	view.Sections = []templates.DashboardSection{
		recentSection(loc, "dashboard.recent_users", routepath.Users, "empty.users", users.descriptor, usersState.coll.Records()),
		recentSection(loc, "dashboard.recent_payments", routepath.CoinPayments, "empty.payments", payments.descriptor, paymentsState.coll.Records()),
	}

	status := http.StatusOK
	if len(view.Errors) == len(errs) {
		status = http.StatusBadGateway
	}
	pageCtx := h.pageContext(lang, loc, r, "dashboard")
	htmx.RenderPageStatus(w, r,
		templates.DashboardPage(view, loc),
		templates.DashboardFullPage(view, pageCtx),
		templates.PageTitle(loc.Sprintf("title.dashboard")),
		status,
	)
}

func statCards(loc *message.Printer, stats api.DashboardStats) []templates.StatCard {
	return []templates.StatCard{
		{Label: loc.Sprintf("dashboard.total_users"), Value: pages.Count(stats.TotalUsers), URL: routepath.Users},
		{Label: loc.Sprintf("dashboard.active_users"), Value: pages.Count(stats.ActiveUsers)},
		{Label: loc.Sprintf("dashboard.total_posts"), Value: pages.Count(stats.TotalPosts), URL: routepath.Posts},
		{Label: loc.Sprintf("dashboard.live_rooms"), Value: pages.Count(stats.LiveRooms) + " / " + pages.Count(stats.TotalRooms), URL: routepath.Rooms},
		{Label: loc.Sprintf("dashboard.revenue"), Value: pages.Money(stats.TotalRevenue), URL: routepath.CoinPayments},
		{Label: loc.Sprintf("dashboard.pending_campaigns"), Value: pages.Count(stats.PendingCampaigns), URL: routepath.CampaignOrders},
		{Label: loc.Sprintf("dashboard.total_spins"), Value: pages.Count(stats.TotalSpins), URL: routepath.Spins},
	}
}

// recentSection shows the newest records in the page's default order.
func recentSection[T any](loc *message.Printer, title, more, empty string, d listview.Descriptor[T], records []T) templates.DashboardSection {
	section := templates.DashboardSection{
		Title:   loc.Sprintf(title),
		MoreURL: more,
		Empty:   loc.Sprintf(empty),
	}
	for _, column := range d.Columns {
		section.Columns = append(section.Columns, loc.Sprintf(column.Header))
	}
	q := d.NewQuery()
	q.SetPageSize(dashboardRecent)
	for _, rec := range listview.Apply(d, records, q).Items {
		row := make([]string, 0, len(d.Columns))
		for _, column := range d.Columns {
			row = append(row, cellText(loc, column.Value(rec)))
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}
