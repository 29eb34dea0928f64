package admin

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/pages"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"golang.org/x/text/message"
)

// View state keys, one per list page.
const (
	usersKey            = "users"
	postsKey            = "posts"
	coinPaymentsKey     = "coin-payments"
	campaignOrdersKey   = "campaign-orders"
	coinPackagesKey     = "coin-packages"
	campaignPackagesKey = "campaign-packages"
	spinsKey            = "spin-history"
	roomsKey            = "rooms"
	notificationsKey    = "notifications"
	downloadsKey        = "downloads"
	analyticsKey        = "analytics"
)

type listPages struct {
	users            *listPage[api.User]
	posts            *listPage[api.Post]
	coinPayments     *listPage[api.CoinPayment]
	campaignOrders   *listPage[api.CampaignOrder]
	coinPackages     *listPage[api.CoinPackage]
	campaignPackages *listPage[api.CampaignPackage]
	spins            *listPage[api.Spin]
	rooms            *listPage[api.Room]
	notifications    *listPage[api.Notification]
	downloads        *listPage[api.DownloadConfig]
	analyticsDays    *listPage[api.AnalyticsDay]
}

var paymentsCrumb = []templates.Breadcrumb{{Label: "nav.group_payments"}}

func newListPages(h *Handler) listPages {
	return listPages{
		users: &listPage[api.User]{
			h:          h,
			key:        usersKey,
			base:       routepath.Users,
			title:      "nav.users",
			emptyKey:   "empty.users",
			searchKey:  "search.users",
			descriptor: pages.Users(),
			fetch:      h.api.ListUsers,
			get:        h.api.GetUser,
			remove: func(ctx context.Context, id string, _ api.User) error {
				return h.api.DeleteUser(ctx, id)
			},
			fields:    userFields,
			subject:   func(u api.User) string { return firstNonEmpty(u.FullName, u.Username, u.Email, u.ID) },
			decorate:  editable[api.User](routepath.Users),
			creatable: true,
		},
		posts: &listPage[api.Post]{
			h:          h,
			key:        postsKey,
			base:       routepath.Posts,
			title:      "nav.posts",
			emptyKey:   "empty.posts",
			searchKey:  "search.posts",
			descriptor: pages.Posts(),
			fetch:      h.api.ListPosts,
			remove: func(ctx context.Context, id string, p api.Post) error {
				if p.OwnerID == "" {
					return apperrors.New(apperrors.CodeNotFound, "post owner is unknown")
				}
				return h.api.DeletePost(ctx, p.OwnerID, id)
			},
			fields:  postFields,
			subject: func(p api.Post) string { return firstNonEmpty(p.Caption, p.ID) },
		},
		coinPayments: &listPage[api.CoinPayment]{
			h:          h,
			key:        coinPaymentsKey,
			base:       routepath.CoinPayments,
			title:      "nav.coin_payments",
			emptyKey:   "empty.payments",
			searchKey:  "search.payments",
			descriptor: pages.CoinPayments(),
			fetch:      h.api.ListCoinPayments,
			get:        h.api.GetCoinPayment,
			remove: func(ctx context.Context, id string, _ api.CoinPayment) error {
				return h.api.DeleteCoinPayment(ctx, id)
			},
			subject:     func(p api.CoinPayment) string { return firstNonEmpty(p.OrderID, p.ID) },
			breadcrumbs: paymentsCrumb,
		},
		campaignOrders: &listPage[api.CampaignOrder]{
			h:          h,
			key:        campaignOrdersKey,
			base:       routepath.CampaignOrders,
			title:      "nav.campaign_orders",
			emptyKey:   "empty.orders",
			searchKey:  "search.orders",
			descriptor: pages.CampaignOrders(),
			fetch:      h.api.ListCampaignOrders,
			remove: func(ctx context.Context, id string, _ api.CampaignOrder) error {
				return h.api.DeleteCampaignOrder(ctx, id)
			},
			subject:     func(o api.CampaignOrder) string { return firstNonEmpty(o.OrderID, o.ID) },
			breadcrumbs: paymentsCrumb,
		},
		coinPackages: &listPage[api.CoinPackage]{
			h:          h,
			key:        coinPackagesKey,
			base:       routepath.CoinPackages,
			title:      "nav.coin_packages",
			emptyKey:   "empty.packages",
			searchKey:  "search.packages",
			descriptor: pages.CoinPackages(),
			fetch:      h.api.ListCoinPackages,
			subject:    func(p api.CoinPackage) string { return firstNonEmpty(p.Name, p.ID) },
			creatable:  true,
		},
		campaignPackages: &listPage[api.CampaignPackage]{
			h:          h,
			key:        campaignPackagesKey,
			base:       routepath.CampaignPackages,
			title:      "nav.campaign_packages",
			emptyKey:   "empty.packages",
			searchKey:  "search.packages",
			descriptor: pages.CampaignPackages(),
			fetch:      h.api.ListCampaignPackages,
			subject:    func(p api.CampaignPackage) string { return firstNonEmpty(p.Name, p.ID) },
			creatable:  true,
		},
		spins: &listPage[api.Spin]{
			h:          h,
			key:        spinsKey,
			base:       routepath.Spins,
			title:      "nav.spin_history",
			emptyKey:   "empty.spins",
			searchKey:  "search.spins",
			descriptor: pages.Spins(),
			fetch:      h.api.ListSpins,
			get:        h.api.GetSpin,
			remove: func(ctx context.Context, id string, _ api.Spin) error {
				return h.api.DeleteSpin(ctx, id)
			},
			actions: func(loc *message.Printer) []templates.ActionView {
				return []templates.ActionView{{Label: loc.Sprintf("action.clear_history"), URL: routepath.SpinsClear, Danger: true}}
			},
		},
		rooms: &listPage[api.Room]{
			h:          h,
			key:        roomsKey,
			base:       routepath.Rooms,
			title:      "nav.rooms",
			emptyKey:   "empty.rooms",
			searchKey:  "search.rooms",
			descriptor: pages.Rooms(),
			fetch:      h.api.ListRooms,
			get:        h.api.GetRoom,
			remove: func(ctx context.Context, id string, _ api.Room) error {
				return h.api.DeleteRoom(ctx, id)
			},
			subject: func(r api.Room) string { return firstNonEmpty(r.Name, r.ID) },
		},
		notifications: &listPage[api.Notification]{
			h:          h,
			key:        notificationsKey,
			base:       routepath.Notifications,
			title:      "nav.notifications",
			emptyKey:   "empty.notifications",
			searchKey:  "search.notifications",
			descriptor: pages.Notifications(),
			fetch:      h.api.ListNotifications,
			remove: func(ctx context.Context, id string, _ api.Notification) error {
				return h.api.DeleteNotification(ctx, id)
			},
			subject: func(n api.Notification) string { return firstNonEmpty(n.Title, n.ID) },
			actions: func(loc *message.Printer) []templates.ActionView {
				return []templates.ActionView{{Label: loc.Sprintf("action.clear_all"), URL: routepath.NotificationsClear, Danger: true}}
			},
		},
		downloads: &listPage[api.DownloadConfig]{
			h:          h,
			key:        downloadsKey,
			base:       routepath.Downloads,
			title:      "nav.downloads",
			emptyKey:   "empty.downloads",
			searchKey:  "search.downloads",
			descriptor: pages.Downloads(),
			fetch:      h.api.ListDownloadConfigs,
			get:        h.api.GetDownloadConfig,
			remove: func(ctx context.Context, kind string, _ api.DownloadConfig) error {
				return h.api.DeleteDownloadConfig(ctx, kind)
			},
			subject: func(d api.DownloadConfig) string { return d.Type },
			decorate: func(loc *message.Printer, d api.DownloadConfig, row *templates.RowView) {
				row.EditURL = routepath.Edit(routepath.Downloads, d.Type)
				row.ToggleURL = routepath.Toggle(routepath.Downloads, d.Type)
				row.ToggleLabel = loc.Sprintf("action.enable")
				if d.Enabled {
					row.ToggleLabel = loc.Sprintf("action.disable")
				}
			},
			creatable: true,
		},
		analyticsDays: &listPage[api.AnalyticsDay]{
			h:          h,
			key:        analyticsKey,
			base:       routepath.Analytics,
			title:      "nav.analytics",
			emptyKey:   "empty.analytics",
			descriptor: pages.AnalyticsDays(),
			fetch: func(ctx context.Context) ([]api.AnalyticsDay, error) {
				report, err := h.api.GetAnalytics(ctx)
				return report.Days, err
			},
			subject:   func(d api.AnalyticsDay) string { return d.Key() },
			detailURL: routepath.AnalyticsDay,
		},
	}
}

// dayPage builds the breakdown page of one analytics day. Its state is keyed
// by the date so that each day keeps its own query.
func (h *Handler) dayPage(day time.Time) *listPage[api.DayEntry] {
	date := day.Format("2006-01-02")
	return &listPage[api.DayEntry]{
		h:          h,
		key:        analyticsKey + ":" + date,
		base:       routepath.AnalyticsDay(date),
		title:      "title.analytics_day",
		emptyKey:   "empty.analytics_day",
		searchKey:  "search.analytics_day",
		descriptor: pages.DayBreakdown(),
		fetch: func(ctx context.Context) ([]api.DayEntry, error) {
			breakdown, err := h.api.GetDayBreakdown(ctx, day)
			return breakdown.Entries, err
		},
		exportGroup: date,
		breadcrumbs: []templates.Breadcrumb{{Label: "nav.analytics", URL: routepath.Analytics}, {Label: date}},
		navKey:      analyticsKey,
		detailURL:   func(string) string { return "" },
	}
}

// editable links rows to base/{id}/edit.
func editable[T any](base string) func(*message.Printer, T, *templates.RowView) {
	return func(_ *message.Printer, _ T, row *templates.RowView) {
		row.EditURL = routepath.Edit(base, row.ID)
	}
}

func userFields(loc *message.Printer, u api.User) []templates.DetailField {
	return []templates.DetailField{
		{Label: loc.Sprintf("column.name"), Value: u.FullName},
		{Label: loc.Sprintf("column.username"), Value: u.Username},
		{Label: loc.Sprintf("column.email"), Value: u.Email, Link: mailto(u.Email)},
		{Label: loc.Sprintf("column.phone"), Value: u.Phone},
		{Label: loc.Sprintf("column.role"), Value: u.Role},
		{Label: loc.Sprintf("column.status"), Value: u.Status},
		{Label: loc.Sprintf("column.coins"), Value: pages.Count(u.Coins)},
		{Label: loc.Sprintf("column.verified"), Value: loc.Sprintf(pages.YesNo(u.Verified))},
		{Label: loc.Sprintf("column.joined"), Value: pages.DateTime(u.CreatedAt)},
	}
}

func postFields(loc *message.Printer, p api.Post) []templates.DetailField {
	fields := []templates.DetailField{
		{Label: loc.Sprintf("column.owner"), Value: p.OwnerName, Link: ownerLink(p.OwnerID)},
		{Label: loc.Sprintf("column.caption"), Value: p.Caption},
		{Label: loc.Sprintf("column.type"), Value: p.Type},
		{Label: loc.Sprintf("column.likes"), Value: pages.Count(p.Likes)},
		{Label: loc.Sprintf("column.comments"), Value: pages.Count(p.Comments)},
		{Label: loc.Sprintf("column.created"), Value: pages.DateTime(p.CreatedAt)},
	}
	if p.MediaURL != "" {
		fields = append(fields, templates.DetailField{Label: loc.Sprintf("column.media"), Value: p.MediaURL, Link: p.MediaURL})
	}
	return fields
}

func ownerLink(ownerID string) string {
	if ownerID == "" {
		return ""
	}
	return routepath.Detail(routepath.Users, ownerID)
}

func mailto(email string) string {
	if email == "" {
		return ""
	}
	return "mailto:" + email
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
