// Package routepath defines the admin URL layout.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	StaticPrefix = "/static/"
	Health       = "/healthz"
)

const (
	Login              = "/login"
	Logout             = "/logout"
	Password           = "/password"
	Preferences        = "/preferences"
	NotificationsBadge = "/notifications/badge"
)

// List pages. Each serves /table, /export and /{id} beneath its base.
const (
	Users            = "/users"
	Posts            = "/posts"
	CoinPayments     = "/payments/coins"
	CampaignOrders   = "/payments/campaigns"
	CoinPackages     = "/packages/coins"
	CampaignPackages = "/packages/campaigns"
	Spins            = "/spins"
	Rooms            = "/rooms"
	Notifications    = "/notifications"
	Downloads        = "/downloads"
	Analytics        = "/analytics"
)

// Game editors.
const (
	SpinWheel  = "/spins/wheel"
	SpinSlot   = "/spins/slot"
	SpinConfig = "/spins/config"
	SpinsClear = "/spins/clear"
)

// NotificationsClear removes every notification.
const NotificationsClear = "/notifications/clear"

// Prefix returns base with a trailing slash for subtree mounting.
func Prefix(base string) string {
	return strings.TrimRight(base, "/") + "/"
}

// Table is the HTMX endpoint rendering only the table region.
func Table(base string) string {
	return base + "/table"
}

// Export downloads the filtered view as CSV.
func Export(base string) string {
	return base + "/export.csv"
}

// New renders the create form.
func New(base string) string {
	return base + "/new"
}

func Detail(base, id string) string {
	return base + "/" + escapeSegment(id)
}

func Delete(base, id string) string {
	return Detail(base, id) + "/delete"
}

func Edit(base, id string) string {
	return Detail(base, id) + "/edit"
}

func Toggle(base, id string) string {
	return Detail(base, id) + "/toggle"
}

// AnalyticsDay is the breakdown page for one YYYY-MM-DD day.
func AnalyticsDay(date string) string {
	return Detail(Analytics, date)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
