package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// AppName is the product name shown in titles and the navbar.
func AppName() string {
	return "Social Admin"
}

// HTMXScript is the htmx build loaded by every page.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// NavItem is one sidebar link.
type NavItem struct {
	Key   string
	Label string
	URL   string
	// Group is the submenu label key; empty for top-level entries.
	Group string
}

var navItems = []NavItem{
	{Key: "dashboard", Label: "nav.dashboard", URL: routepath.Root},
	{Key: "users", Label: "nav.users", URL: routepath.Users},
	{Key: "posts", Label: "nav.posts", URL: routepath.Posts},
	{Key: "coin-payments", Label: "nav.coin_payments", URL: routepath.CoinPayments, Group: "nav.group_payments"},
	{Key: "campaign-orders", Label: "nav.campaign_orders", URL: routepath.CampaignOrders, Group: "nav.group_payments"},
	{Key: "coin-packages", Label: "nav.coin_packages", URL: routepath.CoinPackages, Group: "nav.group_packages"},
	{Key: "campaign-packages", Label: "nav.campaign_packages", URL: routepath.CampaignPackages, Group: "nav.group_packages"},
	{Key: "spin-wheel", Label: "nav.spin_wheel", URL: routepath.SpinWheel, Group: "nav.group_games"},
	{Key: "spin-slot", Label: "nav.spin_slot", URL: routepath.SpinSlot, Group: "nav.group_games"},
	{Key: "spin-config", Label: "nav.spin_config", URL: routepath.SpinConfig, Group: "nav.group_games"},
	{Key: "spin-history", Label: "nav.spin_history", URL: routepath.Spins, Group: "nav.group_games"},
	{Key: "rooms", Label: "nav.rooms", URL: routepath.Rooms},
	{Key: "notifications", Label: "nav.notifications", URL: routepath.Notifications},
	{Key: "downloads", Label: "nav.downloads", URL: routepath.Downloads},
	{Key: "analytics", Label: "nav.analytics", URL: routepath.Analytics},
	{Key: "password", Label: "nav.password", URL: routepath.Password},
}

// NavItems returns the sidebar entries in display order.
func NavItems() []NavItem {
	out := make([]NavItem, len(navItems))
	copy(out, navItems)
	return out
}

// PageTitle formats "<title> | <app>".
func PageTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return AppName()
	}
	return title + " | " + AppName()
}

// Layout wraps body in the admin shell: sidebar, navbar and the <main>
// region HTMX swaps target.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!doctype html><html")
		h.attr("lang", page.Lang)
		if page.DarkMode {
			h.attr("class", "dark")
		}
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(PageTitle(title))
		h.raw(`</title><link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="`, HTMXScript, `" defer></script><script src="/static/app.js" defer></script></head><body hx-boost="true"`)
		h.attr("hx-target", "#main")
		h.raw(">")

		shell := "shell"
		if page.SidebarCollapsed {
			shell += " sidebar-collapsed"
		}
		h.raw("<div")
		h.attr("class", shell)
		h.raw(">")
		sidebar(h, page)
		h.raw(`<div class="content">`)
		navbar(h, page)
		h.raw(`<main id="main">`)
		h.render(body)
		h.raw(`</main></div></div><div id="toasts" aria-live="polite"></div></body></html>`)
	})
}

func sidebar(h *htmlWriter, page PageContext) {
	h.raw(`<aside class="sidebar"><a class="brand"`)
	h.href("href", routepath.Root)
	h.raw(">")
	h.text(AppName())
	h.raw(`</a><nav><ul class="menu">`)
	group := ""
	for _, item := range navItems {
		if item.Group != group {
			if group != "" {
				h.raw("</ul></details></li>")
			}
			group = item.Group
			if group != "" {
				h.raw("<li><details")
				h.boolAttr("open", groupActive(group, page.Active))
				h.raw("><summary>")
				h.text(T(page.Loc, group))
				h.raw("</summary><ul>")
			}
		}
		h.raw("<li><a")
		h.href("href", item.URL)
		if item.Key == page.Active {
			h.attr("class", "active")
			h.attr("aria-current", "page")
		}
		h.raw(">")
		h.text(T(page.Loc, item.Label))
		h.raw("</a></li>")
	}
	if group != "" {
		h.raw("</ul></details></li>")
	}
	h.raw("</ul></nav></aside>")
}

func groupActive(group, active string) bool {
	for _, item := range navItems {
		if item.Group == group && item.Key == active {
			return true
		}
	}
	return false
}

func navbar(h *htmlWriter, page PageContext) {
	h.raw(`<header class="navbar">`)
	preferenceButton(h, "sidebar", "toggle", T(page.Loc, "nav.toggle_sidebar"), "btn btn-ghost sidebar-toggle")
	h.raw(`<span class="navbar-title">`)
	h.text(AppName())
	h.raw(`</span><div class="navbar-actions">`)

	h.raw(`<a class="badge-link"`)
	h.href("href", routepath.Notifications)
	h.attr("hx-get", routepath.NotificationsBadge)
	h.attr("hx-trigger", badgeTrigger)
	h.attr("hx-target", "this")
	h.attr("hx-swap", "innerHTML")
	h.raw(">")
	h.render(NotificationBadge(page.UnreadCount, page.Loc))
	h.raw("</a>")

	h.raw(`<details class="dropdown"><summary>`)
	h.text(ActiveLanguageLabel(page))
	h.raw(`</summary><ul class="dropdown-content">`)
	for _, option := range LanguageOptions(page) {
		h.raw("<li><a")
		h.href("href", LanguageURL(page, option.Tag))
		h.attr("hx-boost", "false")
		if option.Active {
			h.attr("class", "active")
		}
		h.raw(">")
		h.text(option.Label)
		h.raw("</a></li>")
	}
	h.raw("</ul></details>")

	darkLabel := T(page.Loc, "nav.dark_mode")
	if page.DarkMode {
		darkLabel = T(page.Loc, "nav.light_mode")
	}
	preferenceButton(h, "dark_mode", "toggle", darkLabel, "btn btn-ghost")

	if page.AdminEmail != "" {
		h.raw(`<span class="admin-email">`)
		h.text(page.AdminEmail)
		h.raw(`</span><form method="post"`)
		h.href("action", routepath.Logout)
		h.attr("hx-boost", "false")
		h.raw(`><button type="submit" class="btn btn-ghost">`)
		h.text(T(page.Loc, "nav.logout"))
		h.raw("</button></form>")
	}
	h.raw("</div></header>")
}

func preferenceButton(h *htmlWriter, name, value, label, class string) {
	h.raw(`<form method="post"`)
	h.href("action", routepath.Preferences)
	h.attr("hx-boost", "false")
	h.raw(`><input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`><button type="submit"`)
	h.attr("class", class)
	h.raw(">")
	h.text(label)
	h.raw("</button></form>")
}

// NotificationBadge renders the unread count shown in the navbar.
func NotificationBadge(unread int, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<span class="sr-only">`)
		h.text(T(loc, "nav.notifications"))
		h.raw("</span>")
		if unread > 0 {
			h.raw(`<span class="badge" data-unread="`, h.itoa(unread), `">`)
			h.text(h.itoa(unread))
			h.raw("</span>")
		}
	})
}

// Bare wraps body in a shell without navigation, for the login page.
func Bare(page PageContext, title string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!doctype html><html")
		h.attr("lang", page.Lang)
		if page.DarkMode {
			h.attr("class", "dark")
		}
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(PageTitle(title))
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"><script src="/static/app.js" defer></script></head><body class="bare"><main id="main">`)
		h.render(body)
		h.raw("</main></body></html>")
	})
}
