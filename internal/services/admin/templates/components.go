package templates

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/socialadmin/internal/platform/timeouts"
)

var (
	toastDismissMS = int(timeouts.ToastDismiss / time.Millisecond)
	badgeTrigger   = "load, every " + strconv.Itoa(int(timeouts.NotificationPoll/time.Second)) + "s"
)

// PageHeading holds header metadata for pages.
type PageHeading struct {
	// Title is the page heading.
	Title string
	// Breadcrumbs renders a path trail for the page.
	Breadcrumbs []Breadcrumb
	// ActionURL renders a CTA button when set.
	ActionURL string
	// ActionLabel is the CTA button label.
	ActionLabel string
}

// Breadcrumb represents a single breadcrumb item.
type Breadcrumb struct {
	// Label is the visible label.
	Label string
	// URL is the optional navigation target.
	URL string
}

// AppendQueryParam appends a single query parameter to a URL.
func AppendQueryParam(baseURL string, key string, value string) string {
	encodedKey := url.QueryEscape(key)
	encodedValue := url.QueryEscape(value)
	if strings.Contains(baseURL, "?") {
		return baseURL + "&" + encodedKey + "=" + encodedValue
	}
	return baseURL + "?" + encodedKey + "=" + encodedValue
}

// WithQuery joins base and an encoded query string.
func WithQuery(base string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return base
	}
	return base + "?" + encoded
}

// Heading renders the page title row with breadcrumbs and optional action.
func Heading(heading PageHeading) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="page-heading">`)
		if len(heading.Breadcrumbs) > 0 {
			h.raw(`<nav class="breadcrumbs"><ul>`)
			for _, crumb := range heading.Breadcrumbs {
				h.raw("<li>")
				if crumb.URL != "" {
					h.raw("<a")
					h.href("href", crumb.URL)
					h.raw(">")
					h.text(crumb.Label)
					h.raw("</a>")
				} else {
					h.text(crumb.Label)
				}
				h.raw("</li>")
			}
			h.raw("</ul></nav>")
		}
		h.element("h1", "page-title", heading.Title)
		if heading.ActionURL != "" {
			h.raw(`<a class="btn btn-primary"`)
			h.href("href", heading.ActionURL)
			h.raw(">")
			h.text(heading.ActionLabel)
			h.raw("</a>")
		}
		h.raw("</div>")
	})
}

// Toast renders a transient notice removed by app.js after DismissAfterMS.
func Toast(message string, isError bool, dismissAfterMS int) templ.Component {
	return component(func(h *htmlWriter) {
		if message == "" {
			return
		}
		class := "toast toast-success"
		if isError {
			class = "toast toast-error"
		}
		h.raw(`<div role="status"`)
		h.attr("class", class)
		h.attr("data-dismiss-after", h.itoa(dismissAfterMS))
		h.raw(">")
		h.text(message)
		h.raw("</div>")
	})
}

// ErrorBanner renders an inline failure notice with an optional retry link.
func ErrorBanner(message, retryURL, retryLabel string) templ.Component {
	return component(func(h *htmlWriter) {
		if message == "" {
			return
		}
		h.raw(`<div class="alert alert-error" role="alert"><span>`)
		h.text(message)
		h.raw("</span>")
		if retryURL != "" {
			h.raw(`<a class="btn btn-sm"`)
			h.href("href", retryURL)
			h.raw(">")
			h.text(retryLabel)
			h.raw("</a>")
		}
		h.raw("</div>")
	})
}

// EmptyState renders the placeholder shown when there is nothing to list.
func EmptyState(message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="empty-state"><p>`)
		h.text(message)
		h.raw("</p></div>")
	})
}
