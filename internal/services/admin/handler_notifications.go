package admin

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
)

// handleNotificationsBadge refreshes the notifications collection and
// renders the unread count. A failed poll keeps the last known count.
func (h *Handler) handleNotificationsBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, _ := h.localizer(w, r)
	page := h.lists.notifications
	st := page.state(r)
	_ = page.load(r.Context(), st)
	unread := 0
	if st.coll.Loaded() {
		unread = api.UnreadCount(st.coll.Records())
	}
	htmx.RenderFragment(w, r, templates.NotificationBadge(unread, loc))
}

func (h *Handler) handleNotificationsClear(w http.ResponseWriter, r *http.Request) {
	h.handleClear(w, r, clearAction{
		title:   "confirm.clear_notifications_title",
		message: "confirm.clear_notifications_message",
		action:  routepath.NotificationsClear,
		cancel:  routepath.Notifications,
		navKey:  notificationsKey,
		clear:   h.api.ClearNotifications,
		done: func(r *http.Request) {
			st := h.lists.notifications.state(r)
			st.coll.Replace(nil)
			st.coll.MarkStale()
		},
	})
}
