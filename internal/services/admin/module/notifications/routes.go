// Package notifications registers the navbar badge and bulk clear routes.
package notifications

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// Service defines notification handlers consumed by this route module.
type Service interface {
	HandleBadge(w http.ResponseWriter, r *http.Request)
	HandleClear(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires notification routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.NotificationsBadge, service.HandleBadge)
	mux.HandleFunc(routepath.NotificationsClear, service.HandleClear)
}
