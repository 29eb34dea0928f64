// Package dashboard registers the landing page.
package dashboard

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// Service defines dashboard route handlers consumed by this route module.
type Service interface {
	HandleDashboard(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires the dashboard at the root path. Unknown paths that
// fall through to the root pattern answer 404.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routepath.Root {
			http.NotFound(w, r)
			return
		}
		service.HandleDashboard(w, r)
	})
}
