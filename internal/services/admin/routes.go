package admin

import (
	"embed"
	"io/fs"
	"net/http"

	accountmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/account"
	analyticsmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/analytics"
	dashboardmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/dashboard"
	gamesmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/games"
	listingmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/listing"
	notificationsmodule "github.com/louisbranch/socialadmin/internal/services/admin/module/notifications"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/httpmux"
)

//go:embed static
var staticFiles embed.FS

// routes assembles the admin mux. Everything except static assets, health
// and the login page sits behind the session gate.
func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	for base, service := range h.listServices() {
		listingmodule.RegisterRoutes(mux, base, service)
	}
	dashboardmodule.RegisterRoutes(mux, newDashboardModuleService(h))
	accountmodule.RegisterRoutes(mux, newAccountModuleService(h))
	gamesmodule.RegisterRoutes(mux, newGamesModuleService(h))
	notificationsmodule.RegisterRoutes(mux, newNotificationsModuleService(h))
	analyticsmodule.RegisterRoutes(mux, newAnalyticsModuleService(h))

	root := http.NewServeMux()
	if assets, err := fs.Sub(staticFiles, "static"); err == nil {
		httpmux.MountStatic(root, assets)
	}
	httpmux.MountHealth(root)
	httpmux.MountAdminRoutes(root, h.requireSession(mux))
	return root
}
