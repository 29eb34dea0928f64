// Package analytics registers the daily analytics list and the per-day
// breakdown pages.
package analytics

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/module/sharedpath"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// Service defines analytics handlers consumed by this route module.
type Service interface {
	HandleDays(w http.ResponseWriter, r *http.Request)
	HandleDaysTable(w http.ResponseWriter, r *http.Request)
	HandleDaysExport(w http.ResponseWriter, r *http.Request)
	HandleDay(w http.ResponseWriter, r *http.Request, date string)
	HandleDayTable(w http.ResponseWriter, r *http.Request, date string)
	HandleDayExport(w http.ResponseWriter, r *http.Request, date string)
}

// RegisterRoutes wires analytics routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Analytics, service.HandleDays)
	mux.HandleFunc(routepath.Table(routepath.Analytics), service.HandleDaysTable)
	mux.HandleFunc(routepath.Export(routepath.Analytics), service.HandleDaysExport)
	mux.HandleFunc(routepath.Prefix(routepath.Analytics), func(w http.ResponseWriter, r *http.Request) {
		HandleDayPath(w, r, service)
	})
}

// HandleDayPath dispatches /analytics/{date}[/table|/export.csv].
func HandleDayPath(w http.ResponseWriter, r *http.Request, service Service) {
	if sharedpath.RedirectTrailingSlash(w, r) {
		return
	}
	parts := sharedpath.Suffix(r, routepath.Prefix(routepath.Analytics))
	switch {
	case len(parts) == 1:
		service.HandleDay(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "table":
		service.HandleDayTable(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "export.csv":
		service.HandleDayExport(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}
