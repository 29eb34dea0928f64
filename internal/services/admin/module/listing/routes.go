// Package listing registers the routes shared by every list page.
package listing

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/module/sharedpath"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// Service defines list page handlers consumed by this route module. Create,
// edit and toggle answer 404 on pages that do not offer them.
type Service interface {
	HandleIndex(w http.ResponseWriter, r *http.Request)
	HandleTable(w http.ResponseWriter, r *http.Request)
	HandleExport(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleDetail(w http.ResponseWriter, r *http.Request, id string)
	HandleDelete(w http.ResponseWriter, r *http.Request, id string)
	HandleEdit(w http.ResponseWriter, r *http.Request, id string)
	HandleToggle(w http.ResponseWriter, r *http.Request, id string)
}

// RegisterRoutes wires the list page rooted at base into mux:
//
//	base                 index
//	base/table           HTMX table region
//	base/export.csv      CSV download
//	base/new             create form
//	base/{id}            detail
//	base/{id}/delete     confirm and delete
//	base/{id}/edit       edit form
//	base/{id}/toggle     enable or disable
func RegisterRoutes(mux *http.ServeMux, base string, service Service) {
	if mux == nil || service == nil || base == "" {
		return
	}
	mux.HandleFunc(base, service.HandleIndex)
	mux.HandleFunc(routepath.Table(base), service.HandleTable)
	mux.HandleFunc(routepath.Export(base), service.HandleExport)
	mux.HandleFunc(routepath.New(base), service.HandleCreate)
	prefix := routepath.Prefix(base)
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		HandleRecordPath(w, r, prefix, service)
	})
}

// HandleRecordPath parses record subroutes and dispatches to service handlers.
func HandleRecordPath(w http.ResponseWriter, r *http.Request, prefix string, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	if sharedpath.RedirectTrailingSlash(w, r) {
		return
	}
	parts := sharedpath.Suffix(r, prefix)
	switch {
	case len(parts) == 1:
		service.HandleDetail(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "delete":
		service.HandleDelete(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "edit":
		service.HandleEdit(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "toggle":
		service.HandleToggle(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}
