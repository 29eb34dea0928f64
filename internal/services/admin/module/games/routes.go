// Package games registers the spin wheel, slot machine and spin settings
// editors.
package games

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// Service defines game editor handlers consumed by this route module.
type Service interface {
	HandleWheel(w http.ResponseWriter, r *http.Request)
	HandleSlot(w http.ResponseWriter, r *http.Request)
	HandleSpinConfig(w http.ResponseWriter, r *http.Request)
	HandleClearSpins(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires the editors. They sit below the spin history prefix
// and take precedence as exact patterns.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.SpinWheel, service.HandleWheel)
	mux.HandleFunc(routepath.SpinSlot, service.HandleSlot)
	mux.HandleFunc(routepath.SpinConfig, service.HandleSpinConfig)
	mux.HandleFunc(routepath.SpinsClear, service.HandleClearSpins)
}
