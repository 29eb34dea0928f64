// Package account registers sign-in, sign-out, password and preference routes.
package account

import (
	"net/http"

	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
)

// Service defines account route handlers consumed by this route module.
type Service interface {
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
	HandlePassword(w http.ResponseWriter, r *http.Request)
	HandlePreferences(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires account routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Login, service.HandleLogin)
	mux.HandleFunc(routepath.Logout, service.HandleLogout)
	mux.HandleFunc(routepath.Password, service.HandlePassword)
	mux.HandleFunc(routepath.Preferences, service.HandlePreferences)
}
