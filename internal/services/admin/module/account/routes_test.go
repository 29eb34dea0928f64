package account

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct{ lastCall string }

func (f *fakeService) HandleLogin(http.ResponseWriter, *http.Request)    { f.lastCall = "login" }
func (f *fakeService) HandleLogout(http.ResponseWriter, *http.Request)   { f.lastCall = "logout" }
func (f *fakeService) HandlePassword(http.ResponseWriter, *http.Request) { f.lastCall = "password" }
func (f *fakeService) HandlePreferences(http.ResponseWriter, *http.Request) {
	f.lastCall = "preferences"
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	for path, want := range map[string]string{
		"/login":       "login",
		"/logout":      "logout",
		"/password":    "password",
		"/preferences": "preferences",
	} {
		svc.lastCall = ""
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if svc.lastCall != want {
			t.Fatalf("%s dispatched to %q, want %q", path, svc.lastCall, want)
		}
	}
}
