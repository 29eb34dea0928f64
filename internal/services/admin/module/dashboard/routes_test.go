package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct{ called bool }

func (f *fakeService) HandleDashboard(http.ResponseWriter, *http.Request) { f.called = true }

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !svc.called {
		t.Fatalf("dashboard not served: %d", rec.Code)
	}

	svc.called = false
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound || svc.called {
		t.Fatalf("unknown path = %d, called = %v", rec.Code, svc.called)
	}
}
