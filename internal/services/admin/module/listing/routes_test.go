package listing

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
	lastID   string
}

func (f *fakeService) HandleIndex(http.ResponseWriter, *http.Request)  { f.lastCall = "index" }
func (f *fakeService) HandleTable(http.ResponseWriter, *http.Request)  { f.lastCall = "table" }
func (f *fakeService) HandleExport(http.ResponseWriter, *http.Request) { f.lastCall = "export" }
func (f *fakeService) HandleCreate(http.ResponseWriter, *http.Request) { f.lastCall = "create" }

func (f *fakeService) HandleDetail(_ http.ResponseWriter, _ *http.Request, id string) {
	f.lastCall, f.lastID = "detail", id
}

func (f *fakeService) HandleDelete(_ http.ResponseWriter, _ *http.Request, id string) {
	f.lastCall, f.lastID = "delete", id
}

func (f *fakeService) HandleEdit(_ http.ResponseWriter, _ *http.Request, id string) {
	f.lastCall, f.lastID = "edit", id
}

func (f *fakeService) HandleToggle(_ http.ResponseWriter, _ *http.Request, id string) {
	f.lastCall, f.lastID = "toggle", id
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, "/payments/coins", svc)

	tests := []struct {
		path     string
		wantCode int
		wantCall string
		wantID   string
	}{
		{path: "/payments/coins", wantCode: http.StatusOK, wantCall: "index"},
		{path: "/payments/coins/table", wantCode: http.StatusOK, wantCall: "table"},
		{path: "/payments/coins/export.csv", wantCode: http.StatusOK, wantCall: "export"},
		{path: "/payments/coins/new", wantCode: http.StatusOK, wantCall: "create"},
		{path: "/payments/coins/p-1", wantCode: http.StatusOK, wantCall: "detail", wantID: "p-1"},
		{path: "/payments/coins/p%201", wantCode: http.StatusOK, wantCall: "detail", wantID: "p 1"},
		{path: "/payments/coins/p-1/delete", wantCode: http.StatusOK, wantCall: "delete", wantID: "p-1"},
		{path: "/payments/coins/p-1/edit", wantCode: http.StatusOK, wantCall: "edit", wantID: "p-1"},
		{path: "/payments/coins/p-1/toggle", wantCode: http.StatusOK, wantCall: "toggle", wantID: "p-1"},
		{path: "/payments/coins/p-1/", wantCode: http.StatusMovedPermanently},
		{path: "/payments/coins/p-1/refund", wantCode: http.StatusNotFound},
		{path: "/payments/coins/p-1/delete/extra", wantCode: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			svc.lastCall, svc.lastID = "", ""
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall {
				t.Fatalf("call = %q, want %q", svc.lastCall, tc.wantCall)
			}
			if svc.lastID != tc.wantID {
				t.Fatalf("id = %q, want %q", svc.lastID, tc.wantID)
			}
		})
	}
}

func TestRegisterRoutesIgnoresNil(t *testing.T) {
	RegisterRoutes(nil, "/users", &fakeService{})
	RegisterRoutes(http.NewServeMux(), "/users", nil)
	RegisterRoutes(http.NewServeMux(), "", &fakeService{})
}
