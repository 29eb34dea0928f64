package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	adminsqlite "github.com/louisbranch/socialadmin/internal/services/admin/storage/sqlite"
)

const testOrigin = "http://example.com"

// fakeAPI is a scripted platform API. Routes answer from canned JSON unless
// a status override is set for them.
type fakeAPI struct {
	mu       sync.Mutex
	hits     map[string]int
	bodies   map[string]string
	statuses map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		hits: map[string]int{},
		bodies: map[string]string{
			"POST /adminlogin": `{"success":true,"token":"tok","role":"admin","email":"root@example.com","_id":"a1"}`,
			"GET /users": `{"success":true,"users":[
				{"_id":"u1","fullName":"Ana Souza","email":"ana@example.com","username":"ana","role":"user","status":"active","coins":120,"createdAt":"2026-01-02T10:00:00Z"},
				{"_id":"u2","fullName":"Bruno Lima","email":"bruno@example.com","username":"bruno","role":"creator","status":"banned","coins":5,"createdAt":"2026-01-03T10:00:00Z"}
			]}`,
			"GET /users/u1":                         `{"success":true,"user":{"_id":"u1","fullName":"Ana Souza","email":"ana@example.com"}}`,
			"PUT /users/u1":                         `{"success":true}`,
			"DELETE /users/u1":                      `{"success":true}`,
			"GET /coin-payments":                    `{"success":true,"data":[]}`,
			"GET /allnotifications":                 `{"success":true,"notifications":[{"_id":"n1","title":"a","read":false},{"_id":"n2","title":"b","read":false},{"_id":"n3","title":"c","read":true}]}`,
			"GET /admin/dashboard":                  `{"success":true,"stats":{"totalUsers":2,"activeUsers":1,"totalPosts":7}}`,
			"GET /download-config":                  `{"success":true,"configs":[{"type":"android","version":"1.0.0","url":"https://cdn.example.com/a.apk","enabled":true}]}`,
			"PATCH /download-config/android/toggle": `{"success":true}`,
		},
		statuses: map[string]int{},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.hits[key]++
	status, overridden := f.statuses[key]
	body, known := f.bodies[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case overridden:
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"success":false,"message":"scripted failure"}`))
	case !known:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
	default:
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeAPI) fail(key string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[key] = status
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

type testEnv struct {
	api     *fakeAPI
	handler *Handler
	routes  http.Handler
	store   *adminsqlite.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := newFakeAPI()
	apiServer := httptest.NewServer(fake)
	t.Cleanup(apiServer.Close)

	client, err := api.NewClient(apiServer.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store, err := adminsqlite.Open(filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	h := newHandler(client, store, Options{})
	return &testEnv{api: fake, handler: h, routes: h.routes(), store: store}
}

// signIn stores a session for role and returns its cookie.
func (e *testEnv) signIn(t *testing.T, role string, expiresAt time.Time) *http.Cookie {
	t.Helper()
	s, err := session.New("tok", role, "root@example.com", "a1", time.Now())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.ExpiresAt = expiresAt
	if err := e.store.PutSession(context.Background(), s); err != nil {
		t.Fatalf("put session: %v", err)
	}
	return session.Cookie(s, false)
}

func (e *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.routes.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(httptest.NewRequest(http.MethodGet, target, nil), cookie)
}

func (e *testEnv) post(t *testing.T, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", testOrigin)
	return e.do(req, cookie)
}

func TestSessionGateRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/users?q=ana", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	location, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if location.Path != "/login" || location.Query().Get("next") != "/users?q=ana" {
		t.Fatalf("location = %s", location)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/table", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Current-URL", "http://example.com/posts")
	rec = env.do(req, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("htmx status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/login?next=%2Fposts" {
		t.Fatalf("HX-Redirect = %q", got)
	}
	if env.api.count("GET /users") != 0 {
		t.Fatal("gate must not reach the API")
	}
}

func TestHealthBypassesGate(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestExpiredSessionIsRemoved(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(-time.Minute))

	rec := env.get(t, "/users", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if _, err := env.store.GetSession(context.Background(), cookie.Value); err == nil {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestSessionWithForeignRoleIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "user", time.Now().Add(time.Hour))

	rec := env.get(t, "/users", cookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestLoginCreatesSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"secret"},
		"next":     {"/users"},
	}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/users" {
		t.Fatalf("location = %q", got)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie")
	}
	stored, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if stored.Token != "tok" || stored.Role != "admin" {
		t.Fatalf("stored session = %+v", stored)
	}

	rec = env.get(t, "/login", cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("signed-in login = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*fakeAPI)
		origin string
		want   int
	}{
		{name: "bad credentials", setup: func(f *fakeAPI) { f.fail("POST /adminlogin", http.StatusUnauthorized) }, origin: testOrigin, want: http.StatusUnauthorized},
		{name: "role not allowed", setup: func(f *fakeAPI) {
			f.bodies["POST /adminlogin"] = `{"success":true,"token":"tok","role":"user"}`
		}, origin: testOrigin, want: http.StatusForbidden},
		{name: "api down", setup: func(f *fakeAPI) { f.fail("POST /adminlogin", http.StatusInternalServerError) }, origin: testOrigin, want: http.StatusBadGateway},
		{name: "cross origin", setup: func(*fakeAPI) {}, origin: "http://evil.test", want: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			tc.setup(env.api)
			form := url.Values{"email": {"root@example.com"}, "password": {"secret"}}
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Origin", tc.origin)
			rec := env.do(req, nil)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			for _, c := range rec.Result().Cookies() {
				if c.Name == session.CookieName && c.Value != "" {
					t.Fatal("no session cookie expected")
				}
			}
		})
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.get(t, "/users", cookie)
	if env.handler.views.len() == 0 {
		t.Fatal("expected cached list state")
	}

	rec := env.post(t, "/logout", nil, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("logout = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if _, err := env.store.GetSession(context.Background(), cookie.Value); err == nil {
		t.Fatal("expected session to be deleted")
	}
	if env.handler.views.len() != 0 {
		t.Fatal("expected cached list state to be dropped")
	}
}

func TestUsersSearchFiltersRowsAndExport(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	rec := env.get(t, "/users?q=ana", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ana Souza") || strings.Contains(body, "Bruno Lima") {
		t.Fatalf("search not applied:\n%s", body)
	}

	rec = env.get(t, "/users/export.csv?q=ana", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="users-`) {
		t.Fatalf("content disposition = %q", got)
	}
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("csv rows = %d, want header plus one row: %v", len(records), records)
	}
	if records[0][0] != "Name" || records[1][0] != "Ana Souza" || records[1][1] != "ana@example.com" {
		t.Fatalf("csv = %v", records)
	}
	if got := env.api.count("GET /users"); got != 1 {
		t.Fatalf("users fetched %d times, want 1", got)
	}
}

func TestUsersTableReusesCacheUntilRefresh(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	env.get(t, "/users", cookie)
	rec := env.get(t, "/users/table?sort=email&dir=asc", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("table status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Index(body, "ana@example.com") > strings.Index(body, "bruno@example.com") {
		t.Fatal("expected rows sorted by email ascending")
	}
	if got := env.api.count("GET /users"); got != 1 {
		t.Fatalf("users fetched %d times, want 1", got)
	}
	env.get(t, "/users/table?refresh=1", cookie)
	if got := env.api.count("GET /users"); got != 2 {
		t.Fatalf("users fetched %d times after refresh, want 2", got)
	}
}

func TestListFetchFailureKeepsLastRows(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	env.api.fail("GET /users", http.StatusInternalServerError)
	rec := env.get(t, "/users", cookie)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("first failure status = %d, want %d", rec.Code, http.StatusBadGateway)
	}

	env.api.mu.Lock()
	delete(env.api.statuses, "GET /users")
	env.api.mu.Unlock()
	env.get(t, "/users", cookie)

	env.api.fail("GET /users", http.StatusInternalServerError)
	rec = env.get(t, "/users", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("stale status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ana Souza") || !strings.Contains(body, "The platform API could not be reached.") {
		t.Fatalf("expected stale rows under an error banner:\n%s", body)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.get(t, "/users", cookie)

	rec := env.get(t, "/users/u1/delete", cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Delete Ana Souza?") {
		t.Fatalf("confirm page = %d:\n%s", rec.Code, rec.Body.String())
	}

	rec = env.post(t, "/users/u1/delete", url.Values{}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed status = %d", rec.Code)
	}
	if env.api.count("DELETE /users/u1") != 0 {
		t.Fatal("unconfirmed delete reached the API")
	}

	rec = env.post(t, "/users/u1/delete", url.Values{"confirm": {"yes"}}, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/users?notice=deleted" {
		t.Fatalf("confirmed delete = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if env.api.count("DELETE /users/u1") != 1 {
		t.Fatal("expected one DELETE call")
	}
	st := env.handler.lists.users.state(requestWithSession(t, env, cookie))
	if _, found := st.coll.Find("u1"); found {
		t.Fatal("expected deleted record to leave the cache")
	}

	rec = env.get(t, "/users?notice=deleted", cookie)
	if !strings.Contains(rec.Body.String(), "Deleted successfully.") {
		t.Fatal("expected deleted toast")
	}
}

func TestDeleteFailureKeepsRecord(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.get(t, "/users", cookie)
	env.api.fail("DELETE /users/u1", http.StatusInternalServerError)

	rec := env.post(t, "/users/u1/delete", url.Values{"confirm": {"yes"}}, cookie)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	st := env.handler.lists.users.state(requestWithSession(t, env, cookie))
	if _, found := st.coll.Find("u1"); !found {
		t.Fatal("record must stay cached when the API rejects the delete")
	}
}

func TestUserEditRejectsBadCoinsLocally(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	rec := env.post(t, "/users/u1/edit", url.Values{"full_name": {"Ana"}, "coins": {"lots"}}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if env.api.count("PUT /users/u1") != 0 {
		t.Fatal("invalid coins must not reach the API")
	}

	rec = env.post(t, "/users/u1/edit", url.Values{"full_name": {"Ana"}, "coins": {"40"}}, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/users?notice=updated" {
		t.Fatalf("valid edit = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if env.api.count("PUT /users/u1") != 1 {
		t.Fatal("expected one PUT call")
	}
}

func TestDownloadToggle(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.get(t, "/downloads", cookie)

	rec := env.get(t, "/downloads/android/toggle", cookie)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET toggle status = %d", rec.Code)
	}

	rec = env.post(t, "/downloads/android/toggle", nil, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/downloads?notice=toggled" {
		t.Fatalf("toggle = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	st := env.handler.lists.downloads.state(requestWithSession(t, env, cookie))
	cfg, found := st.coll.Find("android")
	if !found || cfg.Enabled {
		t.Fatalf("expected cached config flipped to disabled, got %+v (found %v)", cfg, found)
	}

	env.api.fail("PATCH /download-config/android/toggle", http.StatusInternalServerError)
	rec = env.post(t, "/downloads/android/toggle", nil, cookie)
	if rec.Header().Get("Location") != "/downloads?notice=failed" {
		t.Fatalf("failed toggle location = %q", rec.Header().Get("Location"))
	}
}

func TestDashboardToleratesPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.api.fail("GET /admin/dashboard", http.StatusInternalServerError)

	rec := env.get(t, "/", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "The platform API could not be reached.") || !strings.Contains(body, "Newest users") {
		t.Fatalf("expected error banner and recent users:\n%s", body)
	}
}

func TestDashboardAllSourcesDown(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	for _, key := range []string{"GET /admin/dashboard", "GET /users", "GET /coin-payments", "GET /allnotifications"} {
		env.api.fail(key, http.StatusInternalServerError)
	}
	rec := env.get(t, "/", cookie)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestNotificationsBadgeCountsUnread(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	rec := env.get(t, "/notifications/badge", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-unread="2"`) {
		t.Fatalf("badge = %s", rec.Body.String())
	}
	if count, ok := env.handler.cachedUnread(cookie.Value); !ok || count != 2 {
		t.Fatalf("cachedUnread = %d, %v", count, ok)
	}
}

func TestListStateIsPerSession(t *testing.T) {
	env := newTestEnv(t)
	first := env.signIn(t, "admin", time.Now().Add(time.Hour))
	second := env.signIn(t, "admin", time.Now().Add(time.Hour))

	env.get(t, "/users?q=ana", first)
	rec := env.get(t, "/users/table", second)
	if !strings.Contains(rec.Body.String(), "Bruno Lima") {
		t.Fatal("second session must not inherit the first session's search")
	}
}

// requestWithSession builds a request whose context carries the session
// referenced by cookie, for reading list state directly.
func requestWithSession(t *testing.T, env *testEnv, cookie *http.Cookie) *http.Request {
	t.Helper()
	s, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(session.WithSession(req.Context(), s))
}

func TestMutationRefetchesStaleList(t *testing.T) {
	env := newTestEnv(t)
	env.api.bodies["POST /users"] = `{"success":true}`
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.get(t, "/users", cookie)

	rec := env.post(t, "/users/new", url.Values{
		"full_name": {"Carla Dias"},
		"email":     {"carla@example.com"},
		"password":  {"secret123"},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create = %d", rec.Code)
	}
	env.get(t, "/users/table", cookie)
	if got := env.api.count("GET /users"); got != 2 {
		t.Fatalf("users fetched %d times after create, want 2", got)
	}
	env.get(t, "/users/table", cookie)
	if got := env.api.count("GET /users"); got != 2 {
		t.Fatalf("users fetched %d times once fresh, want 2", got)
	}

	env.post(t, "/users/u1/delete", url.Values{"confirm": {"yes"}}, cookie)
	rec = env.get(t, "/users/export.csv", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if got := env.api.count("GET /users"); got != 3 {
		t.Fatalf("users fetched %d times after delete, want 3", got)
	}
}

func TestDownloadToggleRefetchesTable(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	env.get(t, "/downloads", cookie)

	env.post(t, "/downloads/android/toggle", nil, cookie)
	rec := env.get(t, "/downloads/table", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("table status = %d", rec.Code)
	}
	if got := env.api.count("GET /download-config"); got != 2 {
		t.Fatalf("download configs fetched %d times, want 2", got)
	}
}

func wheelForm(probabilities ...string) url.Values {
	form := url.Values{}
	for i, p := range probabilities {
		form.Add("label", fmt.Sprintf("Segment %d", i+1))
		form.Add("reward_type", "coins")
		form.Add("value", "10")
		form.Add("probability", p)
		form.Add("color", "#ffcc00")
	}
	return form
}

func TestGameConfigForms(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		form     url.Values
		apiKey   string
		want     int
		location string
		body     string
	}{
		{name: "wheel saved", target: "/spins/wheel", form: wheelForm("60", "40"), apiKey: "POST /wheel", want: http.StatusSeeOther, location: "/spins/wheel?notice=saved"},
		{name: "wheel total off", target: "/spins/wheel", form: wheelForm("60", "30"), apiKey: "POST /wheel", want: http.StatusUnprocessableEntity, body: "want 100"},
		{name: "wheel nan probability", target: "/spins/wheel", form: wheelForm("NaN", "40"), apiKey: "POST /wheel", want: http.StatusUnprocessableEntity, body: "probability must be a number"},
		{name: "slot saved", target: "/spins/slot", form: url.Values{
			"reels": {"3"}, "symbol": {"cherry"}, "payout": {"2"}, "weight": {"10"},
		}, apiKey: "POST /slot", want: http.StatusSeeOther, location: "/spins/slot?notice=saved"},
		{name: "slot bad payout", target: "/spins/slot", form: url.Values{
			"reels": {"3"}, "symbol": {"cherry"}, "payout": {"abc"}, "weight": {"10"},
		}, apiKey: "POST /slot", want: http.StatusUnprocessableEntity, body: "payout must be a number"},
		{name: "spin config saved", target: "/spins/config", form: url.Values{
			"enabled": {"on"}, "daily_free_spins": {"3"}, "spin_cost": {"1.5"}, "cooldown_minutes": {"10"},
		}, apiKey: "POST /config", want: http.StatusSeeOther, location: "/spins/config?notice=saved"},
		{name: "spin config nan cost", target: "/spins/config", form: url.Values{
			"daily_free_spins": {"3"}, "spin_cost": {"NaN"}, "cooldown_minutes": {"10"},
		}, apiKey: "POST /config", want: http.StatusUnprocessableEntity, body: "spin_cost must be a number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.bodies[tc.apiKey] = `{"success":true}`
			cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

			rec := env.post(t, tc.target, tc.form, cookie)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d:\n%s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.location != "" {
				if got := rec.Header().Get("Location"); got != tc.location {
					t.Fatalf("location = %q, want %q", got, tc.location)
				}
				if env.api.count(tc.apiKey) != 1 {
					t.Fatalf("expected one %s call", tc.apiKey)
				}
				return
			}
			if env.api.count(tc.apiKey) != 0 {
				t.Fatalf("invalid form reached %s", tc.apiKey)
			}
			if !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("expected %q inline:\n%s", tc.body, rec.Body.String())
			}
		})
	}
}

func TestCreateForms(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		form     url.Values
		apiKey   string
		want     int
		location string
	}{
		{name: "coin package", target: "/packages/coins/new", form: url.Values{
			"name": {"Starter"}, "coins": {"100"}, "price": {"1.99"}, "bonus": {"5"}, "active": {"on"},
		}, apiKey: "POST /admin/packages", want: http.StatusSeeOther, location: "/packages/coins?notice=created"},
		{name: "coin package text price", target: "/packages/coins/new", form: url.Values{
			"name": {"Starter"}, "coins": {"100"}, "price": {"cheap"},
		}, apiKey: "POST /admin/packages", want: http.StatusUnprocessableEntity},
		{name: "coin package nan price", target: "/packages/coins/new", form: url.Values{
			"name": {"Starter"}, "coins": {"100"}, "price": {"NaN"},
		}, apiKey: "POST /admin/packages", want: http.StatusUnprocessableEntity},
		{name: "campaign package", target: "/packages/campaigns/new", form: url.Values{
			"name": {"Boost"}, "price": {"9.90"}, "duration_days": {"7"}, "reach": {"1000"},
		}, apiKey: "POST /campaign-packages", want: http.StatusSeeOther, location: "/packages/campaigns?notice=created"},
		{name: "campaign package text price", target: "/packages/campaigns/new", form: url.Values{
			"name": {"Boost"}, "price": {"free"}, "duration_days": {"7"},
		}, apiKey: "POST /campaign-packages", want: http.StatusUnprocessableEntity},
		{name: "user", target: "/users/new", form: url.Values{
			"full_name": {"Carla Dias"}, "email": {"carla@example.com"}, "password": {"secret123"}, "role": {"creator"},
		}, apiKey: "POST /users", want: http.StatusSeeOther, location: "/users?notice=created"},
		{name: "user without password", target: "/users/new", form: url.Values{
			"full_name": {"Carla Dias"}, "email": {"carla@example.com"},
		}, apiKey: "POST /users", want: http.StatusUnprocessableEntity},
		{name: "user bad email", target: "/users/new", form: url.Values{
			"full_name": {"Carla Dias"}, "email": {"carla"}, "password": {"secret123"},
		}, apiKey: "POST /users", want: http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.bodies[tc.apiKey] = `{"success":true}`
			cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

			rec := env.post(t, tc.target, tc.form, cookie)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d:\n%s", rec.Code, tc.want, rec.Body.String())
			}
			wantCalls := 0
			if tc.location != "" {
				wantCalls = 1
				if got := rec.Header().Get("Location"); got != tc.location {
					t.Fatalf("location = %q, want %q", got, tc.location)
				}
			}
			if got := env.api.count(tc.apiKey); got != wantCalls {
				t.Fatalf("%s called %d times, want %d", tc.apiKey, got, wantCalls)
			}
		})
	}
}

func TestAnalyticsDayPageAndExport(t *testing.T) {
	env := newTestEnv(t)
	env.api.bodies["GET /date/2026-01-02"] = `{"success":true,"entries":[
		{"_id":"e1","type":"signup","user":"Ana Souza","detail":"joined","amount":0,"createdAt":"2026-01-02T09:00:00Z"},
		{"_id":"e2","type":"payment","user":"Bruno Lima","detail":"coins","amount":4.5,"createdAt":"2026-01-02T11:00:00Z"}
	]}`
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	rec := env.get(t, "/analytics/2026-01-02", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("day status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ana Souza") || !strings.Contains(body, "Bruno Lima") {
		t.Fatalf("expected day entries:\n%s", body)
	}

	rec = env.get(t, "/analytics/2026-01-02/export.csv?type=payment", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="analytics-2026-01-02.csv"`) {
		t.Fatalf("content disposition = %q", got)
	}
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) < 2 || records[1][2] != "Bruno Lima" {
		t.Fatalf("csv = %v", records)
	}
	for _, row := range records {
		if len(row) > 2 && row[2] == "Ana Souza" {
			t.Fatalf("filter not applied to export: %v", records)
		}
	}
	if got := env.api.count("GET /date/2026-01-02"); got != 1 {
		t.Fatalf("day fetched %d times, want 1", got)
	}

	rec = env.get(t, "/analytics/2026-13-40", cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("bad date status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	env.api.bodies["PUT /updatepassword"] = `{"success":true}`
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))

	rec := env.post(t, "/password", url.Values{
		"current_password": {"oldsecret"},
		"new_password":     {"newsecret1"},
		"confirm_password": {"newsecret2"},
	}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatch status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), "Passwords do not match.") {
		t.Fatalf("expected mismatch error:\n%s", rec.Body.String())
	}
	if env.api.count("PUT /updatepassword") != 0 {
		t.Fatal("mismatched passwords reached the API")
	}

	rec = env.post(t, "/password", url.Values{
		"current_password": {"oldsecret"},
		"new_password":     {"newsecret1"},
		"confirm_password": {"newsecret1"},
	}, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/password?notice=saved" {
		t.Fatalf("change = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if env.api.count("PUT /updatepassword") != 1 {
		t.Fatal("expected one password update")
	}
}

func TestPreferenceToggles(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "admin", time.Now().Add(time.Hour))
	s, err := env.store.GetSession(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	key := preferenceKey(s)

	toggle := func(field string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/preferences", strings.NewReader(url.Values{field: {"1"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Origin", testOrigin)
		req.Header.Set("Referer", testOrigin+"/users?q=ana")
		return env.do(req, cookie)
	}

	rec := toggle("dark_mode")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/users?q=ana" {
		t.Fatalf("toggle = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	prefs, err := env.store.GetPreferences(context.Background(), key)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if !prefs.DarkMode || prefs.SidebarCollapsed {
		t.Fatalf("after dark mode toggle = %+v", prefs)
	}

	toggle("sidebar")
	toggle("dark_mode")
	prefs, err = env.store.GetPreferences(context.Background(), key)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if prefs.DarkMode || !prefs.SidebarCollapsed {
		t.Fatalf("after second round = %+v", prefs)
	}
}
