package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/platform/requestctx"
	"github.com/tidwall/gjson"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// fakeAPI serves canned responses keyed by "METHOD /escaped/path".
type fakeAPI struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T, responses map[string]cannedResponse) (*fakeAPI, *Client) {
	t.Helper()
	fake := &fakeAPI{responses: responses}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL + "/api/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return fake, client
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.EscapedPath(), "/api")
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   path,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	f.mu.Unlock()

	resp, ok := f.responses[r.Method+" "+path]
	if !ok {
		http.Error(w, `{"success":false,"message":"no route"}`, http.StatusNotFound)
		return
	}
	if resp.status == 0 {
		resp.status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("expected a request")
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "/api", "example.com/api"} {
		if _, err := NewClient(raw); err == nil {
			t.Fatalf("NewClient(%q) expected error", raw)
		}
	}
}

func TestNewClientNormalizesBaseURL(t *testing.T) {
	client, err := NewClient("https://api.example.com/v1/?debug=1#top", WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if got := client.BaseURL(); got != "https://api.example.com/v1" {
		t.Fatalf("base url = %q", got)
	}
	if client.timeout != time.Second {
		t.Fatalf("timeout = %v", client.timeout)
	}
}

func TestExpandRoute(t *testing.T) {
	tests := []struct {
		route   string
		args    []string
		want    string
		wantErr bool
	}{
		{route: "/users", want: "/users"},
		{route: "/users/{id}", args: []string{"u 1/x"}, want: "/users/u%201%2Fx"},
		{route: "/deletePost/{owner}/{post}", args: []string{"o1", "p1"}, want: "/deletePost/o1/p1"},
		{route: "/users/{id}", wantErr: true},
		{route: "/users/{id}", args: []string{" "}, wantErr: true},
		{route: "/users", args: []string{"extra"}, wantErr: true},
	}
	for _, tc := range tests {
		got, err := expandRoute(tc.route, tc.args...)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expandRoute(%q, %v) expected error", tc.route, tc.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("expandRoute(%q, %v): %v", tc.route, tc.args, err)
		}
		if got != tc.want {
			t.Fatalf("expandRoute(%q, %v) = %q, want %q", tc.route, tc.args, got, tc.want)
		}
	}
}

func TestListUsersDecodesEnvelopeAndDropsInvalid(t *testing.T) {
	fake, client := newFakeAPI(t, map[string]cannedResponse{
		"GET /users": {body: `{"success":true,"users":[
			{"_id":"u1","fullName":"Ana Lima","email":"ana@example.com","coins":"12.5","createdAt":"2024-03-01T10:00:00Z"},
			{"fullName":"No Id","email":"noid@example.com"},
			{"_id":"u2","username":"bob","coins":3,"createdAt":1709287200000}
		]}`},
	})
	ctx := requestctx.WithToken(context.Background(), "tok-1")

	users, err := client.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	if users[0].ID != "u1" || users[0].Coins != 12.5 || users[0].DisplayName() != "Ana Lima" {
		t.Fatalf("first user = %+v", users[0])
	}
	if users[1].DisplayName() != "bob" || users[1].CreatedAt.IsZero() {
		t.Fatalf("second user = %+v", users[1])
	}
	if got := fake.last(t).Auth; got != "Bearer tok-1" {
		t.Fatalf("authorization = %q", got)
	}
}

func TestListUsersAcceptsDataKeyAndBareArray(t *testing.T) {
	for name, body := range map[string]string{
		"data":  `{"success":true,"data":[{"_id":"u1","email":"a@example.com"}]}`,
		"array": `[{"_id":"u1","email":"a@example.com"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, client := newFakeAPI(t, map[string]cannedResponse{"GET /users": {body: body}})
			users, err := client.ListUsers(context.Background())
			if err != nil {
				t.Fatalf("list users: %v", err)
			}
			if len(users) != 1 || users[0].ID != "u1" {
				t.Fatalf("users = %+v", users)
			}
		})
	}
}

func TestDoMapsFailures(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"GET /users":          {body: `{"success":false,"message":"backend down"}`},
		"GET /posts":          {body: `not json`},
		"GET /allrooms":       {status: http.StatusUnauthorized, body: `{"message":"token expired"}`},
		"GET /room/r1":        {status: http.StatusNotFound, body: `{"success":false,"message":"room not found"}`},
		"GET /coin-payments":  {status: http.StatusInternalServerError},
		"GET /admin/packages": {body: `{"success":true,"packages":{"_id":"p1"}}`},
	})
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		code    apperrors.Code
		message string
	}{
		{"success false", func() error { _, err := client.ListUsers(ctx); return err }, apperrors.CodeTransport, "backend down"},
		{"invalid json", func() error { _, err := client.ListPosts(ctx); return err }, apperrors.CodeInvalidResponse, ""},
		{"unauthorized", func() error { _, err := client.ListRooms(ctx); return err }, apperrors.CodeUnauthorized, "token expired"},
		{"not found", func() error { _, err := client.GetRoom(ctx, "r1"); return err }, apperrors.CodeNotFound, "room not found"},
		{"server error", func() error { _, err := client.ListCoinPayments(ctx); return err }, apperrors.CodeTransport, ""},
		{"not a list", func() error { _, err := client.ListCoinPackages(ctx); return err }, apperrors.CodeInvalidResponse, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %v, want %v (%v)", got, tc.code, err)
			}
			if tc.message != "" && !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("error %q does not mention %q", err, tc.message)
			}
		})
	}
}

func TestDoTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	server.Close()

	_, err = client.ListUsers(context.Background())
	if !apperrors.HasCode(err, apperrors.CodeTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestDeletePostEscapesBothIDs(t *testing.T) {
	fake, client := newFakeAPI(t, map[string]cannedResponse{
		"DELETE /deletePost/owner%201/post%2F2": {body: `{"success":true}`},
	})
	if err := client.DeletePost(context.Background(), "owner 1", "post/2"); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if got := fake.last(t).Method; got != http.MethodDelete {
		t.Fatalf("method = %s", got)
	}
}

func TestDeleteWithEmptyIDIsNotSent(t *testing.T) {
	fake, client := newFakeAPI(t, nil)
	err := client.DeleteUser(context.Background(), "")
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fake.count() != 0 {
		t.Fatalf("requests = %d, want 0", fake.count())
	}
}

func TestCreateUserValidatesBeforeSending(t *testing.T) {
	fake, client := newFakeAPI(t, nil)
	negative := -1.0
	inputs := []UserInput{
		{Email: "a@example.com", Password: "secret123"},
		{FullName: "A", Email: "not-an-email", Password: "secret123"},
		{FullName: "A", Email: "a@example.com", Password: "secret123", Coins: &negative},
	}
	for _, in := range inputs {
		if _, _, err := client.CreateUser(context.Background(), in); !apperrors.HasCode(err, apperrors.CodeValidation) {
			t.Fatalf("CreateUser(%+v) expected validation error, got %v", in, err)
		}
	}
	if fake.count() != 0 {
		t.Fatalf("requests = %d, want 0", fake.count())
	}
}

func TestUpdateUserSendsOnlyChangedFields(t *testing.T) {
	fake, client := newFakeAPI(t, map[string]cannedResponse{
		"PUT /users/u1": {body: `{"success":true,"user":{"_id":"u1","email":"ana@example.com","coins":40}}`},
	})
	coins := 40.0
	user, ok, err := client.UpdateUser(context.Background(), "u1", UserInput{Status: "banned", Coins: &coins})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if !ok || user.Coins != 40 {
		t.Fatalf("user = %+v ok=%v", user, ok)
	}
	body := gjson.Parse(fake.last(t).Body)
	if body.Get("status").String() != "banned" || body.Get("coins").Float() != 40 {
		t.Fatalf("body = %s", body.Raw)
	}
	if body.Get("email").Exists() || body.Get("password").Exists() {
		t.Fatalf("body carries unchanged fields: %s", body.Raw)
	}
}

func TestCreateWithoutEchoedRecord(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"POST /admin/packages": {body: `{"success":true,"message":"created"}`},
	})
	_, ok, err := client.CreateCoinPackage(context.Background(), CoinPackageInput{Name: "Gold", Coins: 100, Price: 9.99})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	if ok {
		t.Fatal("expected no echoed record")
	}
}

func TestLogin(t *testing.T) {
	fake, client := newFakeAPI(t, map[string]cannedResponse{
		"POST /adminlogin": {body: `{"success":true,"token":"abc","admin":{"_id":"a1","role":"Admin","email":"root@example.com"}}`},
	})
	result, err := client.Login(context.Background(), " root@example.com ", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	want := LoginResult{Token: "abc", Role: "admin", Email: "root@example.com", AdminID: "a1"}
	if result != want {
		t.Fatalf("login = %+v, want %+v", result, want)
	}
	body := gjson.Parse(fake.last(t).Body)
	if body.Get("email").String() != "root@example.com" || body.Get("password").String() != "pw" {
		t.Fatalf("body = %s", body.Raw)
	}
	if fake.last(t).Auth != "" {
		t.Fatal("login must not carry a bearer token")
	}
}

func TestLoginRequiresToken(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"POST /adminlogin": {body: `{"success":true,"role":"admin"}`},
	})
	if _, err := client.Login(context.Background(), "a@example.com", "pw"); !apperrors.HasCode(err, apperrors.CodeInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
	if _, err := client.Login(context.Background(), "", "pw"); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdatePasswordValidation(t *testing.T) {
	fake, client := newFakeAPI(t, map[string]cannedResponse{
		"PUT /updatepassword": {body: `{"success":true}`},
	})
	ctx := context.Background()
	for _, tc := range []struct{ current, next string }{
		{"", "newpassword"},
		{"oldpassword", "short"},
		{"samepassword", "samepassword"},
	} {
		if err := client.UpdatePassword(ctx, "a@example.com", tc.current, tc.next); !apperrors.HasCode(err, apperrors.CodeValidation) {
			t.Fatalf("UpdatePassword(%q, %q) expected validation error, got %v", tc.current, tc.next, err)
		}
	}
	if err := client.UpdatePassword(ctx, "a@example.com", "oldpassword", "newpassword"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	body := gjson.Parse(fake.last(t).Body)
	if body.Get("newPassword").String() != "newpassword" {
		t.Fatalf("body = %s", body.Raw)
	}
}

func TestCampaignOrderApprovalStatus(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"GET /campaigns/payment/orderpayments": {body: `{"success":true,"data":[
			{"_id":"o1","adminApproval":"Approved","amount":10},
			{"_id":"o2","adminApproval":"weird","amount":5},
			{"_id":"o3","amount":5}
		]}`},
	})
	orders, err := client.ListCampaignOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 2 || orders[0].ApprovalStatus != ApprovalApproved || orders[1].ID != "o3" {
		t.Fatalf("orders = %+v", orders)
	}
}

func TestNotificationsUnreadCount(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"GET /allnotifications": {body: `{"success":true,"notifications":[
			{"_id":"n1","read":false},{"_id":"n2","read":true},{"_id":"n3","isRead":"false"},{"_id":"n4"}
		]}`},
	})
	notifications, err := client.ListNotifications(context.Background())
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if got := UnreadCount(notifications); got != 3 {
		t.Fatalf("unread = %d, want 3", got)
	}
}

func TestDownloadConfigToggle(t *testing.T) {
	fake, client := newFakeAPI(t, map[string]cannedResponse{
		"PATCH /download-config/android/toggle": {body: `{"success":true,"config":{"type":"android","version":"1.2","enabled":true}}`},
	})
	cfg, ok, err := client.ToggleDownloadConfig(context.Background(), "android")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !ok || !cfg.Enabled || cfg.Type != "android" {
		t.Fatalf("config = %+v ok=%v", cfg, ok)
	}
	if fake.last(t).Method != http.MethodPatch {
		t.Fatalf("method = %s", fake.last(t).Method)
	}
}

func TestDownloadInputValidation(t *testing.T) {
	fake, client := newFakeAPI(t, nil)
	_, _, err := client.CreateDownloadConfig(context.Background(), DownloadInput{Type: "ios", Version: "1.0", URL: "ftp://files"})
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fake.count() != 0 {
		t.Fatal("invalid input must not be sent")
	}
}

func TestAnalyticsSortedByDay(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"GET /analytics": {body: `{"success":true,"analytics":[
			{"date":"2024-03-02","users":2,"revenue":"10.5"},
			{"date":"2024-03-01","users":1,"revenue":4}
		]}`},
		"GET /date/2024-03-01": {body: `{"success":true,"data":[{"_id":"e1","type":"payment","amount":4}]}`},
	})
	report, err := client.GetAnalytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(report.Days) != 2 || report.Days[0].Key() != "2024-03-01" {
		t.Fatalf("days = %+v", report.Days)
	}
	if totals := report.Totals(); totals.Users != 3 || totals.Revenue != 14.5 {
		t.Fatalf("totals = %+v", totals)
	}

	breakdown, err := client.GetDayBreakdown(context.Background(), report.Days[0].Date)
	if err != nil {
		t.Fatalf("day breakdown: %v", err)
	}
	if len(breakdown.Entries) != 1 || breakdown.Entries[0].Amount != 4 {
		t.Fatalf("entries = %+v", breakdown.Entries)
	}
}

func TestGetDashboard(t *testing.T) {
	_, client := newFakeAPI(t, map[string]cannedResponse{
		"GET /admin/dashboard": {body: `{"success":true,"stats":{"totalUsers":120,"liveRooms":"4"}}`},
	})
	stats, err := client.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalUsers != 120 || stats.LiveRooms != 4 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "12.50", want: 12.5},
		{raw: " 0 ", want: 0},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
		{raw: "+Inf", wantErr: true},
		{raw: "-inf", wantErr: true},
		{raw: "1e400", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseAmount("price", tc.raw)
		if tc.wantErr {
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Fatalf("ParseAmount(%q) expected validation error, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, %v", tc.raw, got, err)
		}
	}
	if _, err := ParseCount("days", "1.5"); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected whole number error, got %v", err)
	}
}
