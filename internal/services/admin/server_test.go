package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	"github.com/louisbranch/socialadmin/internal/services/admin/storage"
)

// TestListenAndServeNilServer verifies nil server returns an error.
func TestListenAndServeNilServer(t *testing.T) {
	var s *Server
	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
	s.Close()
}

func TestNewServerValidatesConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "admin.db")
	tests := map[string]Config{
		"missing http addr": {APIBaseURL: "http://api.test", DBPath: dbPath},
		"missing api url":   {HTTPAddr: "127.0.0.1:0", DBPath: dbPath},
		"relative api url":  {HTTPAddr: "127.0.0.1:0", APIBaseURL: "/api", DBPath: dbPath},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewServer(context.Background(), cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// TestListenAndServeStopsOnCancel verifies the server exits on context cancel.
func TestListenAndServeStopsOnCancel(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer apiServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewServer(ctx, Config{
		HTTPAddr:   "127.0.0.1:0",
		APIBaseURL: apiServer.URL,
		DBPath:     filepath.Join(t.TempDir(), "nested", "admin.db"),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe(ctx)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop on cancel")
	}
}

func TestSweepSessionsRemovesExpired(t *testing.T) {
	store, err := openAdminStore(filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expired := session.Session{ID: "old", Token: "t", Role: "admin", ExpiresAt: time.Now().Add(-time.Hour)}
	if err := store.PutSession(ctx, expired); err != nil {
		t.Fatalf("put session: %v", err)
	}

	s := &Server{store: store, sessionSweep: 10 * time.Millisecond}
	done := make(chan struct{})
	go func() {
		s.sweepSessions(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := store.GetSession(ctx, "old")
		if errors.Is(err, storage.ErrNotFound) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expired session still present: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done
}
