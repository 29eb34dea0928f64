package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/socialadmin/internal/platform/timeouts"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	adminsqlite "github.com/louisbranch/socialadmin/internal/services/admin/storage/sqlite"
)

// defaultSessionSweep is how often expired sessions are purged from the store.
const defaultSessionSweep = 10 * time.Minute

// Config defines the inputs for the admin console process.
type Config struct {
	HTTPAddr string
	// APIBaseURL is the platform REST API root.
	APIBaseURL string
	// DBPath locates the sqlite file holding sessions and preferences.
	DBPath string
	// AdminRoles is a comma-separated list of roles allowed to sign in.
	AdminRoles    string
	SecureCookies bool
	APITimeout    time.Duration
	SessionSweep  time.Duration
}

// Server hosts the admin console.
type Server struct {
	httpAddr     string
	client       *api.Client
	store        *adminsqlite.Store
	httpServer   *http.Server
	sessionSweep time.Duration
	closeOnce    sync.Once
}

// NewServer builds a configured admin server. The API reachability check runs in the
// background so the console starts even while the API is still coming up.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.DBPath == "" {
		config.DBPath = filepath.Join("data", "admin.db")
	}
	if config.SessionSweep <= 0 {
		config.SessionSweep = defaultSessionSweep
	}

	client, err := api.NewClient(config.APIBaseURL, api.WithTimeout(config.APITimeout))
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	store, err := openAdminStore(config.DBPath)
	if err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		if err := client.CheckReachable(ctx); err != nil && ctx.Err() == nil {
			log.Printf("api reachability: %s unreachable: %v", client.BaseURL(), err)
		}
	}()

	handler := NewHandler(client, store, Options{
		Roles:         session.ParseRoles(config.AdminRoles),
		SecureCookies: config.SecureCookies,
	})
	return &Server{
		httpAddr: httpAddr,
		client:   client,
		store:    store,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sessionSweep: config.SessionSweep,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepSessions(sweepCtx)

	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s (api %s)", s.httpAddr, s.client.BaseURL())
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// sweepSessions purges expired sessions until ctx ends.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.sessionSweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := s.store.DeleteExpiredSessions(ctx, now)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("session sweep: %v", err)
				}
				continue
			}
			if removed > 0 {
				log.Printf("session sweep: removed %d expired sessions", removed)
			}
		}
	}
}

// Close releases the session store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				log.Printf("close admin store: %v", err)
			}
		}
	})
}

func openAdminStore(path string) (*adminsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := adminsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open admin sqlite store: %w", err)
	}
	return store, nil
}
