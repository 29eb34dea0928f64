// Package admin parses admin console flags and launches the server.
package admin

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/socialadmin/internal/platform/cmd"
	"github.com/louisbranch/socialadmin/internal/platform/timeouts"
	"github.com/louisbranch/socialadmin/internal/services/admin"
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr      string        `env:"SOCIAL_ADMIN_HTTP_ADDR" envDefault:"localhost:8082"`
	APIBaseURL    string        `env:"SOCIAL_ADMIN_API_URL" envDefault:"http://localhost:3000/api"`
	DBPath        string        `env:"SOCIAL_ADMIN_DB_PATH" envDefault:"data/admin.db"`
	AdminRoles    string        `env:"SOCIAL_ADMIN_ROLES" envDefault:"admin"`
	SecureCookies bool          `env:"SOCIAL_ADMIN_SECURE_COOKIES"`
	APITimeout    time.Duration `env:"SOCIAL_ADMIN_API_TIMEOUT"`
	SessionSweep  time.Duration `env:"SOCIAL_ADMIN_SESSION_SWEEP" envDefault:"10m"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = timeouts.APIRequest
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "platform REST API base URL")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite path for sessions and preferences")
	fs.StringVar(&cfg.AdminRoles, "roles", cfg.AdminRoles, "comma-separated roles allowed to sign in")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "mark session cookies Secure")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "per-request API timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the admin console.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		server, err := admin.NewServer(ctx, admin.Config{
			HTTPAddr:      cfg.HTTPAddr,
			APIBaseURL:    cfg.APIBaseURL,
			DBPath:        cfg.DBPath,
			AdminRoles:    cfg.AdminRoles,
			SecureCookies: cfg.SecureCookies,
			APITimeout:    cfg.APITimeout,
			SessionSweep:  cfg.SessionSweep,
		})
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}
