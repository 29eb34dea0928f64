package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
)

// DownloadInput carries the editable download config fields.
type DownloadInput struct {
	Type    string
	Version string
	URL     string
	Notes   string
	Enabled bool
}

func (in DownloadInput) validate(create bool) error {
	if create && strings.TrimSpace(in.Type) == "" {
		return apperrors.WithMetadata(apperrors.CodeValidation, "type is required", map[string]string{"field": "type"})
	}
	if strings.TrimSpace(in.Version) == "" {
		return apperrors.WithMetadata(apperrors.CodeValidation, "version is required", map[string]string{"field": "version"})
	}
	u, err := url.Parse(strings.TrimSpace(in.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.WithMetadata(apperrors.CodeValidation, "download url must be an http(s) url", map[string]string{"field": "url"})
	}
	return nil
}

// ListDownloadConfigs loads every download config.
func (c *Client) ListDownloadConfigs(ctx context.Context) ([]DownloadConfig, error) {
	root, err := c.do(ctx, http.MethodGet, "/download-config", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "configs", "downloadConfigs", "config")
	if err != nil {
		return nil, err
	}
	return decodeList("download config", items, decodeDownloadConfig)
}

// GetDownloadConfig loads the config for one app type.
func (c *Client) GetDownloadConfig(ctx context.Context, kind string) (DownloadConfig, error) {
	root, err := c.do(ctx, http.MethodGet, "/download-config/{type}", nil, kind)
	if err != nil {
		return DownloadConfig{}, err
	}
	item, err := payload(root, "config", "downloadConfig")
	if err != nil {
		return DownloadConfig{}, err
	}
	return decodeOne("download config", item, decodeDownloadConfig)
}

// CreateDownloadConfig adds a config for a new app type.
func (c *Client) CreateDownloadConfig(ctx context.Context, in DownloadInput) (DownloadConfig, bool, error) {
	if err := in.validate(true); err != nil {
		return DownloadConfig{}, false, err
	}
	body, err := encodeBody(
		field{"type", strings.TrimSpace(in.Type)},
		field{"version", strings.TrimSpace(in.Version)},
		field{"url", strings.TrimSpace(in.URL)},
		field{"notes", optional(in.Notes)},
		field{"enabled", in.Enabled},
	)
	if err != nil {
		return DownloadConfig{}, false, err
	}
	root, err := c.do(ctx, http.MethodPost, "/download-config", body)
	if err != nil {
		return DownloadConfig{}, false, err
	}
	return decodeResult("download config", root, decodeDownloadConfig, "config", "downloadConfig")
}

// UpdateDownloadConfig replaces the config of an existing app type.
func (c *Client) UpdateDownloadConfig(ctx context.Context, kind string, in DownloadInput) (DownloadConfig, bool, error) {
	if err := in.validate(false); err != nil {
		return DownloadConfig{}, false, err
	}
	body, err := encodeBody(
		field{"version", strings.TrimSpace(in.Version)},
		field{"url", strings.TrimSpace(in.URL)},
		field{"notes", optional(in.Notes)},
		field{"enabled", in.Enabled},
	)
	if err != nil {
		return DownloadConfig{}, false, err
	}
	root, err := c.do(ctx, http.MethodPut, "/download-config/{type}", body, kind)
	if err != nil {
		return DownloadConfig{}, false, err
	}
	return decodeResult("download config", root, decodeDownloadConfig, "config", "downloadConfig")
}

// DeleteDownloadConfig removes the config of an app type.
func (c *Client) DeleteDownloadConfig(ctx context.Context, kind string) error {
	_, err := c.do(ctx, http.MethodDelete, "/download-config/{type}", nil, kind)
	return err
}

// ToggleDownloadConfig flips the enabled flag of an app type.
func (c *Client) ToggleDownloadConfig(ctx context.Context, kind string) (DownloadConfig, bool, error) {
	root, err := c.do(ctx, http.MethodPatch, "/download-config/{type}/toggle", nil, kind)
	if err != nil {
		return DownloadConfig{}, false, err
	}
	return decodeResult("download config", root, decodeDownloadConfig, "config", "downloadConfig")
}
