// Package api is the console's client for the social platform REST API.
//
// Every response is decoded from the platform envelope
// {success, data | <resource>, message} into typed records that are validated
// at this boundary; records that fail validation are dropped and logged.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	platformotel "github.com/louisbranch/socialadmin/internal/platform/otel"
	"github.com/louisbranch/socialadmin/internal/platform/requestctx"
	"github.com/louisbranch/socialadmin/internal/platform/timeouts"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/socialadmin/internal/services/admin/api"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 16 << 20

// Client issues REST calls against the platform API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		timeout:    timeouts.APIRequest,
		tracer:     platformotel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint joins an already-escaped path onto the base URL.
func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + path
}

// do sends one request and returns the decoded envelope root. route is a
// path template such as "/users/{id}"; each {placeholder} is filled from args
// in order, path-escaped.
func (c *Client) do(ctx context.Context, method, route string, body []byte, args ...string) (gjson.Result, error) {
	path, err := expandRoute(route, args...)
	if err != nil {
		return gjson.Result{}, apperrors.Wrap(apperrors.CodeValidation, "build path", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, method+" "+route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return gjson.Result{}, apperrors.Wrap(apperrors.CodeTransport, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := requestctx.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return gjson.Result{}, apperrors.Wrap(apperrors.CodeTransport, method+" "+route, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return gjson.Result{}, apperrors.Wrap(apperrors.CodeTransport, "read "+route+" response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return gjson.Result{}, statusError(method, route, resp.StatusCode, raw)
	}

	root, err := parseEnvelope(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "envelope")
		return gjson.Result{}, err
	}
	return root, nil
}

func expandRoute(route string, args ...string) (string, error) {
	var b strings.Builder
	rest := route
	for _, arg := range args {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return "", fmt.Errorf("route %s has fewer placeholders than arguments", route)
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("route %s has an unterminated placeholder", route)
		}
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return "", fmt.Errorf("route %s: empty path argument", route)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(arg))
		rest = rest[open+closing+1:]
	}
	if strings.IndexByte(rest, '{') >= 0 {
		return "", fmt.Errorf("route %s has unfilled placeholders", route)
	}
	b.WriteString(rest)
	return b.String(), nil
}

func statusError(method, route string, status int, raw []byte) error {
	message := envelopeMessage(raw)
	if message == "" {
		message = http.StatusText(status)
	}
	metadata := map[string]string{
		"method": method,
		"route":  route,
		"status": fmt.Sprint(status),
	}
	switch status {
	case http.StatusNotFound:
		return apperrors.WithMetadata(apperrors.CodeNotFound, message, metadata)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.WithMetadata(apperrors.CodeUnauthorized, message, metadata)
	default:
		return apperrors.WithMetadata(apperrors.CodeTransport, message, metadata)
	}
}
