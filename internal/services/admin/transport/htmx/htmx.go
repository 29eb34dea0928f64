// Package htmx renders admin pages for both full navigations and HTMX swaps.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Request and response headers used by the htmx client.
const (
	RequestHeader  = "HX-Request"
	PushURLHeader  = "HX-Push-Url"
	RedirectHeader = "HX-Redirect"
)

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// PushURL asks htmx to record target in the browser history. The list pages
// use it so the address bar tracks the canonical query.
func PushURL(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) && target != "" {
		w.Header().Set(PushURLHeader, target)
	}
}

// Redirect sends the client to target with a full navigation.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) {
		w.Header().Set(RedirectHeader, target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RenderPage writes full for normal navigations. HTMX requests receive only the
// <main> content of full, prefixed with a <title> so the tab title follows the
// swap. A nil full falls back to fragment.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment, full templ.Component, title string) {
	RenderPageStatus(w, r, fragment, full, title, http.StatusOK)
}

// RenderPageStatus is RenderPage with an explicit status code.
func RenderPageStatus(w http.ResponseWriter, r *http.Request, fragment, full templ.Component, title string, status int) {
	if full == nil {
		full = fragment
	}
	if full == nil {
		return
	}
	if !IsHTMXRequest(r) {
		templ.Handler(full, templ.WithStatus(status)).ServeHTTP(w, r)
		return
	}

	capture := &captureWriter{header: http.Header{}, status: status}
	templ.Handler(full, templ.WithStatus(status)).ServeHTTP(capture, r)

	body := capture.body.Bytes()
	if content, ok := mainContent(body); ok {
		body = content
	}
	if tag := TitleTag(title); tag != "" && !bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		body = append([]byte(tag), body...)
	}
	for key, values := range capture.header {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				w.Header().Add(key, value)
			}
			continue
		}
		for _, value := range values {
			w.Header().Set(key, value)
		}
	}
	if capture.status != http.StatusOK {
		w.WriteHeader(capture.status)
	}
	_, _ = w.Write(body)
}

// RenderFragment writes c alone, for swaps that target an inner region.
func RenderFragment(w http.ResponseWriter, r *http.Request, c templ.Component) {
	templ.Handler(c).ServeHTTP(w, r)
}

type captureWriter struct {
	header http.Header
	status int
	wrote  bool
	body   bytes.Buffer
}

func (w *captureWriter) Header() http.Header { return w.header }

func (w *captureWriter) WriteHeader(status int) {
	if w.wrote {
		return
	}
	w.wrote = true
	w.status = status
}

func (w *captureWriter) Write(p []byte) (int, error) {
	return w.body.Write(p)
}

func mainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	open := bytes.IndexByte(body[start:], '>')
	if open < 0 {
		return nil, false
	}
	contentStart := start + open + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
