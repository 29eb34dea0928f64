// Package sharedpath holds the path helpers every admin route module uses.
package sharedpath

import (
	"net/http"
	"strings"
)

// SplitPathParts normalizes a slash-delimited route suffix into non-empty path segments.
func SplitPathParts(path string) []string {
	parts := make([]string, 0, 4)
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Suffix returns the segments of r's path below prefix.
func Suffix(r *http.Request, prefix string) []string {
	return SplitPathParts(strings.TrimPrefix(r.URL.Path, prefix))
}

// RedirectTrailingSlash redirects "/users/" to "/users", keeping the query.
// It reports whether a redirect was written.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}
	canonical := strings.TrimRight(r.URL.Path, "/")
	if canonical == "" {
		canonical = "/"
	}
	if canonical == r.URL.Path {
		return false
	}
	target := *r.URL
	target.Path = canonical
	target.RawPath = ""
	http.Redirect(w, r, target.RequestURI(), http.StatusMovedPermanently)
	return true
}
