package admin

import (
	"net/http"
	"time"

	"github.com/louisbranch/socialadmin/internal/listview"
)

// parseDay reads an analytics day path segment. Unknown dates answer 404.
func parseDay(w http.ResponseWriter, r *http.Request, raw string) (time.Time, bool) {
	day, err := time.ParseInLocation(listview.DateLayout, raw, time.UTC)
	if err != nil {
		http.NotFound(w, r)
		return time.Time{}, false
	}
	return day, true
}

func (h *Handler) handleAnalyticsDay(w http.ResponseWriter, r *http.Request, raw string) {
	if day, ok := parseDay(w, r, raw); ok {
		h.dayPage(day).HandleIndex(w, r)
	}
}

func (h *Handler) handleAnalyticsDayTable(w http.ResponseWriter, r *http.Request, raw string) {
	if day, ok := parseDay(w, r, raw); ok {
		h.dayPage(day).HandleTable(w, r)
	}
}

func (h *Handler) handleAnalyticsDayExport(w http.ResponseWriter, r *http.Request, raw string) {
	if day, ok := parseDay(w, r, raw); ok {
		h.dayPage(day).HandleExport(w, r)
	}
}
