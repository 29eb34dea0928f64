package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
)

// Analytics is the daily activity report, oldest day first.
type Analytics struct {
	Days []AnalyticsDay
}

// Totals sums every day of the report.
func (a Analytics) Totals() AnalyticsDay {
	var total AnalyticsDay
	for _, d := range a.Days {
		total.Users += d.Users
		total.Posts += d.Posts
		total.Payments += d.Payments
		total.Revenue += d.Revenue
		total.Spins += d.Spins
	}
	return total
}

// DayBreakdown is every activity record of a single day.
type DayBreakdown struct {
	Date    time.Time
	Entries []DayEntry
}

// GetAnalytics loads the daily activity report.
func (c *Client) GetAnalytics(ctx context.Context) (Analytics, error) {
	root, err := c.do(ctx, http.MethodGet, "/analytics", nil)
	if err != nil {
		return Analytics{}, err
	}
	items, err := payload(root, "analytics", "days")
	if err != nil {
		return Analytics{}, err
	}
	days, err := decodeList("analytics day", items, decodeAnalyticsDay)
	if err != nil {
		return Analytics{}, err
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return Analytics{Days: days}, nil
}

// GetDayBreakdown loads the activity of one calendar day.
func (c *Client) GetDayBreakdown(ctx context.Context, day time.Time) (DayBreakdown, error) {
	if day.IsZero() {
		return DayBreakdown{}, apperrors.New(apperrors.CodeValidation, "date is required")
	}
	root, err := c.do(ctx, http.MethodGet, "/date/{date}", nil, day.Format("2006-01-02"))
	if err != nil {
		return DayBreakdown{}, err
	}
	items, err := payload(root, "entries", "records", "activities")
	if err != nil {
		return DayBreakdown{}, err
	}
	entries, err := decodeList("day entry", items, decodeDayEntry)
	if err != nil {
		return DayBreakdown{}, err
	}
	return DayBreakdown{Date: day, Entries: entries}, nil
}

// GetDashboard loads the headline numbers.
func (c *Client) GetDashboard(ctx context.Context) (DashboardStats, error) {
	root, err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil)
	if err != nil {
		return DashboardStats{}, err
	}
	item, err := payload(root, "stats", "dashboard")
	if err != nil {
		return DashboardStats{}, err
	}
	return decodeOne("dashboard", item, decodeDashboardStats)
}
