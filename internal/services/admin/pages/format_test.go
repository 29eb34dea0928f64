package pages

import (
	"testing"
	"time"
)

func TestFormatters(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money", Money(1234.5), "$1,234.50"},
		{"money negative", Money(-3), "-$3.00"},
		{"count", Count(1234567.4), "1,234,567"},
		{"decimal", Decimal(12.50), "12.5"},
		{"date", Date(now), "2024-03-01"},
		{"date zero", Date(time.Time{}), "-"},
		{"datetime", DateTime(now), "2024-03-01 12:00"},
		{"timestamp", Timestamp(now), "2024-03-01T12:00:00Z"},
		{"timestamp zero", Timestamp(time.Time{}), ""},
		{"relative", Relative(now.Add(-3*time.Hour), now), "3 hours ago"},
		{"text", Text(""), "-"},
		{"yes", YesNo(true), "label.yes"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}
