package pages

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	placeholder    = "-"
)

// Money renders an amount with thousands separators and two decimals.
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Count renders a whole number with thousands separators.
func Count(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// Decimal renders a number for export without formatting.
func Decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Date renders the calendar day of t.
func Date(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format(dateLayout)
}

// DateTime renders t to the minute.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format(dateTimeLayout)
}

// Timestamp renders t for export.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Relative renders t relative to now, e.g. "3 hours ago".
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Text falls back to the placeholder for empty values.
func Text(v string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// YesNo is the message key for a boolean cell.
func YesNo(v bool) string {
	if v {
		return "label.yes"
	}
	return "label.no"
}

// IsMessageKey reports whether a cell value is a message key rather than
// data.
func IsMessageKey(v string) bool {
	return v == "label.yes" || v == "label.no"
}
