package listview

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

// ExportCSV writes the filtered, sorted view of records (every page) as CSV:
// one header row, one row per record, then any summary rows padded or
// truncated to the header width.
func ExportCSV[T any](w io.Writer, d Descriptor[T], records []T, q Query) error {
	rows := View(d, records, q)
	width := len(d.Columns)

	cw := csv.NewWriter(w)
	header := make([]string, width)
	for i, column := range d.Columns {
		header[i] = column.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, width)
	for _, rec := range rows {
		for i, column := range d.Columns {
			row[i] = column.exportValue(rec)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if d.Summary != nil {
		for _, summary := range d.Summary(rows) {
			padded := make([]string, width)
			copy(padded, summary)
			if err := cw.Write(padded); err != nil {
				return fmt.Errorf("write csv summary: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename names an export file <name>-<group>.csv, using the date of
// now when group is empty.
func ExportFilename(name, group string, now time.Time) string {
	suffix := slug(group)
	if suffix == "" {
		suffix = now.Format(DateLayout)
	}
	base := slug(name)
	if base == "" {
		base = "export"
	}
	return base + "-" + suffix + ".csv"
}

func slug(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
