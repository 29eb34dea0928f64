package listview

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	// DefaultPageSize applies when a descriptor leaves PageSize unset.
	DefaultPageSize = 10
	// MaxPageSize caps any requested page size.
	MaxPageSize = 100
)

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// ParseDir normalizes a direction, defaulting to ascending.
func ParseDir(value string) Dir {
	if Dir(value) == Desc {
		return Desc
	}
	return Asc
}

// Opposite returns the other direction.
func (d Dir) Opposite() Dir {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Sort names a field and direction.
type Sort struct {
	Field string
	Dir   Dir
}

// FilterKind selects how a filter constrains its field.
type FilterKind int

const (
	// FilterEnum is an exact, case-insensitive match.
	FilterEnum FilterKind = iota
	// FilterRange is an inclusive numeric min/max pair.
	FilterRange
	// FilterDateRange is an inclusive from/to pair at day granularity.
	FilterDateRange
)

// DateLayout is the format of date range bounds.
const DateLayout = "2006-01-02"

// Option is one choice of an enum filter.
type Option struct {
	Value string
	Label string
}

// FilterDef declares one filter offered by a page.
type FilterDef struct {
	// Key is the query parameter stem. Range filters read <Key>_min and
	// <Key>_max; date ranges read <Key>_from and <Key>_to.
	Key     string
	Field   string
	Kind    FilterKind
	Label   string
	Options []Option
}

// Params returns the query parameters this filter reads.
func (f FilterDef) Params() []string {
	switch f.Kind {
	case FilterRange:
		return []string{f.Key + "_min", f.Key + "_max"}
	case FilterDateRange:
		return []string{f.Key + "_from", f.Key + "_to"}
	default:
		return []string{f.Key}
	}
}

// Column is one table and export column.
type Column[T any] struct {
	Header string
	// Value renders the table cell.
	Value func(T) string
	// Export overrides Value in CSV output when set.
	Export func(T) string
	// SortField makes the header a sort toggle when non-empty.
	SortField string
}

func (c Column[T]) exportValue(rec T) string {
	if c.Export != nil {
		return c.Export(rec)
	}
	return c.Value(rec)
}

// Descriptor is the declarative configuration of one list page.
type Descriptor[T any] struct {
	// Name identifies the page and prefixes export filenames.
	Name         string
	ID           func(T) string
	Fields       map[string]Field[T]
	SearchFields []string
	Filters      []FilterDef
	SortFields   []string
	// DefaultSort is used when the query names no known sort field. Its field
	// also backs missing time values while sorting.
	DefaultSort Sort
	Columns     []Column[T]
	// Summary returns optional trailing export rows for the filtered view.
	Summary  func([]T) [][]string
	PageSize int
	Location *time.Location
}

// Validate reports configuration mistakes.
func (d Descriptor[T]) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if d.ID == nil {
		errs = append(errs, errors.New("id accessor is required"))
	}
	for name, field := range d.Fields {
		if !field.valid() {
			errs = append(errs, fmt.Errorf("field %q has no accessor", name))
		}
	}
	for _, name := range d.SearchFields {
		field, ok := d.Fields[name]
		if !ok {
			errs = append(errs, fmt.Errorf("search field %q is not declared", name))
			continue
		}
		if field.kind != KindString {
			errs = append(errs, fmt.Errorf("search field %q must be a string", name))
		}
	}
	seen := map[string]bool{}
	for _, filter := range d.Filters {
		if filter.Key == "" {
			errs = append(errs, errors.New("filter key is required"))
			continue
		}
		if seen[filter.Key] {
			errs = append(errs, fmt.Errorf("filter %q is declared twice", filter.Key))
		}
		seen[filter.Key] = true
		field, ok := d.Fields[filter.Field]
		if !ok {
			errs = append(errs, fmt.Errorf("filter %q uses undeclared field %q", filter.Key, filter.Field))
			continue
		}
		if !filterAccepts(filter.Kind, field.kind) {
			errs = append(errs, fmt.Errorf("filter %q cannot constrain %s field %q", filter.Key, field.kind, filter.Field))
		}
	}
	for _, name := range d.SortFields {
		if _, ok := d.Fields[name]; !ok {
			errs = append(errs, fmt.Errorf("sort field %q is not declared", name))
		}
	}
	if !slices.Contains(d.SortFields, d.DefaultSort.Field) {
		errs = append(errs, fmt.Errorf("default sort %q is not a sort field", d.DefaultSort.Field))
	}
	for i, column := range d.Columns {
		if column.Value == nil {
			errs = append(errs, fmt.Errorf("column %d (%s) has no value", i, column.Header))
		}
		if column.SortField != "" && !slices.Contains(d.SortFields, column.SortField) {
			errs = append(errs, fmt.Errorf("column %q sorts by unknown field %q", column.Header, column.SortField))
		}
	}
	return errors.Join(errs...)
}

func filterAccepts(kind FilterKind, field Kind) bool {
	switch kind {
	case FilterEnum:
		return field == KindString || field == KindBool
	case FilterRange:
		return field == KindNumber
	case FilterDateRange:
		return field == KindTime
	default:
		return false
	}
}

func (d Descriptor[T]) pageSize() int {
	if d.PageSize < 1 {
		return DefaultPageSize
	}
	return min(d.PageSize, MaxPageSize)
}

func (d Descriptor[T]) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// Sortable reports whether field is in the sort whitelist.
func (d Descriptor[T]) Sortable(field string) bool {
	return slices.Contains(d.SortFields, field)
}

// Filter returns the filter declared under key.
func (d Descriptor[T]) Filter(key string) (FilterDef, bool) {
	for _, filter := range d.Filters {
		if filter.Key == key {
			return filter, true
		}
	}
	return FilterDef{}, false
}
