package listview

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"
)

var errUnknownSortField = errors.New("unknown sort field")

// Page is one window of the filtered, sorted view.
type Page[T any] struct {
	Items      []T
	Index      int
	Size       int
	TotalPages int
	// TotalItems counts the filtered view.
	TotalItems int
	// SourceItems counts the collection before filtering.
	SourceItems int
	Sort        Sort
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Index > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Index < p.TotalPages }

// FirstItem is the 1-based position of the first item, or 0 when empty.
func (p Page[T]) FirstItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Index-1)*p.Size + 1
}

// LastItem is the 1-based position of the last item, or 0 when empty.
func (p Page[T]) LastItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.FirstItem() + len(p.Items) - 1
}

// Apply derives the page window for q. records is never modified.
func Apply[T any](d Descriptor[T], records []T, q Query) Page[T] {
	sorted, sort := view(d, records, q)

	size := q.PageSize
	if size < 1 {
		size = d.pageSize()
	}
	size = min(size, MaxPageSize)

	totalPages := max(1, (len(sorted)+size-1)/size)
	index := min(max(q.Page, 1), totalPages)
	start := min((index-1)*size, len(sorted))
	end := min(start+size, len(sorted))

	return Page[T]{
		Items:       sorted[start:end:end],
		Index:       index,
		Size:        size,
		TotalPages:  totalPages,
		TotalItems:  len(sorted),
		SourceItems: len(records),
		Sort:        sort,
	}
}

// View returns every record matching q in sorted order, across all pages.
func View[T any](d Descriptor[T], records []T, q Query) []T {
	sorted, _ := view(d, records, q)
	return sorted
}

func view[T any](d Descriptor[T], records []T, q Query) ([]T, Sort) {
	match := matcher(d, q)
	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		if match(rec) {
			filtered = append(filtered, rec)
		}
	}
	sort := effectiveSort(d, q)
	sortRecords(d, filtered, sort)
	return filtered, sort
}

func effectiveSort[T any](d Descriptor[T], q Query) Sort {
	if q.SortField != "" && d.Sortable(q.SortField) {
		return Sort{Field: q.SortField, Dir: ParseDir(string(q.SortDir))}
	}
	return Sort{Field: d.DefaultSort.Field, Dir: ParseDir(string(d.DefaultSort.Dir))}
}

// matcher ANDs the search predicate, every set filter and the expression.
func matcher[T any](d Descriptor[T], q Query) func(T) bool {
	var preds []func(T) bool
	if q.Search != "" {
		preds = append(preds, searchPredicate(d, q.Search))
	}
	loc := d.location()
	for _, filter := range d.Filters {
		field, ok := d.Fields[filter.Field]
		if !ok {
			continue
		}
		if pred := filterPredicate(filter, field, q.Filters, loc); pred != nil {
			preds = append(preds, pred)
		}
	}
	if q.Expr != "" {
		if pred, err := compileExpr(d, q.Expr); err == nil {
			preds = append(preds, pred)
		}
	}
	return func(rec T) bool {
		for _, pred := range preds {
			if !pred(rec) {
				return false
			}
		}
		return true
	}
}

func searchPredicate[T any](d Descriptor[T], needle string) func(T) bool {
	needle = FoldText(needle)
	fields := make([]Field[T], 0, len(d.SearchFields))
	for _, name := range d.SearchFields {
		if field, ok := d.Fields[name]; ok && field.kind == KindString {
			fields = append(fields, field)
		}
	}
	return func(rec T) bool {
		for _, field := range fields {
			if strings.Contains(folder.String(field.stringValue(rec)), needle) {
				return true
			}
		}
		return false
	}
}

// filterPredicate returns nil when the filter does not constrain.
func filterPredicate[T any](filter FilterDef, field Field[T], values map[string]string, loc *time.Location) func(T) bool {
	switch filter.Kind {
	case FilterEnum:
		want, ok := values[filter.Key]
		if !ok {
			return nil
		}
		return func(rec T) bool {
			if field.kind == KindBool {
				return strings.EqualFold(strconv.FormatBool(field.boolValue(rec)), want)
			}
			return strings.EqualFold(field.stringValue(rec), want)
		}
	case FilterRange:
		params := filter.Params()
		low, hasLow := parseBound(values, params[0])
		high, hasHigh := parseBound(values, params[1])
		if !hasLow && !hasHigh {
			return nil
		}
		return func(rec T) bool {
			v, _ := field.numberValue(rec)
			if hasLow && v < low {
				return false
			}
			if hasHigh && v > high {
				return false
			}
			return true
		}
	case FilterDateRange:
		params := filter.Params()
		from, hasFrom := parseDateBound(values, params[0], loc)
		to, hasTo := parseDateBound(values, params[1], loc)
		if !hasFrom && !hasTo {
			return nil
		}
		return func(rec T) bool {
			v, ok := field.timeValue(rec)
			if !ok {
				return false
			}
			day := truncateDay(v, loc)
			if hasFrom && day.Before(from) {
				return false
			}
			if hasTo && day.After(to) {
				return false
			}
			return true
		}
	default:
		return nil
	}
}

func parseBound(values map[string]string, key string) (float64, bool) {
	raw, ok := values[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDateBound(values map[string]string, key string, loc *time.Location) (time.Time, bool) {
	raw, ok := values[key]
	if !ok {
		return time.Time{}, false
	}
	v, err := parseDate(raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return v, true
}

func parseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
}

func truncateDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// sortRecords sorts in place, stably. Descending inverts the comparator.
func sortRecords[T any](d Descriptor[T], records []T, sort Sort) {
	field, ok := d.Fields[sort.Field]
	if !ok {
		return
	}
	compare := comparator(d, field, sort.Field)
	if sort.Dir == Desc {
		slices.SortStableFunc(records, func(a, b T) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(records, compare)
}

func comparator[T any](d Descriptor[T], field Field[T], name string) func(a, b T) int {
	switch field.kind {
	case KindNumber:
		return func(a, b T) int {
			av, _ := field.numberValue(a)
			bv, _ := field.numberValue(b)
			return cmp.Compare(av, bv)
		}
	case KindTime:
		fallback, hasFallback := d.Fields[d.DefaultSort.Field]
		hasFallback = hasFallback && fallback.kind == KindTime && d.DefaultSort.Field != name
		value := func(rec T) time.Time {
			if v, ok := field.timeValue(rec); ok {
				return v
			}
			if hasFallback {
				v, _ := fallback.timeValue(rec)
				return v
			}
			return time.Time{}
		}
		return func(a, b T) int {
			return value(a).Compare(value(b))
		}
	case KindBool:
		return func(a, b T) int {
			av, bv := field.boolValue(a), field.boolValue(b)
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	default:
		return func(a, b T) int {
			return strings.Compare(field.stringValue(a), field.stringValue(b))
		}
	}
}
