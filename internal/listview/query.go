package listview

import (
	"maps"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Query parameter names shared by every list page.
const (
	ParamSearch   = "q"
	ParamSort     = "sort"
	ParamDir      = "dir"
	ParamOrderBy  = "order_by"
	ParamFilter   = "filter"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// Query is the per-page list state: search text, filters, sort and page window.
//
// Every Set method that changes search, a filter, the sort or the expression
// resets Page to 1. Setting the value already held is not a change.
type Query struct {
	Search    string
	Filters   map[string]string
	SortField string
	SortDir   Dir
	Page      int
	PageSize  int
	Expr      string

	rejected []Problem
}

// Problem describes a query value that was ignored.
type Problem struct {
	Param string
	Value string
	Err   error
}

func (p Problem) Error() string {
	return p.Param + "=" + strconv.Quote(p.Value) + ": " + p.Err.Error()
}

var folder = cases.Fold()

// FoldText trims and case-folds text for search comparison.
func FoldText(text string) string {
	return folder.String(strings.TrimSpace(text))
}

// SetSearchText stores trimmed, case-folded search text.
func (q *Query) SetSearchText(text string) bool {
	folded := FoldText(text)
	if folded == q.Search {
		return false
	}
	q.Search = folded
	q.Page = 1
	return true
}

// SetFilter stores value for key; "" and "all" clear the constraint.
func (q *Query) SetFilter(key, value string) bool {
	value = strings.TrimSpace(value)
	current, ok := q.Filters[key]
	if value == "" || strings.EqualFold(value, "all") {
		if !ok {
			return false
		}
		delete(q.Filters, key)
		q.Page = 1
		return true
	}
	if ok && current == value {
		return false
	}
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}
	q.Filters[key] = value
	q.Page = 1
	return true
}

// SetSort stores the sort field and direction.
func (q *Query) SetSort(field string, dir Dir) bool {
	dir = ParseDir(string(dir))
	if field == q.SortField && dir == q.SortDir {
		return false
	}
	q.SortField = field
	q.SortDir = dir
	q.Page = 1
	return true
}

// SetExpression stores an advanced filter expression.
func (q *Query) SetExpression(expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == q.Expr {
		return false
	}
	q.Expr = expr
	q.Page = 1
	return true
}

// SetPageSize stores the page size; values below 1 select the page default.
func (q *Query) SetPageSize(size int) bool {
	if size < 1 {
		size = 0
	}
	size = min(size, MaxPageSize)
	if size == q.PageSize {
		return false
	}
	q.PageSize = size
	q.Page = 1
	return true
}

// SetPage moves the page window. Out-of-range pages are clamped by Apply.
func (q *Query) SetPage(page int) {
	q.Page = max(page, 1)
}

// Clone returns a deep copy.
func (q Query) Clone() Query {
	q.Filters = maps.Clone(q.Filters)
	q.rejected = nil
	return q
}

// NewQuery returns the initial query for the page.
func (d Descriptor[T]) NewQuery() Query {
	return Query{
		SortField: d.DefaultSort.Field,
		SortDir:   ParseDir(string(d.DefaultSort.Dir)),
		Page:      1,
	}
}

// Update applies request parameters to q through the Set operations. A page
// parameter is honoured only when nothing else changed.
func (d Descriptor[T]) Update(q *Query, values url.Values) {
	q.rejected = nil
	changed := false
	if values.Has(ParamSearch) {
		changed = q.SetSearchText(values.Get(ParamSearch)) || changed
	}
	for _, filter := range d.Filters {
		for _, param := range filter.Params() {
			if values.Has(param) {
				changed = q.SetFilter(param, values.Get(param)) || changed
			}
		}
	}
	switch {
	case strings.TrimSpace(values.Get(ParamOrderBy)) != "":
		sort, err := ParseOrderBy(values.Get(ParamOrderBy), d.SortFields)
		if err != nil {
			q.reject(ParamOrderBy, values.Get(ParamOrderBy), err)
			break
		}
		changed = q.SetSort(sort.Field, sort.Dir) || changed
	case values.Has(ParamSort) || values.Has(ParamDir):
		field := q.SortField
		if values.Has(ParamSort) {
			field = values.Get(ParamSort)
		}
		dir := q.SortDir
		if values.Has(ParamDir) {
			dir = ParseDir(values.Get(ParamDir))
		}
		if field == "" {
			field = d.DefaultSort.Field
		}
		if !d.Sortable(field) {
			q.reject(ParamSort, field, errUnknownSortField)
			break
		}
		changed = q.SetSort(field, dir) || changed
	}
	if values.Has(ParamFilter) {
		changed = q.SetExpression(values.Get(ParamFilter)) || changed
	}
	if values.Has(ParamPageSize) {
		raw := values.Get(ParamPageSize)
		if size, err := strconv.Atoi(raw); err == nil {
			changed = q.SetPageSize(size) || changed
		} else if raw != "" {
			q.reject(ParamPageSize, raw, err)
		}
	}
	if !changed && values.Has(ParamPage) {
		raw := values.Get(ParamPage)
		if page, err := strconv.Atoi(raw); err == nil {
			q.SetPage(page)
		} else if raw != "" {
			q.reject(ParamPage, raw, err)
		}
	}
}

func (q *Query) reject(param, value string, err error) {
	q.rejected = append(q.rejected, Problem{Param: param, Value: value, Err: err})
}

// Values encodes q as request parameters, omitting defaults.
func (d Descriptor[T]) Values(q Query) url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set(ParamSearch, q.Search)
	}
	for _, filter := range d.Filters {
		for _, param := range filter.Params() {
			if v, ok := q.Filters[param]; ok {
				values.Set(param, v)
			}
		}
	}
	if q.SortField != "" && (q.SortField != d.DefaultSort.Field || q.SortDir != ParseDir(string(d.DefaultSort.Dir))) {
		values.Set(ParamSort, q.SortField)
		values.Set(ParamDir, string(q.SortDir))
	}
	if q.Expr != "" {
		values.Set(ParamFilter, q.Expr)
	}
	if q.PageSize > 0 {
		values.Set(ParamPageSize, strconv.Itoa(q.PageSize))
	}
	if q.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(q.Page))
	}
	return values
}

// Problems reports query values that could not be used and therefore do not
// constrain the view.
func (d Descriptor[T]) Problems(q Query) []Problem {
	problems := append([]Problem(nil), q.rejected...)
	for _, filter := range d.Filters {
		for _, param := range filter.Params() {
			raw, ok := q.Filters[param]
			if !ok {
				continue
			}
			var err error
			switch filter.Kind {
			case FilterRange:
				_, err = strconv.ParseFloat(raw, 64)
			case FilterDateRange:
				_, err = parseDate(raw, d.location())
			}
			if err != nil {
				problems = append(problems, Problem{Param: param, Value: raw, Err: err})
			}
		}
	}
	if q.Expr != "" {
		if _, err := compileExpr(d, q.Expr); err != nil {
			problems = append(problems, Problem{Param: ParamFilter, Value: q.Expr, Err: err})
		}
	}
	return problems
}
