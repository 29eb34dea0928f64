package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/louisbranch/socialadmin/internal/listview"
	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/louisbranch/socialadmin/internal/services/admin/api"
	"github.com/louisbranch/socialadmin/internal/services/admin/pages"
	"github.com/louisbranch/socialadmin/internal/services/admin/routepath"
	"github.com/louisbranch/socialadmin/internal/services/admin/session"
	"github.com/louisbranch/socialadmin/internal/services/admin/templates"
	"github.com/louisbranch/socialadmin/internal/services/admin/transport/htmx"
	"golang.org/x/text/message"
)

// refreshParam forces a re-fetch of the page collection.
const refreshParam = "refresh"

// pageSizes are the choices offered under every table.
var pageSizes = []int{10, 25, 50, 100}

// listState is the cached collection and query of one page for one session.
type listState[T any] struct {
	mu    sync.Mutex
	coll  *listview.Collection[T]
	query listview.Query
}

// listPage serves one declarative list page: index, table partial, CSV
// export, detail and delete confirmation.
type listPage[T any] struct {
	h *Handler
	// key names the page in view state and the sidebar.
	key        string
	base       string
	title      string
	emptyKey   string
	searchKey  string
	descriptor listview.Descriptor[T]
	fetch      func(ctx context.Context) ([]T, error)
	// get loads one record from the API; nil serves detail from the cache.
	get func(ctx context.Context, id string) (T, error)
	// remove deletes a record; nil disables delete. rec is the cached
	// record when present.
	remove  func(ctx context.Context, id string, rec T) error
	fields  func(loc *message.Printer, rec T) []templates.DetailField
	subject func(rec T) string
	// decorate adds per-row actions such as edit or toggle.
	decorate func(loc *message.Printer, rec T, row *templates.RowView)
	actions  func(loc *message.Printer) []templates.ActionView
	// creatable shows the create button linking to base/new.
	creatable bool
	// exportGroup names the export file suffix; empty uses today's date.
	exportGroup string
	// breadcrumbs prefix the page heading.
	breadcrumbs []templates.Breadcrumb
	// navKey overrides key for sidebar highlighting.
	navKey string
	// detailURL overrides the row link; nil links to base/{id}.
	detailURL func(id string) string
}

func (p *listPage[T]) state(r *http.Request) *listState[T] {
	s, _ := session.FromContext(r.Context())
	value := p.h.views.load(viewStateKey(s.ID, p.key), func() any {
		return &listState[T]{
			coll:  listview.NewCollection(p.descriptor.ID),
			query: p.descriptor.NewQuery(),
		}
	})
	return value.(*listState[T])
}

// update applies the request parameters to the stored query and returns a
// snapshot.
func (p *listPage[T]) update(st *listState[T], values url.Values) listview.Query {
	st.mu.Lock()
	defer st.mu.Unlock()
	p.descriptor.Update(&st.query, values)
	return st.query.Clone()
}

// problems reports ignored parameters of the last update.
func (p *listPage[T]) problems(st *listState[T]) []listview.Problem {
	st.mu.Lock()
	defer st.mu.Unlock()
	return p.descriptor.Problems(st.query)
}

// load fetches the collection. A superseded fetch is not an error: the newer
// request will render its own result.
func (p *listPage[T]) load(ctx context.Context, st *listState[T]) error {
	err := st.coll.Load(ctx, p.fetch)
	if err == nil || errors.Is(err, listview.ErrSuperseded) {
		return nil
	}
	log.Printf("list %s: %v", p.descriptor.Name, err)
	return err
}

// needsLoad reports whether the cached collection must be fetched before it
// is served: it was never loaded, or a mutation left it stale.
func (p *listPage[T]) needsLoad(st *listState[T]) bool {
	return !st.coll.Loaded() || st.coll.Stale()
}

// crumbs localizes the breadcrumb prefix.
func (p *listPage[T]) crumbs(loc *message.Printer) []templates.Breadcrumb {
	out := make([]templates.Breadcrumb, 0, len(p.breadcrumbs)+2)
	for _, crumb := range p.breadcrumbs {
		out = append(out, templates.Breadcrumb{Label: loc.Sprintf(crumb.Label), URL: crumb.URL})
	}
	return out
}

func (p *listPage[T]) pageKey() string {
	if p.navKey != "" {
		return p.navKey
	}
	return p.key
}

// HandleIndex renders the full page. Every mount re-fetches; the last known
// rows stay visible under the error banner when the fetch fails.
func (p *listPage[T]) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, lang := p.h.localizer(w, r)
	st := p.state(r)
	q := p.update(st, r.URL.Query())
	err := p.load(r.Context(), st)

	view := p.view(loc, st, q, err)
	view.Toast, view.ToastError = noticeMessage(loc, r)
	pageCtx := p.h.pageContext(lang, loc, r, p.pageKey())
	status := http.StatusOK
	if err != nil && !st.coll.Loaded() {
		status = http.StatusBadGateway
	}
	htmx.RenderPageStatus(w, r,
		templates.ListPage(view, loc),
		templates.ListFullPage(view, pageCtx),
		templates.PageTitle(view.Heading.Title),
		status,
	)
}

// HandleTable renders the table region for HTMX query changes, reusing the
// cached collection unless it was never loaded, a mutation marked it stale
// or a refresh is asked for.
func (p *listPage[T]) HandleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, _ := p.h.localizer(w, r)
	st := p.state(r)
	q := p.update(st, r.URL.Query())
	var err error
	if p.needsLoad(st) || r.URL.Query().Get(refreshParam) == "1" {
		err = p.load(r.Context(), st)
	}
	view := p.view(loc, st, q, err)
	htmx.PushURL(w, r, templates.WithQuery(p.base, p.descriptor.Values(q)))
	htmx.RenderFragment(w, r, templates.ListTable(view, loc))
}

// HandleExport streams the filtered, sorted view as CSV.
func (p *listPage[T]) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, _ := p.h.localizer(w, r)
	st := p.state(r)
	q := p.update(st, r.URL.Query())
	if p.needsLoad(st) {
		if err := p.load(r.Context(), st); err != nil && !st.coll.Loaded() {
			http.Error(w, errorMessage(loc, err), http.StatusBadGateway)
			return
		}
	}

	d := p.descriptor
	d.Columns = slices.Clone(d.Columns)
	for i := range d.Columns {
		d.Columns[i].Header = loc.Sprintf(d.Columns[i].Header)
	}
	filename := listview.ExportFilename(d.Name, p.exportGroup, p.h.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := listview.ExportCSV(w, d, st.coll.Records(), q); err != nil {
		log.Printf("export %s: %v", d.Name, err)
	}
}

// HandleDetail renders one record. A missing record renders the empty state.
func (p *listPage[T]) HandleDetail(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, lang := p.h.localizer(w, r)
	st := p.state(r)
	view := templates.DetailView{
		Heading: templates.PageHeading{
			Title:       loc.Sprintf(p.title),
			Breadcrumbs: append(p.crumbs(loc), templates.Breadcrumb{Label: loc.Sprintf(p.title), URL: p.base}, templates.Breadcrumb{Label: id}),
		},
		BackURL: p.base,
	}
	status := http.StatusOK

	rec, found, err := p.find(r.Context(), st, id)
	switch {
	case err != nil:
		view.Error = errorMessage(loc, err)
		view.RetryURL = routepath.Detail(p.base, id)
		status = http.StatusBadGateway
	case !found:
		view.Message = loc.Sprintf("detail.not_found")
		status = http.StatusNotFound
	default:
		if p.subject != nil {
			view.Heading.Title = p.subject(rec)
		}
		if p.fields != nil {
			view.Fields = p.fields(loc, rec)
		} else {
			view.Fields = p.columnFields(loc, rec)
		}
		if p.remove != nil {
			view.DeleteURL = routepath.Delete(p.base, id)
		}
		if p.decorate != nil {
			var row templates.RowView
			p.decorate(loc, rec, &row)
			view.EditURL = row.EditURL
		}
	}
	pageCtx := p.h.pageContext(lang, loc, r, p.pageKey())
	htmx.RenderPageStatus(w, r,
		templates.DetailPage(view, loc),
		templates.DetailFullPage(view, pageCtx),
		templates.PageTitle(view.Heading.Title),
		status,
	)
}

// find resolves id through the API when the page has a detail endpoint,
// otherwise through the cached collection.
func (p *listPage[T]) find(ctx context.Context, st *listState[T], id string) (T, bool, error) {
	var zero T
	if p.get != nil {
		rec, err := p.get(ctx, id)
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return zero, false, nil
		}
		if err != nil {
			log.Printf("get %s %s: %v", p.descriptor.Name, id, err)
			return zero, false, err
		}
		st.coll.Upsert(rec)
		return rec, true, nil
	}
	if p.needsLoad(st) {
		if err := p.load(ctx, st); err != nil && !st.coll.Loaded() {
			return zero, false, err
		}
	}
	rec, ok := st.coll.Find(id)
	return rec, ok, nil
}

func (p *listPage[T]) columnFields(loc *message.Printer, rec T) []templates.DetailField {
	fields := make([]templates.DetailField, 0, len(p.descriptor.Columns))
	for _, column := range p.descriptor.Columns {
		fields = append(fields, templates.DetailField{
			Label: loc.Sprintf(column.Header),
			Value: cellText(loc, column.Value(rec)),
		})
	}
	return fields
}

// HandleDelete asks for confirmation on GET and deletes on a confirmed POST.
// On success the record is removed from the cache and the collection marked
// stale; on failure nothing local changes.
func (p *listPage[T]) HandleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if p.remove == nil {
		http.NotFound(w, r)
		return
	}
	loc, lang := p.h.localizer(w, r)
	st := p.state(r)
	rec, found := st.coll.Find(id)
	subject := id
	if found && p.subject != nil {
		subject = p.subject(rec)
	}
	view := templates.ConfirmView{
		Heading:   templates.PageHeading{Title: loc.Sprintf("confirm.delete_title")},
		Message:   loc.Sprintf("confirm.delete_message", subject),
		ActionURL: routepath.Delete(p.base, id),
		CancelURL: p.base,
	}
	render := func(status int) {
		pageCtx := p.h.pageContext(lang, loc, r, p.pageKey())
		htmx.RenderPageStatus(w, r,
			templates.ConfirmPage(view, loc),
			templates.ConfirmFullPage(view, pageCtx),
			templates.PageTitle(view.Heading.Title),
			status,
		)
	}

	switch r.Method {
	case http.MethodGet:
		render(http.StatusOK)
	case http.MethodPost:
		if !requireSameOrigin(w, r, loc) {
			return
		}
		if r.FormValue("confirm") != "yes" {
			view.Error = loc.Sprintf("error.confirm_required")
			render(http.StatusBadRequest)
			return
		}
		if err := p.remove(r.Context(), id, rec); err != nil {
			log.Printf("delete %s %s: %v", p.descriptor.Name, id, err)
			view.Error = errorMessage(loc, err)
			render(http.StatusBadGateway)
			return
		}
		st.coll.RemoveByID(id)
		st.coll.MarkStale()
		htmx.Redirect(w, r, withNotice(p.base, "deleted"))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// view derives the template model from the cached collection and q.
func (p *listPage[T]) view(loc *message.Printer, st *listState[T], q listview.Query, fetchErr error) templates.ListView {
	d := p.descriptor
	values := d.Values(q)
	page := listview.Apply(d, st.coll.Records(), q)

	view := templates.ListView{
		Heading: templates.PageHeading{
			Title:       loc.Sprintf(p.title),
			Breadcrumbs: p.crumbs(loc),
		},
		PageURL:     p.base,
		TableURL:    routepath.Table(p.base),
		ExportURL:   templates.WithQuery(routepath.Export(p.base), values),
		SearchLabel: loc.Sprintf(p.searchKey),
		Search:      q.Search,
		Expr:        q.Expr,
		Empty:       loc.Sprintf(p.emptyKey),
	}
	if p.creatable {
		view.Heading.ActionURL = routepath.New(p.base)
		view.Heading.ActionLabel = loc.Sprintf("action.create")
	}
	if p.actions != nil {
		view.Actions = p.actions(loc)
	}
	if fetchErr != nil {
		view.Error = errorMessage(loc, fetchErr)
		view.RetryURL = templates.AppendQueryParam(templates.WithQuery(p.base, values), refreshParam, "1")
	}
	for _, problem := range p.problems(st) {
		view.Problems = append(view.Problems, loc.Sprintf("list.ignored_param", problem.Param, problem.Value))
	}
	if !st.coll.FetchedAt().IsZero() {
		view.FetchedAt = pages.Relative(st.coll.FetchedAt(), p.h.now())
	}

	for _, filter := range d.Filters {
		view.Filters = append(view.Filters, filterView(loc, filter, q))
	}
	for _, column := range d.Columns {
		cv := templates.ColumnView{Header: loc.Sprintf(column.Header)}
		if column.SortField != "" {
			dir := listview.Asc
			if page.Sort.Field == column.SortField {
				cv.Active = true
				cv.Desc = page.Sort.Dir == listview.Desc
				dir = page.Sort.Dir.Opposite()
			}
			sorted := q.Clone()
			sorted.SetSort(column.SortField, dir)
			cv.Sort = p.link(d.Values(sorted))
		}
		view.Columns = append(view.Columns, cv)
	}
	for _, rec := range page.Items {
		id := d.ID(rec)
		row := templates.RowView{ID: id, DetailURL: routepath.Detail(p.base, id)}
		if p.detailURL != nil {
			row.DetailURL = p.detailURL(id)
		}
		for _, column := range d.Columns {
			row.Cells = append(row.Cells, cellText(loc, column.Value(rec)))
		}
		if p.remove != nil {
			row.DeleteURL = routepath.Delete(p.base, id)
		}
		if p.decorate != nil {
			p.decorate(loc, rec, &row)
		}
		view.Rows = append(view.Rows, row)
	}
	view.Pagination = p.pagination(q, page)
	return view
}

func (p *listPage[T]) link(values url.Values) *templates.Link {
	return &templates.Link{
		Href:    templates.WithQuery(p.base, values),
		Partial: templates.WithQuery(routepath.Table(p.base), values),
	}
}

func (p *listPage[T]) pagination(q listview.Query, page listview.Page[T]) templates.PaginationView {
	pv := templates.PaginationView{
		Page:       page.Index,
		TotalPages: page.TotalPages,
		First:      page.FirstItem(),
		Last:       page.LastItem(),
		Total:      page.TotalItems,
		PageSize:   page.Size,
		SizeParam:  listview.ParamPageSize,
		Sizes:      pageSizes,
		SizeURL:    routepath.Table(p.base),
	}
	at := func(n int) *templates.Link {
		moved := q.Clone()
		moved.SetPage(n)
		return p.link(p.descriptor.Values(moved))
	}
	if page.HasPrev() {
		pv.Prev = at(page.Index - 1)
	}
	if page.HasNext() {
		pv.Next = at(page.Index + 1)
	}
	for _, n := range pageWindow(page.Index, page.TotalPages) {
		pv.Pages = append(pv.Pages, templates.PageLink{Number: n, Link: *at(n), Current: n == page.Index})
	}
	return pv
}

// pageWindow lists up to five page numbers centered on current.
func pageWindow(current, total int) []int {
	const span = 5
	start := max(1, current-span/2)
	end := min(total, start+span-1)
	start = max(1, end-span+1)
	out := make([]int, 0, span)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out
}

func filterView(loc *message.Printer, filter listview.FilterDef, q listview.Query) templates.FilterView {
	fv := templates.FilterView{Label: loc.Sprintf(filter.Label)}
	switch filter.Kind {
	case listview.FilterEnum:
		fv.Kind = templates.FilterSelect
		fv.Param = filter.Key
		fv.Value = q.Filters[filter.Key]
		for _, option := range filter.Options {
			fv.Options = append(fv.Options, templates.OptionView{
				Value:    option.Value,
				Label:    loc.Sprintf(option.Label),
				Selected: option.Value == fv.Value,
			})
		}
	default:
		fv.Kind = templates.FilterNumberRange
		if filter.Kind == listview.FilterDateRange {
			fv.Kind = templates.FilterDateRange
		}
		params := filter.Params()
		fv.MinParam, fv.MaxParam = params[0], params[1]
		fv.MinValue, fv.MaxValue = q.Filters[params[0]], q.Filters[params[1]]
	}
	return fv
}

// cellText translates cells that carry a message key.
func cellText(loc *message.Printer, value string) string {
	if pages.IsMessageKey(value) {
		return loc.Sprintf(value)
	}
	return value
}

// cachedUnread counts unread notifications in the session's cached
// notifications page, when it has been loaded.
func (h *Handler) cachedUnread(sessionID string) (int, bool) {
	value, ok := h.views.peek(viewStateKey(sessionID, notificationsKey))
	if !ok {
		return 0, false
	}
	st, ok := value.(*listState[api.Notification])
	if !ok || !st.coll.Loaded() {
		return 0, false
	}
	return api.UnreadCount(st.coll.Records()), true
}
