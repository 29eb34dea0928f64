package templates

import (
	"github.com/a-h/templ"
)

// ListRegionID is the element the toolbar and pager swap.
const ListRegionID = "list-region"

// Link is a navigation target with its HTMX partial counterpart.
type Link struct {
	// Href is the full-page URL, kept for history and no-JS navigation.
	Href string
	// Partial is fetched by HTMX into the list region.
	Partial string
}

// ListView provides data for any list page.
type ListView struct {
	Heading   PageHeading
	PageURL   string
	TableURL  string
	ExportURL string
	// SearchLabel is the placeholder of the search box.
	SearchLabel string
	Search      string
	Filters     []FilterView
	Expr        string
	Columns     []ColumnView
	Rows        []RowView
	Pagination  PaginationView
	// Problems lists ignored query values.
	Problems []string
	// Error is the fetch failure shown above the last-known rows.
	Error    string
	RetryURL string
	Toast    string
	// ToastError styles the toast as a failure.
	ToastError bool
	Empty      string
	FetchedAt  string
	// Actions are extra page-level buttons, such as clearing a collection.
	Actions []ActionView
}

// FilterKind selects the filter control.
type FilterKind int

const (
	FilterSelect FilterKind = iota
	FilterNumberRange
	FilterDateRange
)

// FilterView is one filter control.
type FilterView struct {
	Label   string
	Kind    FilterKind
	Param   string
	Value   string
	Options []OptionView
	// MinParam and MaxParam name range bounds.
	MinParam string
	MinValue string
	MaxParam string
	MaxValue string
}

// OptionView is one select option.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// ColumnView is one table header.
type ColumnView struct {
	Header string
	Sort   *Link
	Active bool
	Desc   bool
}

// RowView is one table row.
type RowView struct {
	ID        string
	Cells     []string
	DetailURL string
	EditURL   string
	DeleteURL string
	ToggleURL string
	// ToggleLabel names the toggle action, e.g. enable or disable.
	ToggleLabel string
}

// PaginationView drives the pager under the table.
type PaginationView struct {
	Page       int
	TotalPages int
	First      int
	Last       int
	Total      int
	Prev       *Link
	Next       *Link
	Pages      []PageLink
	PageSize   int
	SizeParam  string
	Sizes      []int
	// SizeURL receives the page size change together with the toolbar fields.
	SizeURL string
}

// PageLink is one numbered pager entry.
type PageLink struct {
	Number  int
	Link    Link
	Current bool
}

// ActionView is a page-level button leading to a confirm view or form.
type ActionView struct {
	Label string
	URL   string
	// Danger styles destructive actions.
	Danger bool
}

// ListPage renders the list page content.
func ListPage(view ListView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Heading(view.Heading))
		h.raw(`<div class="list-page">`)
		listToolbar(h, view, loc)
		h.raw(`<div id="`, ListRegionID, `">`)
		h.render(ListTable(view, loc))
		h.raw("</div></div>")
	})
}

// ListFullPage renders the list page inside the admin shell.
func ListFullPage(view ListView, page PageContext) templ.Component {
	return Layout(page, view.Heading.Title, ListPage(view, page.Loc))
}

func listToolbar(h *htmlWriter, view ListView, loc Localizer) {
	h.raw(`<form id="list-toolbar" class="toolbar" method="get"`)
	h.href("action", view.PageURL)
	h.attr("hx-get", view.TableURL)
	h.attr("hx-target", "#"+ListRegionID)
	h.attr("hx-trigger", "submit, change, input changed delay:300ms from:[name=q]")
	h.raw(`><input type="search" name="q" class="input"`)
	h.attr("value", view.Search)
	h.attr("placeholder", view.SearchLabel)
	h.attr("aria-label", view.SearchLabel)
	h.raw(">")
	for _, filter := range view.Filters {
		filterControl(h, filter, loc)
	}
	h.raw(`<details class="advanced"`)
	h.boolAttr("open", view.Expr != "")
	h.raw("><summary>")
	h.text(T(loc, "list.advanced_filter"))
	h.raw(`</summary><input type="text" name="filter" class="input"`)
	h.attr("value", view.Expr)
	h.attr("placeholder", `status = "active" AND coins > 10`)
	h.raw("></details>")
	h.raw(`<button type="submit" class="btn">`)
	h.text(T(loc, "list.apply"))
	h.raw(`</button><a class="btn btn-ghost"`)
	h.href("href", view.PageURL+"?refresh=1")
	h.raw(">")
	h.text(T(loc, "list.refresh"))
	h.raw("</a>")
	if view.ExportURL != "" {
		h.raw(`<a class="btn btn-outline" hx-boost="false"`)
		h.href("href", view.ExportURL)
		h.raw(">")
		h.text(T(loc, "list.export"))
		h.raw("</a>")
	}
	for _, action := range view.Actions {
		class := "btn btn-outline"
		if action.Danger {
			class = "btn btn-error"
		}
		h.raw("<a")
		h.attr("class", class)
		h.href("href", action.URL)
		h.raw(">")
		h.text(action.Label)
		h.raw("</a>")
	}
	h.raw("</form>")
}

func filterControl(h *htmlWriter, filter FilterView, loc Localizer) {
	h.raw(`<label class="filter"><span>`)
	h.text(filter.Label)
	h.raw("</span>")
	switch filter.Kind {
	case FilterSelect:
		h.raw(`<select class="select"`)
		h.attr("name", filter.Param)
		h.raw(`><option value="all">`)
		h.text(T(loc, "list.all"))
		h.raw("</option>")
		for _, option := range filter.Options {
			h.raw("<option")
			h.attr("value", option.Value)
			h.boolAttr("selected", option.Selected)
			h.raw(">")
			h.text(option.Label)
			h.raw("</option>")
		}
		h.raw("</select>")
	default:
		kind := "number"
		if filter.Kind == FilterDateRange {
			kind = "date"
		}
		for _, bound := range [][3]string{
			{filter.MinParam, filter.MinValue, T(loc, "list.from")},
			{filter.MaxParam, filter.MaxValue, T(loc, "list.to")},
		} {
			h.raw(`<input class="input input-sm"`)
			h.attr("type", kind)
			if kind == "number" {
				h.attr("step", "any")
			}
			h.attr("name", bound[0])
			h.attr("value", bound[1])
			h.attr("placeholder", bound[2])
			h.attr("aria-label", filter.Label+" "+bound[2])
			h.raw(">")
		}
	}
	h.raw("</label>")
}

// ListTable renders the swappable region: banners, table and pager.
func ListTable(view ListView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Toast(view.Toast, view.ToastError, toastDismissMS))
		h.render(ErrorBanner(view.Error, view.RetryURL, T(loc, "list.retry")))
		for _, problem := range view.Problems {
			h.raw(`<div class="alert alert-warning">`)
			h.text(problem)
			h.raw("</div>")
		}
		if len(view.Rows) == 0 {
			h.render(EmptyState(view.Empty))
		} else {
			table(h, view, loc)
		}
		pager(h, view.Pagination, loc)
		if view.FetchedAt != "" {
			h.raw(`<p class="fetched-at">`)
			h.text(T(loc, "list.fetched_at", view.FetchedAt))
			h.raw("</p>")
		}
	})
}

func table(h *htmlWriter, view ListView, loc Localizer) {
	h.raw(`<div class="table-wrap"><table class="table"><thead><tr>`)
	for _, column := range view.Columns {
		h.raw("<th")
		if column.Active {
			dir := "ascending"
			if column.Desc {
				dir = "descending"
			}
			h.attr("aria-sort", dir)
		}
		h.raw(">")
		if column.Sort != nil {
			linkTo(h, *column.Sort, "sort")
			h.text(column.Header)
			if column.Active {
				if column.Desc {
					h.raw(" ▼")
				} else {
					h.raw(" ▲")
				}
			}
			h.raw("</a>")
		} else {
			h.text(column.Header)
		}
		h.raw("</th>")
	}
	h.raw("<th>")
	h.text(T(loc, "list.actions"))
	h.raw("</th></tr></thead><tbody>")
	for _, row := range view.Rows {
		h.raw("<tr")
		h.attr("data-id", row.ID)
		h.raw(">")
		for i, cell := range row.Cells {
			h.raw("<td>")
			if i == 0 && row.DetailURL != "" {
				h.raw("<a")
				h.href("href", row.DetailURL)
				h.raw(">")
				h.text(cell)
				h.raw("</a>")
			} else {
				h.text(cell)
			}
			h.raw("</td>")
		}
		h.raw(`<td class="row-actions">`)
		if row.EditURL != "" {
			h.raw(`<a class="btn btn-xs"`)
			h.href("href", row.EditURL)
			h.raw(">")
			h.text(T(loc, "action.edit"))
			h.raw("</a>")
		}
		if row.ToggleURL != "" {
			h.raw(`<form method="post" class="inline"`)
			h.href("action", row.ToggleURL)
			h.raw(`><button type="submit" class="btn btn-xs">`)
			h.text(row.ToggleLabel)
			h.raw("</button></form>")
		}
		if row.DeleteURL != "" {
			h.raw(`<a class="btn btn-xs btn-error"`)
			h.href("href", row.DeleteURL)
			h.raw(">")
			h.text(T(loc, "action.delete"))
			h.raw("</a>")
		}
		h.raw("</td></tr>")
	}
	h.raw("</tbody></table></div>")
}

func linkTo(h *htmlWriter, link Link, class string) {
	h.raw("<a")
	if class != "" {
		h.attr("class", class)
	}
	h.href("href", link.Href)
	if link.Partial != "" {
		h.attr("hx-get", link.Partial)
		h.attr("hx-target", "#"+ListRegionID)
		h.attr("hx-push-url", link.Href)
	}
	h.raw(">")
}

func pager(h *htmlWriter, p PaginationView, loc Localizer) {
	if p.TotalPages == 0 {
		return
	}
	h.raw(`<nav class="pager" aria-label="pagination"><span class="pager-summary">`)
	h.text(T(loc, "list.showing", p.First, p.Last, p.Total))
	h.raw(`</span><div class="join">`)
	if p.Prev != nil {
		linkTo(h, *p.Prev, "join-item btn btn-sm")
		h.text(T(loc, "list.prev"))
		h.raw("</a>")
	}
	for _, entry := range p.Pages {
		if entry.Current {
			h.raw(`<span class="join-item btn btn-sm btn-active" aria-current="page">`)
			h.text(h.itoa(entry.Number))
			h.raw("</span>")
			continue
		}
		linkTo(h, entry.Link, "join-item btn btn-sm")
		h.text(h.itoa(entry.Number))
		h.raw("</a>")
	}
	if p.Next != nil {
		linkTo(h, *p.Next, "join-item btn btn-sm")
		h.text(T(loc, "list.next"))
		h.raw("</a>")
	}
	h.raw("</div>")
	if p.SizeParam != "" && len(p.Sizes) > 0 {
		h.raw(`<label class="page-size"><span>`)
		h.text(T(loc, "list.page_size"))
		h.raw(`</span><select class="select select-sm" hx-include="#list-toolbar" hx-trigger="change"`)
		h.attr("name", p.SizeParam)
		h.attr("hx-get", p.SizeURL)
		h.attr("hx-target", "#"+ListRegionID)
		h.raw(">")
		for _, size := range p.Sizes {
			h.raw("<option")
			h.attr("value", h.itoa(size))
			h.boolAttr("selected", size == p.PageSize)
			h.raw(">")
			h.text(h.itoa(size))
			h.raw("</option>")
		}
		h.raw("</select></label>")
	}
	h.raw("</nav>")
}
