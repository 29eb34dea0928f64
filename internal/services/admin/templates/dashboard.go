package templates

import "github.com/a-h/templ"

// DashboardView provides data for the landing page.
type DashboardView struct {
	Cards []StatCard
	// Sections are short tables of recent records.
	Sections []DashboardSection
	// Errors lists sources that failed to load; the rest still render.
	Errors   []string
	RetryURL string
}

// StatCard is one headline number.
type StatCard struct {
	Label string
	Value string
	URL   string
}

// DashboardSection is a titled list of recent records.
type DashboardSection struct {
	Title   string
	MoreURL string
	Columns []string
	Rows    [][]string
	Empty   string
}

// DashboardPage renders the dashboard.
func DashboardPage(view DashboardView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Heading(PageHeading{Title: T(loc, "title.dashboard")}))
		for i, message := range view.Errors {
			retry := ""
			if i == len(view.Errors)-1 {
				retry = view.RetryURL
			}
			h.render(ErrorBanner(message, retry, T(loc, "list.retry")))
		}
		h.raw(`<div class="stats">`)
		for _, card := range view.Cards {
			h.raw(`<div class="stat">`)
			h.element("div", "stat-title", card.Label)
			h.raw(`<div class="stat-value">`)
			if card.URL != "" {
				h.raw("<a")
				h.href("href", card.URL)
				h.raw(">")
				h.text(card.Value)
				h.raw("</a>")
			} else {
				h.text(card.Value)
			}
			h.raw("</div></div>")
		}
		h.raw(`</div><div class="dashboard-sections">`)
		for _, section := range view.Sections {
			h.raw(`<section class="card"><header>`)
			h.element("h2", "", section.Title)
			if section.MoreURL != "" {
				h.raw(`<a class="link"`)
				h.href("href", section.MoreURL)
				h.raw(">")
				h.text(T(loc, "dashboard.view_all"))
				h.raw("</a>")
			}
			h.raw("</header>")
			if len(section.Rows) == 0 {
				h.render(EmptyState(section.Empty))
			} else {
				h.raw(`<table class="table table-sm"><thead><tr>`)
				for _, column := range section.Columns {
					h.element("th", "", column)
				}
				h.raw("</tr></thead><tbody>")
				for _, row := range section.Rows {
					h.raw("<tr>")
					for _, cell := range row {
						h.element("td", "", cell)
					}
					h.raw("</tr>")
				}
				h.raw("</tbody></table>")
			}
			h.raw("</section>")
		}
		h.raw("</div>")
	})
}

// DashboardFullPage renders the dashboard inside the admin shell.
func DashboardFullPage(view DashboardView, page PageContext) templ.Component {
	return Layout(page, T(page.Loc, "title.dashboard"), DashboardPage(view, page.Loc))
}
