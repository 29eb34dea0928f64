package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

func render(t *testing.T, c templ.Component) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// findAll returns element nodes accepted by match in document order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byAttr(key, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, key)
		return ok && v == value
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func sampleList() ListView {
	return ListView{
		Heading:     PageHeading{Title: "Users"},
		PageURL:     "/users",
		TableURL:    "/users/table",
		ExportURL:   "/users/export.csv",
		SearchLabel: "Search",
		Search:      "ana",
		Filters: []FilterView{
			{Label: "Status", Kind: FilterSelect, Param: "status", Value: "active", Options: []OptionView{
				{Value: "active", Label: "Active", Selected: true},
				{Value: "banned", Label: "Banned"},
			}},
			{Label: "Coins", Kind: FilterNumberRange, MinParam: "coins_min", MinValue: "5", MaxParam: "coins_max"},
		},
		Columns: []ColumnView{
			{Header: "Name", Sort: &Link{Href: "/users?sort=full_name&dir=asc", Partial: "/users/table?sort=full_name&dir=asc"}, Active: true},
			{Header: "Email"},
		},
		Rows: []RowView{
			{ID: "u1", Cells: []string{"Ana <b>", "ana@example.com"}, DetailURL: "/users/u1", DeleteURL: "/users/u1/delete"},
		},
		Pagination: PaginationView{
			Page: 1, TotalPages: 2, First: 1, Last: 1, Total: 2,
			Next:  &Link{Href: "/users?page=2", Partial: "/users/table?page=2"},
			Pages: []PageLink{{Number: 1, Current: true}, {Number: 2, Link: Link{Href: "/users?page=2", Partial: "/users/table?page=2"}}},
		},
		Toast: "Deleted",
	}
}

func TestListFullPageRendersShellAndTable(t *testing.T) {
	page := PageContext{Lang: "en", CurrentPath: "/users", AdminEmail: "root@example.com", Active: "users", SidebarCollapsed: true, UnreadCount: 3}
	doc := render(t, ListFullPage(sampleList(), page))

	if mains := findAll(doc, byAttr("id", "main")); len(mains) != 1 || mains[0].Data != "main" {
		t.Fatalf("expected one <main id=main>, got %d", len(mains))
	}
	if shells := findAll(doc, byAttr("class", "shell sidebar-collapsed")); len(shells) != 1 {
		t.Fatal("expected collapsed sidebar shell")
	}
	if active := findAll(doc, byAttr("aria-current", "page")); len(active) == 0 || textOf(active[0]) != "nav.users" {
		t.Fatal("expected users nav entry to be active")
	}
	badges := findAll(doc, byAttr("data-unread", "3"))
	if len(badges) != 1 {
		t.Fatal("expected unread badge")
	}
	polls := findAll(doc, byAttr("hx-get", "/notifications/badge"))
	if len(polls) != 1 {
		t.Fatal("expected badge poll")
	}
	if trigger, _ := attr(polls[0], "hx-trigger"); trigger != "load, every 30s" {
		t.Fatalf("badge trigger = %q", trigger)
	}

	cells := findAll(doc, byTag("td"))
	if len(cells) == 0 || textOf(cells[0]) != "Ana <b>" {
		t.Fatalf("expected escaped cell text, got %d cells", len(cells))
	}
	if links := findAll(cells[0], byTag("a")); len(links) != 1 {
		t.Fatal("expected first cell to link to detail")
	} else if href, _ := attr(links[0], "href"); href != "/users/u1" {
		t.Fatalf("detail href = %q", href)
	}
	sorted := findAll(doc, byAttr("aria-sort", "ascending"))
	if len(sorted) != 1 {
		t.Fatal("expected active ascending sort header")
	}
	toasts := findAll(doc, byAttr("data-dismiss-after", "3000"))
	if len(toasts) != 1 || textOf(toasts[0]) != "Deleted" {
		t.Fatal("expected auto-dismissing toast")
	}
	next := findAll(doc, byAttr("hx-get", "/users/table?page=2"))
	if len(next) == 0 {
		t.Fatal("expected pager partial links")
	}
	if push, _ := attr(next[0], "hx-push-url"); push != "/users?page=2" {
		t.Fatalf("hx-push-url = %q", push)
	}
	selected := findAll(doc, byAttr("value", "active"))
	if len(selected) != 1 {
		t.Fatal("expected status option")
	}
	if _, ok := attr(selected[0], "selected"); !ok {
		t.Fatal("expected active option selected")
	}
}

func TestListTableEmptyAndError(t *testing.T) {
	view := ListView{Empty: "No users", Error: "API unreachable", RetryURL: "/users?refresh=1"}
	doc := render(t, ListTable(view, nil))
	if len(findAll(doc, byTag("table"))) != 0 {
		t.Fatal("empty view rendered a table")
	}
	if empty := findAll(doc, byAttr("class", "empty-state")); len(empty) != 1 || !strings.Contains(textOf(empty[0]), "No users") {
		t.Fatal("expected empty state")
	}
	alerts := findAll(doc, byAttr("role", "alert"))
	if len(alerts) != 1 {
		t.Fatal("expected error banner")
	}
	retry := findAll(alerts[0], byTag("a"))
	if href, _ := attr(retry[0], "href"); href != "/users?refresh=1" {
		t.Fatalf("retry href = %q", href)
	}
}

func TestConfirmPagePostsConfirmation(t *testing.T) {
	doc := render(t, ConfirmPage(ConfirmView{Message: "Delete?", ActionURL: "/users/u1/delete", CancelURL: "/users"}, nil))
	forms := findAll(doc, byTag("form"))
	if len(forms) != 1 {
		t.Fatal("expected a form")
	}
	if method, _ := attr(forms[0], "method"); method != "post" {
		t.Fatalf("method = %q", method)
	}
	hidden := findAll(forms[0], byAttr("name", "confirm"))
	if len(hidden) != 1 {
		t.Fatal("expected confirm input")
	}
	if value, _ := attr(hidden[0], "value"); value != "yes" {
		t.Fatalf("confirm value = %q", value)
	}
}

func TestFormPageFields(t *testing.T) {
	view := FormView{
		ActionURL: "/users/new",
		Fields: []FormField{
			{Name: "email", Label: "Email", Type: InputEmail, Value: "a@b.c", Required: true},
			{Name: "password", Label: "Password", Type: InputPassword, Value: "secret"},
			{Name: "coins", Label: "Coins", Type: InputNumber, Value: "abc", Error: "must be a number"},
			{Name: "role", Label: "Role", Type: InputSelect, Value: "admin", Options: []OptionView{{Value: "user", Label: "User"}, {Value: "admin", Label: "Admin"}}},
			{Name: "active", Label: "Active", Type: InputCheckbox, Checked: true},
		},
		Grid: &GridView{Label: "Segments", Columns: []GridColumn{{Name: "label", Label: "Label"}}, Rows: [][]string{{"Jackpot"}, {""}}},
	}
	doc := render(t, FormPage(view, nil))

	password := findAll(doc, byAttr("name", "password"))
	if _, ok := attr(password[0], "value"); ok {
		t.Fatal("password value must not be echoed")
	}
	if msgs := findAll(doc, byAttr("class", "field-message")); len(msgs) != 1 || textOf(msgs[0]) != "must be a number" {
		t.Fatal("expected inline field error")
	}
	admin := findAll(doc, byAttr("value", "admin"))
	if _, ok := attr(admin[0], "selected"); !ok {
		t.Fatal("expected current select value selected")
	}
	checkbox := findAll(doc, byAttr("name", "active"))
	if _, ok := attr(checkbox[0], "checked"); !ok {
		t.Fatal("expected checkbox checked")
	}
	if labels := findAll(doc, byAttr("name", "label")); len(labels) != 2 {
		t.Fatalf("grid rows = %d, want 2", len(labels))
	}
}

func TestLoginFullPageHasNoNavigation(t *testing.T) {
	doc := render(t, LoginFullPage(LoginView{Email: "a@b.c", Next: "/users", Error: "bad credentials"}, PageContext{Lang: "en"}))
	if len(findAll(doc, byTag("aside"))) != 0 {
		t.Fatal("login rendered the sidebar")
	}
	next := findAll(doc, byAttr("name", "next"))
	if value, _ := attr(next[0], "value"); value != "/users" {
		t.Fatalf("next = %q", value)
	}
}

func TestNotificationBadgeHidesZero(t *testing.T) {
	doc := render(t, NotificationBadge(0, nil))
	if len(findAll(doc, byAttr("class", "badge"))) != 0 {
		t.Fatal("zero unread rendered a badge")
	}
}

func TestDashboardPage(t *testing.T) {
	view := DashboardView{
		Cards:    []StatCard{{Label: "Users", Value: "1,204", URL: "/users"}},
		Sections: []DashboardSection{{Title: "Recent", Columns: []string{"Name"}, Rows: [][]string{{"Ana"}}}, {Title: "Empty", Empty: "Nothing"}},
		Errors:   []string{"payments unavailable"},
		RetryURL: "/",
	}
	doc := render(t, DashboardPage(view, nil))
	if values := findAll(doc, byAttr("class", "stat-value")); len(values) != 1 || textOf(values[0]) != "1,204" {
		t.Fatal("expected stat card")
	}
	if len(findAll(doc, byAttr("role", "alert"))) != 1 {
		t.Fatal("expected partial failure banner")
	}
	if len(findAll(doc, byAttr("class", "empty-state"))) != 1 {
		t.Fatal("expected empty section")
	}
}
