package templates

// PageContext provides shared layout context for admin pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	// AdminEmail labels the signed-in admin; empty on the login page.
	AdminEmail       string
	DarkMode         bool
	SidebarCollapsed bool
	UnreadCount      int
	// Active is the sidebar entry to highlight.
	Active string
}
