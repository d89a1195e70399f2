package templates

import (
	"strconv"

	"github.com/crmrmm/console/internal/platform/icons"
	"github.com/crmrmm/console/internal/services/console/mockdata"
	"github.com/crmrmm/console/internal/services/console/navigation"
)

// NavLink is a resolved sidebar link.
type NavLink struct {
	Path  string
	Label string
	Icon  string
}

// PlaceholderView holds the copy of a placeholder page.
type PlaceholderView struct {
	ID       string
	Title    string
	Subtitle string
}

// DashboardView holds the dashboard content.
type DashboardView struct {
	Title    string
	Subtitle string
	KPIs     []mockdata.KPI
	Tickets  []mockdata.RecentTicket
}

var placeholderItemKeys = []string{
	"placeholder.item.table",
	"placeholder.item.filters",
	"placeholder.item.crud",
	"placeholder.item.details",
}

// SidebarLinks resolves the navigation entries for the page locale.
func SidebarLinks(page PageContext) []NavLink {
	entries := navigation.Entries()
	links := make([]NavLink, 0, len(entries))
	for _, entry := range entries {
		links = append(links, NavLink{
			Path:  entry.Path,
			Label: T(page.Loc, entry.LabelKey()),
			Icon:  icons.LucideNameOrDefault(entry.Icon),
		})
	}
	return links
}

// NewPlaceholderView resolves a placeholder page's copy for the page locale.
func NewPlaceholderView(page PageContext, entry navigation.Entry) PlaceholderView {
	return PlaceholderView{
		ID:       entry.ID,
		Title:    T(page.Loc, entry.TitleKey()),
		Subtitle: T(page.Loc, entry.SubtitleKey()),
	}
}

// NewDashboardView builds the dashboard view from a dataset.
func NewDashboardView(page PageContext, data mockdata.Dataset) DashboardView {
	return DashboardView{
		Title:    T(page.Loc, "page.dashboard.title"),
		Subtitle: T(page.Loc, "page.dashboard.subtitle"),
		KPIs:     data.KPIs,
		Tickets:  data.RecentTickets,
	}
}

// TicketLabel formats a ticket number for display.
func TicketLabel(id int) string {
	return "#" + strconv.Itoa(id)
}
