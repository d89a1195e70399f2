// Package navigation declares the console's static sidebar entries.
package navigation

import (
	"github.com/crmrmm/console/internal/platform/icons"
	"github.com/crmrmm/console/internal/services/console/routepath"
)

// Entry is one sidebar link and the page it leads to.
type Entry struct {
	// ID is the stable page identity, also the catalog key segment.
	ID   string
	Path string
	Icon icons.ID
}

// LabelKey is the catalog key of the sidebar label.
func (e Entry) LabelKey() string { return "nav." + e.ID }

// TitleKey is the catalog key of the page title.
func (e Entry) TitleKey() string { return "page." + e.ID + ".title" }

// SubtitleKey is the catalog key of the page subtitle.
func (e Entry) SubtitleKey() string { return "page." + e.ID + ".subtitle" }

const (
	IDDashboard     = "dashboard"
	IDClients       = "clients"
	IDProspects     = "prospects"
	IDContracts     = "contracts"
	IDTickets       = "tickets"
	IDInterventions = "interventions"
	IDInvoices      = "invoices"
	IDMachines      = "machines"
	IDAlerts        = "alerts"
	IDPlaybooks     = "playbooks"
	IDSettings      = "settings"
)

// Sidebar order is the rendering order.
var entries = []Entry{
	{ID: IDDashboard, Path: routepath.Dashboard, Icon: icons.IDDashboard},
	{ID: IDClients, Path: routepath.Clients, Icon: icons.IDClients},
	{ID: IDProspects, Path: routepath.Prospects, Icon: icons.IDProspects},
	{ID: IDContracts, Path: routepath.Contracts, Icon: icons.IDContracts},
	{ID: IDTickets, Path: routepath.Tickets, Icon: icons.IDTickets},
	{ID: IDInterventions, Path: routepath.Interventions, Icon: icons.IDInterventions},
	{ID: IDInvoices, Path: routepath.Invoices, Icon: icons.IDInvoices},
	{ID: IDMachines, Path: routepath.Machines, Icon: icons.IDMachines},
	{ID: IDAlerts, Path: routepath.Alerts, Icon: icons.IDAlerts},
	{ID: IDPlaybooks, Path: routepath.Playbooks, Icon: icons.IDPlaybooks},
	{ID: IDSettings, Path: routepath.Settings, Icon: icons.IDSettings},
}

// Entries returns a copy of the sidebar entries in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Placeholders returns every entry except the dashboard.
func Placeholders() []Entry {
	out := make([]Entry, 0, len(entries)-1)
	for _, entry := range entries {
		if entry.ID != IDDashboard {
			out = append(out, entry)
		}
	}
	return out
}
