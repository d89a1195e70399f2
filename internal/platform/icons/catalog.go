package icons

import "strings"

// ID identifies an icon independently of any icon set.
type ID string

const (
	IDGeneric       ID = "generic"
	IDDashboard     ID = "dashboard"
	IDClients       ID = "clients"
	IDProspects     ID = "prospects"
	IDContracts     ID = "contracts"
	IDTickets       ID = "tickets"
	IDInterventions ID = "interventions"
	IDInvoices      ID = "invoices"
	IDMachines      ID = "machines"
	IDAlerts        ID = "alerts"
	IDPlaybooks     ID = "playbooks"
	IDSettings      ID = "settings"
	IDLanguage      ID = "language"
)

// Definition describes a core icon entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: IDGeneric, Name: "Generic", Description: "Default icon for uncategorized entries."},
	{ID: IDDashboard, Name: "Dashboard", Description: "Global CRM, RMM and PSA overview."},
	{ID: IDClients, Name: "Clients", Description: "Customer accounts."},
	{ID: IDProspects, Name: "Prospects", Description: "Sales pipeline contacts."},
	{ID: IDContracts, Name: "Contracts", Description: "Hours banks, subscriptions and time & material agreements."},
	{ID: IDTickets, Name: "Tickets", Description: "Support requests."},
	{ID: IDInterventions, Name: "Interventions", Description: "On-site and remote technician work."},
	{ID: IDInvoices, Name: "Invoices", Description: "Billing and prebilling."},
	{ID: IDMachines, Name: "Machines", Description: "Monitored endpoints."},
	{ID: IDAlerts, Name: "Alerts", Description: "RMM monitoring alerts."},
	{ID: IDPlaybooks, Name: "Playbooks", Description: "Automation scripts and runbooks."},
	{ID: IDSettings, Name: "Settings", Description: "Application settings and configuration."},
	{ID: IDLanguage, Name: "Language", Description: "Locale selection."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// CatalogMarkdown renders the icon catalog as a markdown table.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("| Icon ID | Lucide | Description |\n")
	builder.WriteString("| --- | --- | --- |\n")
	for _, def := range catalog {
		builder.WriteString("| ")
		builder.WriteString(string(def.ID))
		builder.WriteString(" | ")
		builder.WriteString(LucideNameOrDefault(def.ID))
		builder.WriteString(" | ")
		builder.WriteString(def.Description)
		builder.WriteString(" |\n")
	}
	return builder.String()
}
