// Package routepath holds every console URL path.
package routepath

const (
	Root         = "/"
	StaticPrefix = "/static/"
	Health       = "/health"
)

const (
	Dashboard     = "/dashboard"
	Clients       = "/clients"
	Prospects     = "/prospects"
	Contracts     = "/contracts"
	Tickets       = "/tickets"
	Interventions = "/interventions"
	Invoices      = "/invoices"
	Machines      = "/machines"
	Alerts        = "/alerts"
	Playbooks     = "/playbooks"
	Settings      = "/settings"
)

// Stylesheet is the console stylesheet URL.
const Stylesheet = StaticPrefix + "console.css"
