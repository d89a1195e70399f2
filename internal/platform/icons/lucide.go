package icons

const (
	lucideSymbolPrefix = "lucide-"
	lucideFallback     = "sparkle"
)

var lucideIconNames = map[ID]string{
	IDGeneric:       lucideFallback,
	IDDashboard:     "layout-dashboard",
	IDClients:       "building-2",
	IDProspects:     "user-plus",
	IDContracts:     "file-signature",
	IDTickets:       "ticket",
	IDInterventions: "wrench",
	IDInvoices:      "receipt",
	IDMachines:      "monitor",
	IDAlerts:        "bell-ring",
	IDPlaybooks:     "book-open-check",
	IDSettings:      "settings",
	IDLanguage:      "languages",
}

// LucideName returns the Lucide icon name for an icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return lucideFallback
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}
