package icons

import (
	"strings"
	"testing"
)

func TestLucideNameCoversCatalog(t *testing.T) {
	seen := make(map[ID]struct{})
	for _, def := range Catalog() {
		if _, ok := seen[def.ID]; ok {
			t.Fatalf("duplicate icon id in catalog: %s", def.ID)
		}
		seen[def.ID] = struct{}{}
		if strings.TrimSpace(def.Name) == "" {
			t.Fatalf("icon %s missing name", def.ID)
		}
		if _, ok := LucideName(def.ID); !ok {
			t.Fatalf("missing Lucide mapping for %s", def.ID)
		}
	}
	if len(seen) != len(lucideIconNames) {
		t.Fatalf("catalog has %d icons, lucide map has %d", len(seen), len(lucideIconNames))
	}
}

func TestLucideNameOrDefault(t *testing.T) {
	if got := LucideNameOrDefault(IDTickets); got != "ticket" {
		t.Fatalf("tickets icon = %q", got)
	}
	if got := LucideNameOrDefault(ID("unknown")); got != "sparkle" {
		t.Fatalf("fallback icon = %q", got)
	}
	if got := LucideSymbolID("ticket"); got != "lucide-ticket" {
		t.Fatalf("symbol id = %q", got)
	}
}

func TestCatalogMarkdownListsEveryIcon(t *testing.T) {
	markdown := CatalogMarkdown()
	for _, def := range Catalog() {
		if !strings.Contains(markdown, "| "+string(def.ID)+" |") {
			t.Fatalf("markdown missing %s", def.ID)
		}
	}
}
