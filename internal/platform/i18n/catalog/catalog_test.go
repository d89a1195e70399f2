package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if diff := cmp.Diff([]string{"en-US", "fr-FR"}, sortedKeys(bundle.locales)); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if resolved, messages := bundle.Namespace("fr-FR", "core"); resolved != "fr-FR" || len(messages) == 0 {
		t.Fatalf("expected fr-FR core namespace messages, got %s with %d", resolved, len(messages))
	}
	if got, ok := bundle.Message("fr-FR", "nav.settings"); !ok || got != "Paramètres" {
		t.Fatalf("nav.settings = %q, %v", got, ok)
	}
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := localeKeys(bundle, BaseLocale)
	for _, locale := range sortedKeys(bundle.locales) {
		if locale == BaseLocale {
			continue
		}
		if diff := cmp.Diff(base, localeKeys(bundle, locale)); diff != "" {
			t.Fatalf("locale %s keys differ from %s (-base +locale):\n%s", locale, BaseLocale, diff)
		}
	}
}

func TestDefaultRegistersWithMessagePrinter(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default loaded the catalogs twice")
	}

	printer := message.NewPrinter(language.MustParse("fr-FR"))
	if got := printer.Sprintf("placeholder.intro"); got != "Cette page est scaffoldée et prête à recevoir :" {
		t.Fatalf("fr-FR placeholder.intro = %q", got)
	}
	printer = message.NewPrinter(language.French)
	if got := printer.Sprintf("nav.invoices"); got != "Factures" {
		t.Fatalf("fr nav.invoices = %q", got)
	}
	printer = message.NewPrinter(language.MustParse("en-US"))
	if got := printer.Sprintf("nav.invoices"); got != "Invoices" {
		t.Fatalf("en-US nav.invoices = %q", got)
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/console.yaml"), `locale: "fr-FR"
namespace: "console"
messages:
  "core.bad": "non"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/core.yaml"), `locale: "fr-FR"
namespace: "core"
messages:
  "core.good": "ok"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/core.yaml"), `locale: "fr-FR"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/console.yaml"), `locale: "fr-FR"
namespace: "console"
messages:
  "a.key": "b"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsNamespaceMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/core.yaml"), `locale: "fr-FR"
namespace: "console"
messages:
  "console.title": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected namespace mismatch error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.app.name": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRejectsUnknownFields(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/fr-FR/core.yaml"), `locale: "fr-FR"
namespace: "core"
owner: "ops"
messages:
  "core.app.name": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.app.name": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestNamespaceFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	resolved, messages := bundle.Namespace("de-DE", "errors")
	if resolved != BaseLocale {
		t.Fatalf("resolved locale = %q, want %s", resolved, BaseLocale)
	}
	if len(messages) == 0 {
		t.Fatal("expected fallback errors namespace messages")
	}
	messages["errors.mutated"] = "x"
	if _, again := bundle.Namespace("de-DE", "errors"); again["errors.mutated"] != "" {
		t.Fatal("Namespace returned shared map")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("de-DE", "nav.alerts")
	if !ok || got != "Alertes" {
		t.Fatalf("Message(de-DE, nav.alerts) = %q, %v", got, ok)
	}
	if _, ok := bundle.Message("fr-FR", " "); ok {
		t.Fatal("expected blank key to miss")
	}
}

func localeKeys(bundle *Bundle, locale string) []string {
	var keys []string
	for _, messages := range bundle.locales[locale] {
		keys = append(keys, sortedKeys(messages)...)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
