// Package i18n renders localized error messages from the "errors" namespace
// of the embedded message catalogs.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/crmrmm/console/internal/platform/i18n/catalog"
)

const namespace = "errors"

// Catalog holds the parsed error templates for one locale.
type Catalog struct {
	locale    string
	templates map[string]*template.Template
	raw       map[string]string
}

var catalogs sync.Map // locale -> *Catalog

// GetCatalog returns the error catalog for locale, falling back to the base
// locale when the locale has no errors namespace.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if cached, ok := catalogs.Load(requested); ok {
		return cached.(*Catalog)
	}

	resolved, messages := i18ncatalog.Default().Namespace(requested, namespace)
	if cached, ok := catalogs.Load(resolved); ok {
		catalogs.Store(requested, cached)
		return cached.(*Catalog)
	}
	built := NewCatalog(resolved, messages)
	actual, _ := catalogs.LoadOrStore(resolved, built)
	catalogs.Store(requested, actual)
	return actual.(*Catalog)
}

// NewCatalog builds a catalog from code -> template text. Templates that fail
// to parse are kept as raw text.
func NewCatalog(locale string, messages map[string]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		templates: make(map[string]*template.Template, len(messages)),
		raw:       make(map[string]string, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		if tmpl, err := template.New(code).Option("missingkey=zero").Parse(text); err == nil {
			c.templates[code] = tmpl
		}
	}
	return c
}

// Locale returns the locale that satisfied the lookup.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render as
// the code itself; broken templates render as their raw text.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	raw, ok := c.raw[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return raw
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return raw
	}
	return buf.String()
}
