// Package i18n resolves the request locale for console pages.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	platformi18n "github.com/crmrmm/console/internal/platform/i18n"
	"github.com/crmrmm/console/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "crm_lang"
)

// LanguageOption represents a supported language option in the sidebar.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// Resolver picks a locale per request, falling back to a configured default.
type Resolver struct {
	fallback language.Tag
}

// NewResolver builds a resolver; an unsupported fallback becomes the platform
// default. It loads and registers the embedded catalogs.
func NewResolver(fallback string) Resolver {
	catalog.Default()

	tag, ok := platformi18n.ParseTag(fallback)
	if !ok {
		tag = platformi18n.DefaultTag()
	}
	return Resolver{fallback: tag}
}

// Default returns the resolver fallback.
func (r Resolver) Default() language.Tag {
	if r.fallback == (language.Tag{}) {
		return platformi18n.DefaultTag()
	}
	return r.fallback
}

// ResolveTag determines the best language tag for the request: query
// parameter, then cookie, then Accept-Language, then the fallback.
// The bool indicates whether the lang query param should be persisted as a cookie.
func (r Resolver) ResolveTag(req *http.Request) (language.Tag, bool) {
	if req == nil {
		return r.Default(), false
	}
	if langValue := strings.TrimSpace(req.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := platformi18n.ParseTag(langValue); ok {
			return tag, true
		}
	}
	if cookie, err := req.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(req.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			if tag, ok := platformi18n.MatchTags(tags); ok {
				return tag, false
			}
		}
	}
	return r.Default(), false
}

// Resolve returns the printer for the request locale, persisting an explicit
// choice in the language cookie.
func (r Resolver) Resolve(w http.ResponseWriter, req *http.Request) (*message.Printer, language.Tag) {
	tag, persist := r.ResolveTag(req)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag
}

// Printer returns a message printer bound to the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	// Printers read the x/text default catalog, which Default fills once.
	catalog.Default()
	return message.NewPrinter(tag)
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// BuildLanguageOptions returns the supported languages with the active one flagged.
func BuildLanguageOptions(activeLang string, labelForTag func(tag language.Tag) string) []LanguageOption {
	active, ok := platformi18n.ParseTag(activeLang)
	if !ok {
		active = platformi18n.DefaultTag()
	}
	supported := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		label := tag.String()
		if labelForTag != nil {
			if resolved := strings.TrimSpace(labelForTag(tag)); resolved != "" {
				label = resolved
			}
		}
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			Active: tag == active,
		})
	}
	return options
}

// LanguageKey is the catalog key of a language's display label.
func LanguageKey(tag language.Tag) string {
	return "lang." + tag.String()
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}
