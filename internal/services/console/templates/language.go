package templates

import (
	consolei18n "github.com/crmrmm/console/internal/services/console/i18n"
	"golang.org/x/text/language"
)

// LanguageOption represents a supported language option in the sidebar footer.
type LanguageOption = consolei18n.LanguageOption

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	return consolei18n.BuildLanguageOptions(page.Lang, func(tag language.Tag) string {
		return T(page.Loc, consolei18n.LanguageKey(tag))
	})
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, tag string) string {
	return consolei18n.LanguageURL(page.CurrentPath, page.CurrentQuery, tag)
}

func activeAttr(active bool) string {
	if active {
		return "true"
	}
	return "false"
}
