// Package i18n holds the locales the console supports.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// The first tag is the default.
var supportedTags = []language.Tag{
	language.MustParse("fr-FR"),
	language.MustParse("en-US"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// SupportedTags returns a copy of the supported locale tags, default first.
func SupportedTags() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// DefaultTag returns the product locale.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it names a supported locale.
// A bare language ("fr", "en") maps to its supported regional tag.
func ParseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	if IsSupported(parsed) {
		return parsed, true
	}
	base, confidence := parsed.Base()
	if confidence == language.No {
		return language.Tag{}, false
	}
	for _, tag := range supportedTags {
		if tagBase, _ := tag.Base(); tagBase == base {
			return tag, true
		}
	}
	return language.Tag{}, false
}

// MatchTags picks the best supported tag for an Accept-Language preference
// list. It reports false when nothing in the list matches a supported locale,
// leaving the caller to apply its own fallback.
func MatchTags(preferred []language.Tag) (language.Tag, bool) {
	if len(preferred) == 0 {
		return language.Tag{}, false
	}
	_, index, confidence := tagMatcher.Match(preferred...)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return supportedTags[index], true
}

// IsSupported reports whether tag is one of the supported locales.
func IsSupported(tag language.Tag) bool {
	for _, supported := range supportedTags {
		if supported == tag {
			return true
		}
	}
	return false
}
