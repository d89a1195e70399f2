package templates

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/crmrmm/console/internal/platform/i18n/catalog"
)

// Localizer provides translated strings for templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns the translation of key. A missing localizer or a key the
// localizer's locale lacks falls back to the base locale catalog, then to
// the key itself.
func T(loc Localizer, key message.Reference, args ...any) string {
	keyString, isString := key.(string)
	if loc != nil {
		out := loc.Sprintf(key, args...)
		if !isString || out != keyString {
			return out
		}
	}
	if !isString {
		return ""
	}
	text, ok := catalog.Default().Message(catalog.BaseLocale, keyString)
	if !ok {
		return keyString
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}
