// Package icons defines the icon identifiers used by console navigation.
//
// Identifiers are stable names for intent; the browser side decides how to
// draw them. The Lucide mapping is the default theme.
package icons
