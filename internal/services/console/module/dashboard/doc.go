// Package dashboard registers the dashboard route.
package dashboard
