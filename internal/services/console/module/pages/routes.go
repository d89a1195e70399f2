// Package pages registers the placeholder page routes.
package pages

import (
	"net/http"

	"github.com/crmrmm/console/internal/services/console/navigation"
)

// Service builds the handler for one placeholder page.
type Service interface {
	PlaceholderHandler(entry navigation.Entry) http.Handler
}

// RegisterRoutes wires one route per placeholder navigation entry.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	for _, entry := range navigation.Placeholders() {
		mux.Handle(entry.Path, service.PlaceholderHandler(entry))
	}
}
