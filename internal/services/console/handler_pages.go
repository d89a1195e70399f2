package console

import (
	"net/http"

	"github.com/crmrmm/console/internal/services/console/navigation"
	"github.com/crmrmm/console/internal/services/console/templates"
)

// PlaceholderHandler renders the static placeholder page for entry.
func (h *Handler) PlaceholderHandler(entry navigation.Entry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != entry.Path {
			h.handleNotFound(w, r)
			return
		}
		if !h.allowReadOnly(w, r) {
			return
		}
		page := h.pageContext(w, r)
		view := templates.NewPlaceholderView(page, entry)
		h.renderPage(w, r, page, http.StatusOK, templates.PlaceholderPage(page, view))
	})
}
