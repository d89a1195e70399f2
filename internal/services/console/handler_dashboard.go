package console

import (
	"net/http"

	"github.com/crmrmm/console/internal/services/console/templates"
)

// HandleDashboard renders the dashboard from the configured dataset.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.allowReadOnly(w, r) {
		return
	}
	page := h.pageContext(w, r)
	view := templates.NewDashboardView(page, h.dataset)
	h.renderPage(w, r, page, http.StatusOK, templates.DashboardPage(page, view))
}
