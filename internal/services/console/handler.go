package console

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/text/message"

	apperrors "github.com/crmrmm/console/internal/platform/errors"
	consolei18n "github.com/crmrmm/console/internal/services/console/i18n"
	"github.com/crmrmm/console/internal/services/console/mockdata"
	"github.com/crmrmm/console/internal/services/console/module/dashboard"
	"github.com/crmrmm/console/internal/services/console/module/pages"
	"github.com/crmrmm/console/internal/services/console/pagerender"
	"github.com/crmrmm/console/internal/services/console/routepath"
	"github.com/crmrmm/console/internal/services/console/static"
	"github.com/crmrmm/console/internal/services/console/templates"
	"github.com/crmrmm/console/internal/services/console/transport/httpmux"
)

const allowedPageMethods = "GET, HEAD"

// HandlerConfig configures the console HTTP handler.
type HandlerConfig struct {
	// DefaultLang is used when the request expresses no supported preference.
	DefaultLang string
	Logger      *zap.Logger
	// Dataset overrides the embedded dashboard data when non-nil.
	Dataset *mockdata.Dataset
}

// Handler routes console page requests.
type Handler struct {
	resolver consolei18n.Resolver
	logger   *zap.Logger
	dataset  mockdata.Dataset
}

// NewHandler builds the console HTTP handler with static assets, pages,
// access logging and request IDs.
func NewHandler(cfg HandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dataset := mockdata.Default()
	if cfg.Dataset != nil {
		dataset = *cfg.Dataset
	}
	h := &Handler{
		resolver: consolei18n.NewResolver(cfg.DefaultLang),
		logger:   logger,
		dataset:  dataset,
	}
	return withRequestID(withAccessLog(logger, h.routes()))
}

func (h *Handler) routes() http.Handler {
	consoleMux := http.NewServeMux()
	consoleMux.HandleFunc(routepath.Root, h.handleRoot)
	consoleMux.HandleFunc(routepath.Health, h.handleHealth)
	dashboard.RegisterRoutes(consoleMux, h)
	pages.RegisterRoutes(consoleMux, h)

	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, static.FS)
	httpmux.MountConsoleRoutes(rootMux, consoleMux)
	return rootMux
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	loc, tag := h.resolver.Resolve(w, r)
	return loc, tag.String()
}

func (h *Handler) pageContext(w http.ResponseWriter, r *http.Request) templates.PageContext {
	loc, lang := h.localizer(w, r)
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
	}
}

// handleRoot redirects the bare root to the dashboard and renders the
// not-found page for every unregistered path.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		h.handleNotFound(w, r)
		return
	}
	if !h.allowReadOnly(w, r) {
		return
	}
	target := routepath.Dashboard
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r)
	h.renderPage(w, r, page, apperrors.CodePageNotFound.HTTPStatus(), templates.NotFoundPage(page))
}

// allowReadOnly answers 405 for anything but GET and HEAD.
func (h *Handler) allowReadOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	_, lang := h.localizer(w, r)
	err := apperrors.WithMetadata(apperrors.CodeMethodNotAllowed, "method not allowed", map[string]string{
		"Method": r.Method,
		"Path":   r.URL.Path,
	})
	w.Header().Set("Allow", allowedPageMethods)
	http.Error(w, err.LocalizedMessage(lang), apperrors.HTTPStatus(err))
	return false
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page templates.PageContext, status int, fragment templ.Component) {
	if err := pagerender.WritePage(w, r, page, pagerender.Page{StatusCode: status, Fragment: fragment}); err != nil {
		h.logger.Error("render page",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		if errors.Is(err, pagerender.ErrWriteResponse) {
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
