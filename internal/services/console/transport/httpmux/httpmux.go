// Package httpmux mounts console handlers into the root mux.
package httpmux

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/crmrmm/console/internal/services/console/routepath"
)

// MountStatic wires static asset serving into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS) {
	if rootMux == nil || staticFS == nil {
		return
	}
	handler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	rootMux.Handle(routepath.StaticPrefix, WithStaticMime(handler))
}

// MountConsoleRoutes mounts console page routes under the root path.
func MountConsoleRoutes(rootMux *http.ServeMux, consoleMux http.Handler) {
	if rootMux == nil || consoleMux == nil {
		return
	}
	rootMux.Handle(routepath.Root, consoleMux)
}

// WithStaticMime attaches explicit content-type hints for known static assets.
func WithStaticMime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := strings.ToLower(r.URL.Path); {
		case strings.HasSuffix(path, ".css"):
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case strings.HasSuffix(path, ".svg"):
			w.Header().Set("Content-Type", "image/svg+xml")
		}
		next.ServeHTTP(w, r)
	})
}
