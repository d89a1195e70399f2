package pages

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crmrmm/console/internal/services/console/navigation"
)

type fakeService struct{}

func (fakeService) PlaceholderHandler(entry navigation.Entry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(entry.ID))
	})
}

func TestRegisterRoutesServesEveryPlaceholder(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	RegisterRoutes(mux, fakeService{})

	for _, entry := range navigation.Placeholders() {
		t.Run(entry.ID, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, entry.Path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if rec.Body.String() != entry.ID {
				t.Fatalf("body = %q, want %q", rec.Body.String(), entry.ID)
			}
		})
	}
}

func TestRegisterRoutesSkipsDashboard(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	RegisterRoutes(mux, fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
