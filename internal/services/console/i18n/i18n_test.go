package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestResolveTagOrder(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("fr-FR")
	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        string
		wantPersist bool
	}{
		{name: "default", target: "/dashboard", want: "fr-FR"},
		{name: "query wins", target: "/dashboard?lang=en-US", cookie: "fr-FR", accept: "fr", want: "en-US", wantPersist: true},
		{name: "invalid query falls through to cookie", target: "/dashboard?lang=xx", cookie: "en-US", want: "en-US"},
		{name: "cookie beats header", target: "/dashboard", cookie: "en-US", accept: "fr-FR", want: "en-US"},
		{name: "accept language", target: "/dashboard", accept: "en-GB,en;q=0.8", want: "en-US"},
		{name: "unsupported accept language", target: "/dashboard", accept: "de-DE", want: "fr-FR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := resolver.ResolveTag(req)
			if got.String() != tc.want {
				t.Fatalf("tag = %q, want %q", got, tc.want)
			}
			if persist != tc.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tc.wantPersist)
			}
		})
	}
}

func TestUnsupportedAcceptLanguageUsesConfiguredDefault(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	got, persist := NewResolver("en-US").ResolveTag(req)
	if got.String() != "en-US" || persist {
		t.Fatalf("ResolveTag = %q, %v, want en-US, false", got, persist)
	}
}

func TestNewResolverFallback(t *testing.T) {
	t.Parallel()

	if got := NewResolver("en-US").Default().String(); got != "en-US" {
		t.Fatalf("default = %q", got)
	}
	if got := NewResolver("klingon").Default().String(); got != "fr-FR" {
		t.Fatalf("default = %q", got)
	}
	var zero Resolver
	if got := zero.Default().String(); got != "fr-FR" {
		t.Fatalf("zero default = %q", got)
	}
}

func TestResolveSetsCookieForExplicitChoice(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients?lang=en-US", nil)
	printer, tag := NewResolver("fr-FR").Resolve(rec, req)
	if tag.String() != "en-US" {
		t.Fatalf("tag = %q", tag)
	}
	if got := printer.Sprintf("nav.settings"); got != "Settings" {
		t.Fatalf("nav.settings = %q", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "en-US" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestResolveWithoutChoiceSetsNoCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	printer, _ := NewResolver("fr-FR").Resolve(rec, req)
	if got := printer.Sprintf("nav.settings"); got != "Paramètres" {
		t.Fatalf("nav.settings = %q", got)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
}

func TestBuildLanguageOptions(t *testing.T) {
	t.Parallel()

	got := BuildLanguageOptions("en-US", func(tag language.Tag) string {
		return Printer(tag).Sprintf(LanguageKey(tag))
	})
	want := []LanguageOption{
		{Tag: "fr-FR", Label: "Français"},
		{Tag: "en-US", Label: "English", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLanguageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, query, tag, want string
	}{
		{path: "/clients", query: "", tag: "en-US", want: "/clients?lang=en-US"},
		{path: "/clients", query: "lang=fr-FR&page=2", tag: "en-US", want: "/clients?lang=en-US&page=2"},
		{path: "", query: "%zz", tag: "fr-FR", want: "/?lang=fr-FR"},
	}
	for _, tc := range tests {
		if got := LanguageURL(tc.path, tc.query, tc.tag); got != tc.want {
			t.Fatalf("LanguageURL(%q, %q, %q) = %q, want %q", tc.path, tc.query, tc.tag, got, tc.want)
		}
	}
}
