// Package pagerender centralizes console page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/crmrmm/console/internal/services/console/templates"
)

// HTMXRequestHeader marks requests issued by htmx for partial swaps.
const HTMXRequestHeader = "HX-Request"

// ErrWriteResponse marks failures that happen after the status line was sent.
var ErrWriteResponse = errors.New("write page response")

// Page describes a page response for both full-document and HTMX flows.
type Page struct {
	StatusCode int
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(HTMXRequestHeader), "true")
}

// WritePage renders page inside the console layout, or the bare fragment for
// htmx requests. Nothing is written when rendering fails; errors wrapping
// ErrWriteResponse mean the headers are already out.
func WritePage(w http.ResponseWriter, r *http.Request, pageCtx templates.PageContext, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}

	var buf bytes.Buffer
	if IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return fmt.Errorf("render fragment: %w", err)
		}
	} else {
		if err := templates.Layout(pageCtx).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return fmt.Errorf("render layout: %w", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", HTMXRequestHeader)
	w.WriteHeader(statusCode)
	if r != nil && r.Method == http.MethodHead {
		return nil
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteResponse, err)
	}
	return nil
}
