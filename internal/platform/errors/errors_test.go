package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("validate: %w", WithMetadata(CodeTicketNotFound, "ticket missing", map[string]string{"TicketID": "tic_1"}))
	if !stderrors.Is(err, New(CodeTicketNotFound, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeClientNotFound, "")) {
		t.Fatal("expected different code not to match")
	}
	if got := CodeOf(err); got != CodeTicketNotFound {
		t.Fatalf("CodeOf = %q, want %q", got, CodeTicketNotFound)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("record not found")
	err := Wrap(CodeClientNotFound, "unknown client cli_1", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "unknown client cli_1: record not found" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: stderrors.New("plain"), want: http.StatusInternalServerError},
		{err: New(CodePageNotFound, "x"), want: http.StatusNotFound},
		{err: New(CodeTimeEntryNonPositive, "x"), want: http.StatusBadRequest},
		{err: New(CodeMethodNotAllowed, "x"), want: http.StatusMethodNotAllowed},
		{err: New(CodeFailedPrecondition, "x"), want: http.StatusConflict},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestLocalizedMessage(t *testing.T) {
	t.Parallel()

	err := WithMetadata(CodeClientNotFound, "client missing", map[string]string{"ClientID": "cli_42"})
	if got := err.LocalizedMessage("fr-FR"); got != "Client cli_42 introuvable." {
		t.Fatalf("fr-FR message = %q", got)
	}
	if got := err.LocalizedMessage("en-US"); got != "Client cli_42 not found." {
		t.Fatalf("en-US message = %q", got)
	}
}
