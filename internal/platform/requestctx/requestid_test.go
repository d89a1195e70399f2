package requestctx

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("RequestIDFromContext = %q, want req-1", got)
	}
}

func TestRequestIDNilContext(t *testing.T) {
	//nolint:staticcheck // nil context handling is part of the contract.
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("RequestIDFromContext(nil) = %q", got)
	}
	//nolint:staticcheck // nil context handling is part of the contract.
	ctx := WithRequestID(nil, "req-2")
	if got := RequestIDFromContext(ctx); got != "req-2" {
		t.Fatalf("RequestIDFromContext = %q, want req-2", got)
	}
}
