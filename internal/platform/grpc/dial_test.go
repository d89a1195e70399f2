package grpc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDialWithHealthSuccess(t *testing.T) {
	server := startHealthServer(t, "console")
	server.SetServing("console", true)

	conn, err := DialWithHealth(context.Background(), server.Addr(), "console", 2*time.Second, nil)
	if err != nil {
		t.Fatalf("dial with health: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
}

func TestDialWithHealthReturnsHealthStageWhenNotServing(t *testing.T) {
	server := startHealthServer(t, "console")

	start := time.Now()
	conn, err := DialWithHealth(context.Background(), server.Addr(), "console", 200*time.Millisecond, nil)
	if conn != nil {
		_ = conn.Close()
		t.Fatal("expected nil connection on error")
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %v", err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("stage = %q, want %q", dialErr.Stage, DialStageHealth)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded in chain, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("dial took %v, expected timeout to bound it", elapsed)
	}
}

func TestDialWithHealthRequiresAddress(t *testing.T) {
	_, err := DialWithHealth(context.Background(), " ", "", time.Second, nil)
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageConnect {
		t.Fatalf("expected connect stage error, got %v", err)
	}
}

func TestDialErrorNilSafe(t *testing.T) {
	var err *DialError
	if err.Error() != "gRPC dial error" {
		t.Fatalf("nil Error() = %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatal("nil Unwrap should be nil")
	}
}
