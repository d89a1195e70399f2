package otel_test

import (
	"context"
	"testing"

	"github.com/crmrmm/console/internal/platform/otel"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := otel.LoadConfig(map[string]string{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Enabled {
		t.Fatal("expected tracing enabled by default")
	}
	if cfg.Endpoint != "" {
		t.Fatalf("endpoint = %q, want empty", cfg.Endpoint)
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("sample ratio = %v, want 1", cfg.SampleRatio)
	}
}

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	t.Parallel()

	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenDisabled(t *testing.T) {
	t.Parallel()

	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{
		Enabled:  false,
		Endpoint: "http://localhost:4318",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupRejectsBadSampleRatio(t *testing.T) {
	t.Parallel()

	_, err := otel.Setup(context.Background(), "test-service", otel.Config{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		SampleRatio: 2,
	})
	if err == nil {
		t.Fatal("expected sample ratio error")
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported because no span is recorded.
	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Config{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		SampleRatio: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
