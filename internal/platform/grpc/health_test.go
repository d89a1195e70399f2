package grpc

import (
	"context"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealthServerReportsServingTransitions(t *testing.T) {
	server := startHealthServer(t, "console")

	conn := dialHealthServer(t, server.Addr())
	defer conn.Close()
	client := grpc_health_v1.NewHealthClient(conn)

	if got := checkStatus(t, client, "console"); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("initial status = %s, want NOT_SERVING", got)
	}
	server.SetServing("console", true)
	if got := checkStatus(t, client, "console"); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status = %s, want SERVING", got)
	}
	if got := checkStatus(t, client, ""); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("overall status = %s, want SERVING", got)
	}
	server.SetServing("console", false)
	if got := checkStatus(t, client, "console"); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %s, want NOT_SERVING", got)
	}
}

func TestWaitForHealthTransitionsToServing(t *testing.T) {
	server := startHealthServer(t, "console")

	conn := dialHealthServer(t, server.Addr())
	defer conn.Close()

	go func() {
		time.Sleep(200 * time.Millisecond)
		server.SetServing("console", true)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := WaitForHealth(ctx, conn, "console", nil); err != nil {
		t.Fatalf("wait for health after transition: %v", err)
	}
}

func TestWaitForHealthRespectsContext(t *testing.T) {
	server := startHealthServer(t, "console")

	conn := dialHealthServer(t, server.Addr())
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := WaitForHealth(ctx, conn, "console", nil); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestListenHealthRequiresAddress(t *testing.T) {
	if _, err := ListenHealth("  "); err == nil {
		t.Fatal("expected address error")
	}
}

func startHealthServer(t *testing.T, services ...string) *HealthServer {
	t.Helper()

	server, err := ListenHealth("127.0.0.1:0", services...)
	if err != nil {
		t.Fatalf("listen health: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve health: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("health server did not stop")
		}
	})
	return server
}

func dialHealthServer(t *testing.T, addr string) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	return conn
}

func checkStatus(t *testing.T, client grpc_health_v1.HealthClient, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("health check %q: %v", service, err)
	}
	return resp.GetStatus()
}

func TestHealthServerCloseWithoutServe(t *testing.T) {
	server, err := ListenHealth("127.0.0.1:0", "console")
	if err != nil {
		t.Fatalf("listen health: %v", err)
	}
	if err := server.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := server.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
