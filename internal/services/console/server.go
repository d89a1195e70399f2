package console

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/crmrmm/console/internal/platform/discovery"
	platformgrpc "github.com/crmrmm/console/internal/platform/grpc"
	"github.com/crmrmm/console/internal/platform/timeouts"
	"github.com/crmrmm/console/internal/services/console/mockdata"
)

// Config defines the inputs for the console process.
type Config struct {
	HTTPAddr string
	// HealthAddr enables the gRPC health listener when set.
	HealthAddr  string
	DefaultLang string
	// Dataset overrides the embedded dashboard data when non-nil.
	Dataset *mockdata.Dataset
}

// Server hosts the console pages and the optional gRPC health listener.
type Server struct {
	httpAddr     string
	listener     net.Listener
	httpServer   *http.Server
	healthServer *platformgrpc.HealthServer
	logger       *zap.Logger
}

// NewServer binds the configured listeners and builds the HTTP server.
func NewServer(config Config, logger *zap.Logger) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen http %s: %w", httpAddr, err)
	}

	var healthServer *platformgrpc.HealthServer
	if healthAddr := strings.TrimSpace(config.HealthAddr); healthAddr != "" {
		healthServer, err = platformgrpc.ListenHealth(healthAddr, discovery.ServiceConsole)
		if err != nil {
			_ = listener.Close()
			return nil, err
		}
	}

	handler := NewHandler(HandlerConfig{
		DefaultLang: config.DefaultLang,
		Logger:      logger,
		Dataset:     config.Dataset,
	})
	httpServer := &http.Server{
		Handler:           otelhttp.NewHandler(handler, discovery.ServiceConsole),
		ReadHeaderTimeout: timeouts.ReadHeader,
		WriteTimeout:      timeouts.Write,
		IdleTimeout:       timeouts.Idle,
	}

	return &Server{
		httpAddr:     listener.Addr().String(),
		listener:     listener,
		httpServer:   httpServer,
		healthServer: healthServer,
		logger:       logger,
	}, nil
}

// Addr returns the bound HTTP address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// HealthAddr returns the bound gRPC health address, or "" when disabled.
func (s *Server) HealthAddr() string {
	if s == nil {
		return ""
	}
	return s.healthServer.Addr()
}

// ListenAndServe serves HTTP until ctx ends, then shuts down gracefully.
// The console reports SERVING on the health listener only while HTTP runs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("console server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	healthErr := make(chan error, 1)
	if s.healthServer != nil {
		go func() {
			healthErr <- s.healthServer.Serve(healthCtx)
		}()
		s.logger.Info("console health listening", zap.String("addr", s.healthServer.Addr()))
	} else {
		healthErr <- nil
	}
	defer func() {
		s.healthServer.SetServing(discovery.ServiceConsole, false)
		stopHealth()
		if err := <-healthErr; err != nil {
			s.logger.Warn("health server stopped", zap.Error(err))
		}
	}()

	serveErr := make(chan error, 1)
	s.logger.Info("console listening", zap.String("addr", s.httpAddr))
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()
	s.healthServer.SetServing(discovery.ServiceConsole, true)

	select {
	case <-ctx.Done():
		s.healthServer.SetServing(discovery.ServiceConsole, false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases listeners that were never served.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		s.logger.Warn("close http server", zap.Error(err))
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Warn("close http listener", zap.Error(err))
	}
	if err := s.healthServer.Close(); err != nil {
		s.logger.Warn("close health server", zap.Error(err))
	}
}
