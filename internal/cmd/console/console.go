// Package console parses console command flags and starts the HTTP console.
package console

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/crmrmm/console/internal/platform/cmd"
	"github.com/crmrmm/console/internal/platform/logging"
	consoleservice "github.com/crmrmm/console/internal/services/console"
	"go.uber.org/zap"
)

// Config holds console command configuration.
type Config struct {
	HTTPAddr    string `env:"CRMRMM_CONSOLE_HTTP_ADDR"    envDefault:"localhost:8090"`
	HealthAddr  string `env:"CRMRMM_CONSOLE_HEALTH_ADDR"`
	DefaultLang string `env:"CRMRMM_CONSOLE_DEFAULT_LANG" envDefault:"fr-FR"`
	Logging     logging.Config
}

// ParseConfig loads environ (nil = process environment) and lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "", "HTTP listen address")
	fs.StringVar(&cfg.HealthAddr, "health-addr", "", "gRPC health listen address (empty disables)")
	fs.StringVar(&cfg.DefaultLang, "default-lang", "", "fallback locale when the request has no preference")
	fs.StringVar(&cfg.Logging.Level, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Logging.Format, "log-format", "", "log format (json, console)")
	if err := entrypoint.ParseConfigFromArgs(&cfg, environ, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the console until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging, entrypoint.ServiceConsole)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	return RunWithLogger(ctx, cfg, logger)
}

// RunWithLogger serves the console with an injected logger.
func RunWithLogger(ctx context.Context, cfg Config, logger *zap.Logger) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceConsole, logger, func(ctx context.Context) error {
		server, err := consoleservice.NewServer(consoleservice.Config{
			HTTPAddr:    cfg.HTTPAddr,
			HealthAddr:  cfg.HealthAddr,
			DefaultLang: cfg.DefaultLang,
		}, logger)
		if err != nil {
			return fmt.Errorf("init console server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve console: %w", err)
		}
		return nil
	})
}
