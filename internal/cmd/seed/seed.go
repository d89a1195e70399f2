// Package seed parses seed command flags and runs the PSA demo scenario.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	entrypoint "github.com/crmrmm/console/internal/platform/cmd"
	"github.com/crmrmm/console/internal/platform/logging"
	"github.com/crmrmm/console/internal/seed"
	"github.com/crmrmm/console/internal/services/psa"
	"github.com/crmrmm/console/internal/services/psa/storage"
	"github.com/crmrmm/console/internal/services/psa/storage/memory"
	"github.com/crmrmm/console/internal/services/psa/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"CRMRMM_PSA_DB_PATH" envDefault:"data/psa.db"`
	// Memory runs the scenario against an in-memory store.
	Memory  bool
	Logging logging.Config
}

// ParseConfig loads environ (nil = process environment) and lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.DBPath, "db-path", "", "path to the PSA sqlite database")
	fs.BoolVar(&cfg.Memory, "memory", false, "use an in-memory store instead of sqlite")
	fs.StringVar(&cfg.Logging.Level, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Logging.Format, "log-format", "", "log format (json, console)")
	if err := entrypoint.ParseConfigFromArgs(&cfg, environ, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario and writes the summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	logger, err := logging.New(cfg.Logging, entrypoint.ServiceSeed)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	return RunWithLogger(ctx, cfg, out, logger)
}

// RunWithLogger executes the scenario with an injected logger.
func RunWithLogger(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, logger, func(ctx context.Context) error {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("close psa store", zap.Error(err))
			}
		}()

		engine, err := psa.NewEngine(store)
		if err != nil {
			return err
		}
		summary, err := seed.Run(ctx, engine, out)
		if err != nil {
			return fmt.Errorf("run seed scenario: %w", err)
		}
		logger.Info("seed scenario complete",
			zap.Bool("memory", cfg.Memory),
			zap.Int("tickets", len(summary.Tickets)),
			zap.Int("notifications", len(summary.Notifications)),
			zap.Int("prebilling", len(summary.PrebillingQueue)),
		)
		return nil
	})
}

func openStore(ctx context.Context, cfg Config) (storage.Store, error) {
	if cfg.Memory {
		return memory.New(), nil
	}
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}
