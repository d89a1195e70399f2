// Package healthcheck checks the console gRPC health listener.
package healthcheck

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	entrypoint "github.com/crmrmm/console/internal/platform/cmd"
	"github.com/crmrmm/console/internal/platform/discovery"
	platformgrpc "github.com/crmrmm/console/internal/platform/grpc"
)

// Config holds healthcheck command configuration.
type Config struct {
	// Addr defaults to the console's in-network health address.
	Addr    string        `env:"CRMRMM_CONSOLE_HEALTH_ADDR"`
	Service string        `env:"CRMRMM_HEALTHCHECK_SERVICE" envDefault:"console"`
	Timeout time.Duration `env:"CRMRMM_HEALTHCHECK_TIMEOUT" envDefault:"3s"`
}

// ParseConfig loads environ (nil = process environment) and lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", "", "gRPC health address")
	fs.StringVar(&cfg.Service, "service", "", "health service name")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "time to wait for SERVING")
	if err := entrypoint.ParseConfigFromArgs(&cfg, environ, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run waits for the service to report SERVING and prints the outcome.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	addr := discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceConsole)
	conn, err := platformgrpc.DialWithHealth(ctx, addr, cfg.Service, cfg.Timeout, nil)
	if err != nil {
		return fmt.Errorf("check %s at %s: %w", cfg.Service, addr, err)
	}
	defer conn.Close()
	if _, err := fmt.Fprintf(out, "%s at %s: SERVING\n", cfg.Service, addr); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
