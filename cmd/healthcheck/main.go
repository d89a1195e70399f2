// Package main exits zero when the console health service reports SERVING.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	healthcmd "github.com/crmrmm/console/internal/cmd/healthcheck"
	"github.com/crmrmm/console/internal/platform/config"
)

func main() {
	cfg, err := healthcmd.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := healthcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("healthcheck: %v", err)
	}
}
