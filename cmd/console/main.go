// Package main starts the browser-facing console service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	consolecmd "github.com/crmrmm/console/internal/cmd/console"
	"github.com/crmrmm/console/internal/platform/config"
)

func main() {
	cfg, err := consolecmd.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consolecmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
