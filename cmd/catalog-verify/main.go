// Package main checks compiled lookup tables against the master translation table.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/cmd"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/config"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/logging"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogverify"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := catalogverify.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	options := platformcmd.RunOptions{Logger: logging.Named(logger, platformcmd.ServiceCatalogVerify)}
	if err := platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceCatalogVerify, options, func(ctx context.Context) error {
		return catalogverify.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
