// Package main compiles the master translation table into per-language
// catalogs and binary lookup tables.
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
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := catalogcompiler.ParseConfig(flag.CommandLine, os.Args[1:])
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

	options := platformcmd.RunOptions{Logger: logging.Named(logger, platformcmd.ServiceCatalogCompiler)}
	if err := platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceCatalogCompiler, options, func(ctx context.Context) error {
		return catalogcompiler.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
