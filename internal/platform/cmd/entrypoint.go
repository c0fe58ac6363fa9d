// Package cmd holds the startup plumbing shared by the command-line tools.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/config"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/otel"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/timeouts"
)

// Tool identifiers used for telemetry and logger names.
const (
	ServiceCatalogCompiler = "catalog-compiler"
	ServiceCatalogVerify   = "catalog-verify"
	ServiceI18nStatus      = "i18n-status"
)

// RunOptions controls shared entrypoint behavior.
type RunOptions struct {
	// ShutdownTimeout bounds the telemetry flush after the run returns.
	ShutdownTimeout time.Duration
	// Logger receives telemetry export and shutdown failures. Nil discards them.
	Logger *zap.Logger
	// Setup initialises tracing. Nil selects otel.Setup.
	Setup func(ctx context.Context, service string) (otel.ShutdownFunc, error)
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetryAndOptions sets up tracing for service and executes run,
// flushing spans afterwards.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	} else {
		otel.LogErrors(logger)
	}
	setup := options.Setup
	if setup == nil {
		setup = otel.Setup
	}
	shutdown, err := setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = timeouts.TelemetryShutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.String("service", service), zap.Error(err))
		}
	}()
	return run(ctx)
}
