package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/otel"
)

type testConfig struct {
	LocaleDir string `env:"MAID_HIRING_CMD_TEST_LOCALE_DIR" envDefault:"locales"`
	Domain    string `env:"MAID_HIRING_CMD_TEST_DOMAIN" envDefault:"messages"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("MAID_HIRING_CMD_TEST_LOCALE_DIR", "env-locales")
	t.Setenv("MAID_HIRING_CMD_TEST_DOMAIN", "env-domain")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.LocaleDir, "locale-dir", cfg.LocaleDir, "locale dir")
	fs.StringVar(&cfg.Domain, "domain", cfg.Domain, "domain")

	if err := ParseArgs(fs, []string{"-locale-dir", "flag-locales"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.LocaleDir != "flag-locales" {
		t.Fatalf("expected flag value for locale dir, got %q", cfg.LocaleDir)
	}
	if cfg.Domain != "env-domain" {
		t.Fatalf("expected env domain, got %q", cfg.Domain)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("MAID_HIRING_CMD_TEST_DOMAIN", "site")

	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfg.LocaleDir, "locale-dir", "", "locale dir")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-locale-dir", "out"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.LocaleDir != "out" {
		t.Fatalf("expected parsed flag locale dir, got %q", cfg.LocaleDir)
	}
	if cfg.Domain != "site" {
		t.Fatalf("expected env domain, got %q", cfg.Domain)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetryAndOptions(context.Background(), "", RunOptions{}, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetryAndOptions(context.Background(), ServiceCatalogCompiler, RunOptions{}, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("MAID_HIRING_OTEL_ENDPOINT", "")
	want := errors.New("compile failed")
	called := false
	err := RunWithTelemetryAndOptions(context.Background(), ServiceCatalogCompiler, RunOptions{}, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("expected run to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestRunWithTelemetryLogsShutdownFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var shutdownDeadline bool
	options := RunOptions{
		Logger:          zap.New(core),
		ShutdownTimeout: time.Second,
		Setup: func(context.Context, string) (otel.ShutdownFunc, error) {
			return func(ctx context.Context) error {
				_, shutdownDeadline = ctx.Deadline()
				return errors.New("export: connection refused")
			}, nil
		},
	}

	err := RunWithTelemetryAndOptions(context.Background(), ServiceCatalogVerify, options, func(context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !shutdownDeadline {
		t.Fatal("expected shutdown context with a deadline")
	}
	entries := logs.FilterMessage("otel shutdown").All()
	if len(entries) != 1 {
		t.Fatalf("expected one shutdown warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["service"] != ServiceCatalogVerify || fields["error"] != "export: connection refused" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestRunWithTelemetryReportsSetupFailure(t *testing.T) {
	called := false
	options := RunOptions{
		Setup: func(context.Context, string) (otel.ShutdownFunc, error) {
			return nil, errors.New("bad endpoint")
		},
	}
	err := RunWithTelemetryAndOptions(context.Background(), ServiceI18nStatus, options, func(context.Context) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("err = %v, called = %v", err, called)
	}
}
