package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	LocaleDir string `env:"MAID_HIRING_TEST_LOCALE_DIR" envDefault:"locales"`
	Retries   int    `env:"MAID_HIRING_TEST_RETRIES" envDefault:"3"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.LocaleDir != "locales" || cfg.Retries != 3 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MAID_HIRING_TEST_RETRIES", "several")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.env")
	content := "MAID_HIRING_TEST_LOCALE_DIR=from-file\nMAID_HIRING_TEST_RETRIES=7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("MAID_HIRING_TEST_RETRIES", "5")
	t.Setenv("MAID_HIRING_TEST_LOCALE_DIR", "")
	os.Unsetenv("MAID_HIRING_TEST_LOCALE_DIR")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.LocaleDir != "from-file" {
		t.Fatalf("locale dir = %q, want from-file", cfg.LocaleDir)
	}
	if cfg.Retries != 5 {
		t.Fatalf("retries = %d, want existing value 5", cfg.Retries)
	}
}

func TestLoadDotEnvSkipsMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be skipped, got %v", err)
	}
}

func TestLoadDotEnvRejectsDirectory(t *testing.T) {
	if err := LoadDotEnv(t.TempDir()); err == nil {
		t.Fatal("expected error reading a directory")
	}
}
