package catalogverify

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/mo"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/translator"
)

const testMaster = `languages = ["hi", "mr"]

[[messages]]
source = "Home"
translations = { hi = "होम", mr = "मुखपृष्ठ" }

[[messages]]
source = "Logout"
translations = { hi = "लॉग आउट" }
`

func loadMaster(t *testing.T) *catalog.MasterTable {
	t.Helper()
	master, err := catalog.ParseMaster([]byte(testMaster))
	if err != nil {
		t.Fatalf("parse master: %v", err)
	}
	return master
}

func writeTable(t *testing.T, dir, lang string, pairs ...string) {
	t.Helper()
	c, err := catalog.New(lang, catalog.EntriesFromPairs(pairs...))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	data, err := mo.CompileCatalog(c)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := mo.WriteFile(filepath.Join(dir, lang, "LC_MESSAGES", "messages.mo"), data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newTranslator(t *testing.T, dir string) *translator.Translator {
	t.Helper()
	tr, err := translator.New(translator.Config{LocaleDir: dir, Languages: []string{"hi", "mr"}})
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return tr
}

func TestVerifyPassesMatchingTables(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "hi", "Home", "होम", "Logout", "लॉग आउट")
	writeTable(t, dir, "mr", "Home", "मुखपृष्ठ")

	var out bytes.Buffer
	summary, err := Verify(loadMaster(t), newTranslator(t, dir), []string{"hi", "mr"}, &out, nil)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if summary.Passed != 3 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if !strings.Contains(out.String(), "[PASS] hi: 'Home' -> 'होम'\n") {
		t.Fatalf("output =\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), "Verifying Translations...\n") {
		t.Fatalf("output =\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Verification Complete.\n3 passed, 0 failed\n") {
		t.Fatalf("output =\n%s", out.String())
	}
}

func TestVerifyReportsMismatches(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "hi", "Home", "घर", "Logout", "लॉग आउट")

	core, logs := observer.New(zapcore.WarnLevel)
	var out bytes.Buffer
	summary, err := Verify(loadMaster(t), newTranslator(t, dir), []string{"hi", "mr"}, &out, zap.New(core))
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected verification failure, got %v", err)
	}
	if summary.Passed != 1 || summary.Failed != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if !strings.Contains(out.String(), "[FAIL] hi: 'Home' expected 'होम', got 'घर'") {
		t.Fatalf("output =\n%s", out.String())
	}
	if !strings.Contains(out.String(), "[FAIL] mr: 'Home' expected 'मुखपृष्ठ', got 'Home'") {
		t.Fatalf("output =\n%s", out.String())
	}
	warnings := logs.FilterMessage("compiled table unavailable").All()
	if len(warnings) != 1 || warnings[0].ContextMap()["language"] != "mr" {
		t.Fatalf("warnings = %+v", warnings)
	}
}

func TestVerifyRejectsUndeclaredLanguage(t *testing.T) {
	_, err := Verify(loadMaster(t), newTranslator(t, t.TempDir()), []string{"ta"}, io.Discard, nil)
	if !errors.Is(err, catalog.ErrUnknownLanguage) {
		t.Fatalf("expected unknown language, got %v", err)
	}
}

func TestRunAgainstDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "hi", "Home", "होम", "Logout", "लॉग आउट")
	masterPath := filepath.Join(t.TempDir(), "master.toml")
	if err := os.WriteFile(masterPath, []byte(testMaster), 0o644); err != nil {
		t.Fatalf("write master: %v", err)
	}

	var out bytes.Buffer
	err := Run(context.Background(), Config{LocaleDir: dir, Languages: []string{"hi"}, MasterPath: masterPath}, &out)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "2 passed, 0 failed") {
		t.Fatalf("output =\n%s", out.String())
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, Config{LocaleDir: t.TempDir(), Languages: []string{"hi"}}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	t.Setenv("MAID_HIRING_LANGUAGES", "mr")
	fs := flag.NewFlagSet("catalog-verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, err := ParseConfig(fs, []string{"-locale-dir", "/srv/locale"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.LocaleDir != "/srv/locale" || len(cfg.Languages) != 1 || cfg.Languages[0] != "mr" || cfg.Domain != "messages" {
		t.Fatalf("cfg = %+v", cfg)
	}

	fs = flag.NewFlagSet("catalog-verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-languages", ","}); err == nil {
		t.Fatal("expected languages error")
	}
}
