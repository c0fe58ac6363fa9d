// Package catalogverify checks compiled tables against the master table
// through the same lookup path the application uses.
package catalogverify

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	platformcmd "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/cmd"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/translator"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/logging"
)

// ErrVerificationFailed is returned when at least one lookup disagrees with
// the master table.
var ErrVerificationFailed = errors.New("translation verification failed")

// Config holds verifier configuration.
type Config struct {
	LocaleDir  string
	Languages  []string
	MasterPath string
	Domain     string
	Env        string
}

type envConfig struct {
	LocaleDir  string `env:"MAID_HIRING_LOCALE_DIR" envDefault:"locale"`
	Languages  string `env:"MAID_HIRING_LANGUAGES" envDefault:"hi,mr"`
	MasterPath string `env:"MAID_HIRING_MASTER_PATH"`
	Domain     string `env:"MAID_HIRING_DOMAIN" envDefault:"messages"`
	Env        string `env:"MAID_HIRING_ENV" envDefault:"development"`
}

// Summary counts the checks of one run.
type Summary struct {
	Passed int
	Failed int
}

// ParseConfig reads environment defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	fs.StringVar(&envCfg.LocaleDir, "locale-dir", "", "root directory of the compiled tables (default: MAID_HIRING_LOCALE_DIR or locale)")
	fs.StringVar(&envCfg.Languages, "languages", "", "comma-separated language codes to verify (default: MAID_HIRING_LANGUAGES or hi,mr)")
	fs.StringVar(&envCfg.MasterPath, "master", "", "master table TOML file (default: embedded table)")
	fs.StringVar(&envCfg.Domain, "domain", "", "artifact base name (default: MAID_HIRING_DOMAIN or messages)")
	if err := platformcmd.ParseConfigFromArgs(&envCfg, fs, args); err != nil {
		return Config{}, err
	}

	languages, err := catalog.ParseLanguages(envCfg.Languages)
	if err != nil {
		return Config{}, fmt.Errorf("languages: %w", err)
	}
	if strings.TrimSpace(envCfg.LocaleDir) == "" {
		return Config{}, errors.New("locale-dir is required")
	}
	return Config{
		LocaleDir:  envCfg.LocaleDir,
		Languages:  languages,
		MasterPath: envCfg.MasterPath,
		Domain:     envCfg.Domain,
		Env:        envCfg.Env,
	}, nil
}

// Verify looks up every master entry of every language through tr and
// prints one PASS or FAIL line per entry.
func Verify(master *catalog.MasterTable, tr *translator.Translator, languages []string, out io.Writer, logger *zap.Logger) (Summary, error) {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var summary Summary
	fmt.Fprintln(out, "Verifying Translations...")
	for _, lang := range languages {
		expected, err := master.ForLanguage(lang)
		if err != nil {
			return summary, err
		}
		if _, err := tr.Table(lang); err != nil {
			logger.Warn("compiled table unavailable", zap.String("language", lang), zap.Error(err))
		}
		for _, entry := range expected.Entries.All() {
			got := tr.Translate(lang, entry.Source)
			if got == entry.Translation {
				summary.Passed++
				fmt.Fprintf(out, "[PASS] %s: '%s' -> '%s'\n", lang, entry.Source, got)
				continue
			}
			summary.Failed++
			fmt.Fprintf(out, "[FAIL] %s: '%s' expected '%s', got '%s'\n", lang, entry.Source, entry.Translation, got)
		}
	}
	fmt.Fprintln(out, "Verification Complete.")
	fmt.Fprintf(out, "%d passed, %d failed\n", summary.Passed, summary.Failed)
	if summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d of %d lookups", ErrVerificationFailed, summary.Failed, summary.Passed+summary.Failed)
	}
	return summary, nil
}

// Run loads the master table and compiled tables described by cfg and
// verifies them.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	master, err := catalog.LoadFile(cfg.MasterPath)
	if err != nil {
		return err
	}
	tr, err := translator.New(translator.Config{
		LocaleDir: cfg.LocaleDir,
		Domain:    cfg.Domain,
		Languages: cfg.Languages,
	})
	if err != nil {
		return err
	}
	_, err = Verify(master, tr, cfg.Languages, out, logging.Named(logger, "catalog-verify"))
	return err
}
