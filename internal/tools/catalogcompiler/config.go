package catalogcompiler

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	platformcmd "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/cmd"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/timeouts"
)

const (
	defaultLocaleDir = "locale"
	defaultDomain    = "messages"
	defaultLanguages = "hi,mr"
)

// Config holds catalog compiler configuration.
type Config struct {
	LocaleDir  string
	Languages  []string
	MasterPath string
	Domain     string
	DBPath     string
	FromPO     bool
	Timeout    time.Duration
	Env        string
}

type envConfig struct {
	LocaleDir  string        `env:"MAID_HIRING_LOCALE_DIR" envDefault:"locale"`
	Languages  string        `env:"MAID_HIRING_LANGUAGES" envDefault:"hi,mr"`
	MasterPath string        `env:"MAID_HIRING_MASTER_PATH"`
	Domain     string        `env:"MAID_HIRING_DOMAIN" envDefault:"messages"`
	DBPath     string        `env:"MAID_HIRING_BUILD_DB_PATH"`
	Timeout    time.Duration `env:"MAID_HIRING_COMPILE_TIMEOUT"`
	Env        string        `env:"MAID_HIRING_ENV" envDefault:"development"`
}

// ParseConfig reads environment defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	envCfg := envConfig{Timeout: timeouts.Compile}
	var fromPO bool

	fs.StringVar(&envCfg.LocaleDir, "locale-dir", "", "root directory of the <lang>/LC_MESSAGES tree (default: MAID_HIRING_LOCALE_DIR or locale)")
	fs.StringVar(&envCfg.Languages, "languages", "", "comma-separated language codes to build (default: MAID_HIRING_LANGUAGES or hi,mr)")
	fs.StringVar(&envCfg.MasterPath, "master", "", "master table TOML file (default: embedded table)")
	fs.StringVar(&envCfg.Domain, "domain", "", "artifact base name (default: MAID_HIRING_DOMAIN or messages)")
	fs.StringVar(&envCfg.DBPath, "db-path", "", "build ledger sqlite path (empty disables the ledger)")
	fs.BoolVar(&fromPO, "from-po", false, "recompile existing intermediate catalogs instead of the master table")
	fs.DurationVar(&envCfg.Timeout, "timeout", timeouts.Compile, "overall build timeout")
	if err := platformcmd.ParseConfigFromArgs(&envCfg, fs, args); err != nil {
		return Config{}, err
	}

	languages, err := catalog.ParseLanguages(envCfg.Languages)
	if err != nil {
		return Config{}, fmt.Errorf("languages: %w", err)
	}
	cfg := Config{
		LocaleDir:  envCfg.LocaleDir,
		Languages:  languages,
		MasterPath: envCfg.MasterPath,
		Domain:     envCfg.Domain,
		DBPath:     envCfg.DBPath,
		FromPO:     fromPO,
		Timeout:    envCfg.Timeout,
		Env:        envCfg.Env,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withDefaults fills fields left empty by callers that build a Config directly.
func (cfg Config) withDefaults() (Config, error) {
	if strings.TrimSpace(cfg.LocaleDir) == "" {
		cfg.LocaleDir = defaultLocaleDir
	}
	if strings.TrimSpace(cfg.Domain) == "" {
		cfg.Domain = defaultDomain
	}
	if len(cfg.Languages) == 0 {
		languages, err := catalog.ParseLanguages(defaultLanguages)
		if err != nil {
			return Config{}, err
		}
		cfg.Languages = languages
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if strings.TrimSpace(cfg.LocaleDir) == "" {
		return errors.New("locale-dir is required")
	}
	if len(cfg.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	domain := strings.TrimSpace(cfg.Domain)
	if domain == "" {
		return errors.New("domain is required")
	}
	if strings.ContainsAny(domain, `/\`) {
		return fmt.Errorf("domain %q must be a file base name", domain)
	}
	if cfg.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}
