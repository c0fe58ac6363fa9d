// Package main renders translator-friendly status reports of the master
// translation table.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	platformcmd "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/cmd"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/config"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/mo"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/logging"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler/storage"
	storagesqlite "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler/storage/sqlite"
)

type report struct {
	SourceLanguage string           `json:"source_language"`
	Sources        int              `json:"sources"`
	Languages      []languageStatus `json:"languages"`
}

type languageStatus struct {
	Language    string       `json:"language"`
	Sources     int          `json:"sources"`
	Translated  int          `json:"translated"`
	Missing     int          `json:"missing"`
	Completion  float64      `json:"completion"`
	MissingKeys []string     `json:"missing_keys"`
	Compiled    *tableStatus `json:"compiled,omitempty"`
	LatestBuild *buildStatus `json:"latest_build,omitempty"`
}

type tableStatus struct {
	Path    string   `json:"path"`
	Entries int      `json:"entries"`
	Stale   []string `json:"stale"`
	Absent  []string `json:"absent"`
}

type buildStatus struct {
	RunID      string    `json:"run_id"`
	Status     string    `json:"status"`
	Entries    int       `json:"entries"`
	Checksum   string    `json:"checksum,omitempty"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

type options struct {
	MasterPath  string `env:"MAID_HIRING_MASTER_PATH"`
	LocaleDir   string `env:"MAID_HIRING_LOCALE_DIR"`
	Domain      string `env:"MAID_HIRING_DOMAIN" envDefault:"messages"`
	DBPath      string `env:"MAID_HIRING_BUILD_DB_PATH"`
	Env         string `env:"MAID_HIRING_ENV" envDefault:"development"`
	MarkdownOut string
	JSONOut     string
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("Error: %v", err)
	}
	opts, err := parseOptions(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(opts.Env)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	runOptions := platformcmd.RunOptions{Logger: logging.Named(logger, platformcmd.ServiceI18nStatus)}
	if err := platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceI18nStatus, runOptions, func(ctx context.Context) error {
		return generate(ctx, opts, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func run(ctx context.Context, fs *flag.FlagSet, args []string, out io.Writer) error {
	opts, err := parseOptions(fs, args)
	if err != nil {
		return err
	}
	return generate(ctx, opts, out)
}

func generate(ctx context.Context, opts options, out io.Writer) error {
	master, err := catalog.LoadFile(opts.MasterPath)
	if err != nil {
		return fmt.Errorf("load master table: %w", err)
	}

	var store storage.BuildStore
	if strings.TrimSpace(opts.DBPath) != "" {
		ledger, err := storagesqlite.Open(ctx, opts.DBPath)
		if err != nil {
			return fmt.Errorf("open build ledger: %w", err)
		}
		defer ledger.Close()
		store = ledger
	}

	rep, err := buildReport(ctx, master, opts, store)
	if err != nil {
		return err
	}
	if err := writeJSON(opts.JSONOut, rep); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	if err := writeMarkdown(opts.MarkdownOut, rep); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	_, err = fmt.Fprintf(out, "wrote %s and %s\n", opts.MarkdownOut, opts.JSONOut)
	return err
}

func parseOptions(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.MasterPath, "master", "", "master table TOML file (default: embedded table)")
	fs.StringVar(&opts.LocaleDir, "locale-dir", "", "compiled table root to compare against (empty skips the comparison)")
	fs.StringVar(&opts.Domain, "domain", "", "artifact base name (default: MAID_HIRING_DOMAIN or messages)")
	fs.StringVar(&opts.DBPath, "db-path", "", "build ledger sqlite path (empty skips build history)")
	fs.StringVar(&opts.MarkdownOut, "out", "docs/reference/i18n-status.md", "markdown output path")
	fs.StringVar(&opts.JSONOut, "json-out", "docs/reference/i18n-status.json", "json output path")
	if err := platformcmd.ParseConfigFromArgs(&opts, fs, args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.MarkdownOut) == "" || strings.TrimSpace(opts.JSONOut) == "" {
		return options{}, errors.New("out and json-out are required")
	}
	return opts, nil
}

func buildReport(ctx context.Context, master *catalog.MasterTable, opts options, store storage.BuildStore) (report, error) {
	languages := master.Languages()
	statuses := make([]languageStatus, 0, len(languages))
	for _, lang := range languages {
		missing := master.Missing(lang)
		if missing == nil {
			missing = []string{}
		}
		sort.Strings(missing)
		translated := master.Len() - len(missing)
		status := languageStatus{
			Language:    lang,
			Sources:     master.Len(),
			Translated:  translated,
			Missing:     len(missing),
			Completion:  percent(translated, master.Len()),
			MissingKeys: missing,
		}

		if strings.TrimSpace(opts.LocaleDir) != "" {
			compiled, err := compareTable(master, lang, filepath.Join(opts.LocaleDir, lang, "LC_MESSAGES", opts.Domain+".mo"))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return report{}, err
			}
			status.Compiled = compiled
		}

		if store != nil {
			record, err := store.LatestBuild(ctx, lang)
			switch {
			case errors.Is(err, storage.ErrNotFound):
			case err != nil:
				return report{}, fmt.Errorf("latest build %s: %w", lang, err)
			default:
				status.LatestBuild = &buildStatus{
					RunID:      record.RunID,
					Status:     string(record.Status),
					Entries:    record.Entries,
					Checksum:   record.Checksum,
					Error:      record.Error,
					FinishedAt: record.FinishedAt,
				}
			}
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Language < statuses[j].Language
	})
	return report{SourceLanguage: "en", Sources: master.Len(), Languages: statuses}, nil
}

// compareTable lists master translations that the compiled table lacks or
// holds with a different value.
func compareTable(master *catalog.MasterTable, lang string, path string) (*tableStatus, error) {
	table, err := mo.ReadFile(path)
	if err != nil {
		return nil, err
	}
	expected, err := master.ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	status := &tableStatus{Path: path, Entries: table.Entries().Len(), Stale: []string{}, Absent: []string{}}
	for _, entry := range expected.Entries.All() {
		got, ok := table.Lookup(entry.Source)
		switch {
		case !ok:
			status.Absent = append(status.Absent, entry.Source)
		case got != entry.Translation:
			status.Stale = append(status.Stale, entry.Source)
		}
	}
	sort.Strings(status.Absent)
	sort.Strings(status.Stale)
	return status, nil
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeMarkdown(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	var b strings.Builder
	b.WriteString("# Translation Status\n\n")
	b.WriteString("Generated by `i18nstatus`.\n\n")
	fmt.Fprintf(&b, "Source language: `%s`. Source texts: %d.\n\n", rep.SourceLanguage, rep.Sources)

	b.WriteString("## Language Summary\n\n")
	b.WriteString("| Language | Sources | Translated | Missing | Completion | Last Build |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | --- |\n")
	for _, lang := range rep.Languages {
		lastBuild := "-"
		if lang.LatestBuild != nil {
			lastBuild = fmt.Sprintf("%s %s", lang.LatestBuild.Status, lang.LatestBuild.FinishedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %.1f%% | %s |\n", lang.Language, lang.Sources, lang.Translated, lang.Missing, lang.Completion, lastBuild)
	}

	for _, lang := range rep.Languages {
		fmt.Fprintf(&b, "\n## Language: `%s`\n", lang.Language)

		if lang.Compiled != nil {
			fmt.Fprintf(&b, "\nCompiled table `%s` holds %d entries.\n", lang.Compiled.Path, lang.Compiled.Entries)
			writeKeyList(&b, "Absent From Compiled Table", lang.Compiled.Absent)
			writeKeyList(&b, "Stale In Compiled Table", lang.Compiled.Stale)
		}
		if lang.LatestBuild != nil && lang.LatestBuild.Error != "" {
			fmt.Fprintf(&b, "\nLast build failed: %s\n", lang.LatestBuild.Error)
		}
		writeKeyList(&b, "Missing Translations", lang.MissingKeys)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		b.WriteString("- `")
		b.WriteString(key)
		b.WriteString("`\n")
	}
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
