// Package catalogcompiler builds the intermediate and compiled translation
// artifacts of every configured language.
package catalogcompiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/mo"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/po"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/logging"
	platformotel "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/otel"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler/storage"
	storagesqlite "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler/storage/sqlite"
)

// LanguageError is the failure of one language within a batch.
type LanguageError struct {
	Language string
	Err      error
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Language, e.Err)
}

func (e *LanguageError) Unwrap() error {
	return e.Err
}

// BatchError reports the languages that failed while the rest were built.
type BatchError struct {
	Failures []*LanguageError
}

func (e *BatchError) Error() string {
	languages := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		languages = append(languages, failure.Language)
	}
	return fmt.Sprintf("%d language(s) failed: %s", len(e.Failures), strings.Join(languages, ", "))
}

// Unwrap exposes every per-language error to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		out = append(out, failure)
	}
	return out
}

// Result describes the artifacts built for one language.
type Result struct {
	Language string
	POPath   string
	MOPath   string
	Entries  int
	Checksum string
	Err      error
}

// Options supplies the collaborators of a Compiler. Zero values are usable.
type Options struct {
	Logger *zap.Logger
	Store  storage.BuildStore
	Tracer trace.Tracer
	Now    func() time.Time
	RunID  string
}

// Compiler runs one batch over the configured languages.
type Compiler struct {
	cfg    Config
	logger *zap.Logger
	store  storage.BuildStore
	tracer trace.Tracer
	now    func() time.Time
	runID  string
}

// NewCompiler validates cfg and returns a Compiler.
func NewCompiler(cfg Config, opts Options) (*Compiler, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	c := &Compiler{
		cfg:    cfg,
		logger: opts.Logger,
		store:  opts.Store,
		tracer: opts.Tracer,
		now:    opts.Now,
		runID:  strings.TrimSpace(opts.RunID),
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.tracer == nil {
		c.tracer = platformotel.Tracer()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}
	return c, nil
}

// RunID identifies this batch in the build ledger.
func (c *Compiler) RunID() string {
	return c.runID
}

// Paths returns the intermediate and compiled artifact locations for lang.
func (c *Compiler) Paths(lang string) (poPath string, moPath string) {
	dir := filepath.Join(c.cfg.LocaleDir, lang, "LC_MESSAGES")
	return filepath.Join(dir, c.cfg.Domain+".po"), filepath.Join(dir, c.cfg.Domain+".mo")
}

// Run builds every configured language in order. A failing language is
// reported and skipped; the returned error is a *BatchError naming every
// failed language, or nil. Only master table loading aborts the batch.
func (c *Compiler) Run(ctx context.Context, out io.Writer) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	var master *catalog.MasterTable
	if !c.cfg.FromPO {
		loaded, err := catalog.LoadFile(c.cfg.MasterPath)
		if err != nil {
			return nil, err
		}
		master = loaded
	}

	logger := c.logger.With(zap.String("run_id", c.runID), zap.String("domain", c.cfg.Domain))
	logger.Info("catalog build started", zap.Strings("languages", c.cfg.Languages), zap.Bool("from_po", c.cfg.FromPO))

	results := make([]Result, 0, len(c.cfg.Languages))
	batch := &BatchError{}
	for _, lang := range c.cfg.Languages {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := c.buildLanguage(ctx, master, lang, out)
		results = append(results, result)
		if result.Err != nil {
			batch.Failures = append(batch.Failures, &LanguageError{Language: lang, Err: result.Err})
			fmt.Fprintf(out, "Error compiling %s: %v\n", lang, result.Err)
			logger.Error("language build failed", zap.String("language", lang), zap.Error(result.Err))
		} else {
			logger.Info("language built",
				zap.String("language", lang),
				zap.Int("entries", result.Entries),
				zap.String("mo_path", result.MOPath),
				zap.String("checksum", result.Checksum),
			)
		}
	}

	built := len(results) - len(batch.Failures)
	fmt.Fprintf(out, "Built %d of %d language(s)\n", built, len(results))
	logger.Info("catalog build finished", zap.Int("built", built), zap.Int("failed", len(batch.Failures)))
	if len(batch.Failures) > 0 {
		return results, batch
	}
	return results, nil
}

func (c *Compiler) buildLanguage(ctx context.Context, master *catalog.MasterTable, lang string, out io.Writer) Result {
	ctx, span := c.tracer.Start(ctx, "catalog.compile",
		trace.WithAttributes(
			attribute.String("i18n.language", lang),
			attribute.String("i18n.domain", c.cfg.Domain),
		),
	)
	defer span.End()

	started := c.now()
	poPath, moPath := c.Paths(lang)
	result := Result{Language: lang, POPath: poPath, MOPath: moPath}

	result.Err = c.produce(master, lang, &result, out)
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	} else {
		span.SetAttributes(attribute.Int("i18n.entries", result.Entries))
	}

	if c.store != nil {
		record := storage.BuildRecord{
			RunID:      c.runID,
			Language:   lang,
			Domain:     c.cfg.Domain,
			Status:     storage.StatusCompiled,
			Entries:    result.Entries,
			Checksum:   result.Checksum,
			POPath:     poPath,
			MOPath:     moPath,
			StartedAt:  started,
			FinishedAt: c.now(),
		}
		if result.Err != nil {
			record.Status = storage.StatusFailed
			record.Error = result.Err.Error()
			record.Checksum = ""
		}
		if _, err := c.store.RecordBuild(ctx, record); err != nil {
			c.logger.Warn("record build", zap.String("language", lang), zap.Error(err))
		}
	}
	return result
}

func (c *Compiler) produce(master *catalog.MasterTable, lang string, result *Result, out io.Writer) error {
	var source *catalog.Catalog
	if c.cfg.FromPO {
		fmt.Fprintf(out, "Compiling %s -> %s\n", result.POPath, result.MOPath)
		entries, err := po.ParseFile(result.POPath)
		if err != nil {
			return err
		}
		parsed, err := catalog.New(lang, entries)
		if err != nil {
			return err
		}
		source = parsed
	} else {
		derived, err := master.ForLanguage(lang)
		if err != nil {
			return err
		}
		source = derived
		if err := po.WriteFile(result.POPath, lang, source.Entries); err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %s\n", result.POPath)
	}

	data, err := mo.CompileCatalog(source)
	if err != nil {
		return err
	}
	if err := mo.WriteFile(result.MOPath, data); err != nil {
		return err
	}
	fmt.Fprintf(out, "Compiled %s\n", result.MOPath)

	sum := sha256.Sum256(data)
	result.Entries = source.Entries.Len()
	result.Checksum = hex.EncodeToString(sum[:])
	return nil
}

// Run builds the logger and optional ledger described by cfg and executes one
// batch within cfg.Timeout.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := Options{Logger: logging.Named(logger, "catalog-compiler")}
	if strings.TrimSpace(cfg.DBPath) != "" {
		store, err := storagesqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open build ledger: %w", err)
		}
		defer store.Close()
		opts.Store = store
	}

	compiler, err := NewCompiler(cfg, opts)
	if err != nil {
		return err
	}
	_, err = compiler.Run(ctx, out)
	return err
}
