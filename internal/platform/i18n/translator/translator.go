// Package translator serves compiled tables to the running application.
//
// Tables are read from <LocaleDir>/<lang>/LC_MESSAGES/<Domain>.mo the first
// time a language is requested and kept for the life of the Translator.
package translator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/mo"
)

const (
	// DefaultDomain is the base name of compiled tables.
	DefaultDomain = "messages"
	// DefaultLanguage is the language source texts are written in.
	DefaultLanguage = "en"
)

// Config describes where compiled tables live and which languages exist.
type Config struct {
	LocaleDir string
	Domain    string
	// Languages lists the translated languages, excluding Default.
	Languages []string
	// Default is the source language; requests for it return source texts.
	Default string
}

// Translator resolves requested languages and looks up translations.
// It is safe for concurrent use.
type Translator struct {
	localeDir string
	domain    string
	codes     []string
	tags      []language.Tag
	matcher   language.Matcher

	mu     sync.RWMutex
	tables map[string]*loadedTable
}

type loadedTable struct {
	table   *mo.Table
	builder *xcatalog.Builder
}

// New validates cfg and returns a Translator. No table is read until needed.
func New(cfg Config) (*Translator, error) {
	defaultCode := strings.TrimSpace(cfg.Default)
	if defaultCode == "" {
		defaultCode = DefaultLanguage
	}
	defaultCode, err := catalog.NormalizeLanguage(defaultCode)
	if err != nil {
		return nil, fmt.Errorf("default language: %w", err)
	}
	domain := strings.TrimSpace(cfg.Domain)
	if domain == "" {
		domain = DefaultDomain
	}

	t := &Translator{
		localeDir: cfg.LocaleDir,
		domain:    domain,
		tables:    map[string]*loadedTable{},
	}
	seen := map[string]struct{}{}
	for _, raw := range append([]string{defaultCode}, cfg.Languages...) {
		code, err := catalog.NormalizeLanguage(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		t.codes = append(t.codes, code)
		t.tags = append(t.tags, language.MustParse(code))
	}
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// Supported returns the language codes served, default first.
func (t *Translator) Supported() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// DefaultTag returns the tag of the source language.
func (t *Translator) DefaultTag() language.Tag {
	return t.tags[0]
}

// Resolve maps a requested language code or Accept-Language style value to a
// supported code. Anything unmatched resolves to the default language.
func (t *Translator) Resolve(lang string) string {
	requested := strings.TrimSpace(lang)
	if requested == "" {
		return t.codes[0]
	}
	for _, code := range t.codes {
		if strings.EqualFold(code, requested) {
			return code
		}
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return t.codes[0]
	}
	_, index, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.codes[0]
	}
	return t.codes[index]
}

// Path returns the compiled table location for lang.
func (t *Translator) Path(lang string) string {
	return filepath.Join(t.localeDir, lang, "LC_MESSAGES", t.domain+".mo")
}

// Table returns the compiled table for the resolved form of lang, reading it
// on first use. The default language has no table and yields nil.
func (t *Translator) Table(lang string) (*mo.Table, error) {
	loaded, err := t.load(t.Resolve(lang))
	if err != nil || loaded == nil {
		return nil, err
	}
	return loaded.table, nil
}

func (t *Translator) load(code string) (*loadedTable, error) {
	if code == t.codes[0] {
		return nil, nil
	}

	t.mu.RLock()
	loaded, ok := t.tables[code]
	t.mu.RUnlock()
	if ok {
		return loaded, nil
	}

	table, err := mo.ReadFile(t.Path(code))
	if err != nil {
		return nil, fmt.Errorf("load %s table: %w", code, err)
	}
	tag := t.tags[t.indexOf(code)]
	builder := xcatalog.NewBuilder(xcatalog.Fallback(t.tags[0]))
	for _, entry := range table.Entries().All() {
		if err := builder.SetString(tag, entry.Source, entry.Translation); err != nil {
			return nil, fmt.Errorf("register %s %q: %w", code, entry.Source, err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.tables[code]; ok {
		return existing, nil
	}
	loaded = &loadedTable{table: table, builder: builder}
	t.tables[code] = loaded
	return loaded, nil
}

// Lookup returns the translation of source for lang and whether one exists.
func (t *Translator) Lookup(lang string, source string) (string, bool, error) {
	table, err := t.Table(lang)
	if err != nil {
		return "", false, err
	}
	if table == nil {
		return "", false, nil
	}
	translation, ok := table.Lookup(source)
	return translation, ok, nil
}

// Translate returns the translation of source for lang. Untranslated text,
// unsupported languages and unreadable tables all yield source unchanged.
func (t *Translator) Translate(lang string, source string) string {
	translation, ok, err := t.Lookup(lang, source)
	if err != nil || !ok {
		return source
	}
	return translation
}

// Printer returns a formatting printer for lang whose catalog holds the
// compiled strings. When the table cannot be read the printer formats source
// texts as given and the load error is returned alongside it.
func (t *Translator) Printer(lang string) (*message.Printer, error) {
	code := t.Resolve(lang)
	tag := t.tags[t.indexOf(code)]
	loaded, err := t.load(code)
	if err != nil || loaded == nil {
		return message.NewPrinter(tag, message.Catalog(xcatalog.NewBuilder(xcatalog.Fallback(t.tags[0])))), err
	}
	return message.NewPrinter(tag, message.Catalog(loaded.builder)), nil
}

// Warm loads the table of every translated language and joins the failures.
func (t *Translator) Warm() error {
	var errs []error
	for _, code := range t.codes[1:] {
		if _, err := t.Table(code); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Translator) indexOf(code string) int {
	for i, candidate := range t.codes {
		if candidate == code {
			return i
		}
	}
	return 0
}
