// Package catalog holds the master translation table of the web application
// and the per-language catalogs derived from it.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Header values written into every catalog's metadata entry.
const (
	MIMEVersion             = "1.0"
	ContentType             = "text/plain; charset=UTF-8"
	ContentTransferEncoding = "8bit"
)

var (
	// ErrUnknownLanguage indicates a language that the master table does not declare.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrInvalidLanguage indicates a language code that is not a valid BCP 47 tag.
	ErrInvalidLanguage = errors.New("invalid language code")
)

// Catalog is the set of translations for one language.
type Catalog struct {
	Language string
	Entries  *Entries
}

// New returns a catalog for language holding a copy of entries.
func New(lang string, entries *Entries) (*Catalog, error) {
	normalized, err := NormalizeLanguage(lang)
	if err != nil {
		return nil, err
	}
	return &Catalog{Language: normalized, Entries: entries.Clone()}, nil
}

// Metadata returns the value stored under the reserved empty source text.
func (c *Catalog) Metadata() string {
	return Metadata(c.Language)
}

// WithMetadata returns the entries plus the reserved metadata entry. Any
// translation already recorded for the empty source text is replaced.
func (c *Catalog) WithMetadata() *Entries {
	out := c.Entries.Clone()
	out.Set("", c.Metadata())
	return out
}

// Metadata renders the catalog header for lang, one "Key: value\n" line per field.
func Metadata(lang string) string {
	var b strings.Builder
	for _, line := range HeaderLines(lang) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// HeaderLines returns the header fields of a catalog without line terminators.
func HeaderLines(lang string) []string {
	return []string{
		"MIME-Version: " + MIMEVersion,
		"Content-Type: " + ContentType,
		"Content-Transfer-Encoding: " + ContentTransferEncoding,
		"Language: " + lang,
	}
}

// NormalizeLanguage validates lang as a BCP 47 tag and returns it trimmed.
// The original spelling is kept so that artifact paths match the configured codes.
func NormalizeLanguage(lang string) (string, error) {
	trimmed := strings.TrimSpace(lang)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidLanguage)
	}
	if _, err := language.Parse(trimmed); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidLanguage, trimmed, err)
	}
	return trimmed, nil
}

// ParseLanguages splits a comma-separated language list and validates each code.
func ParseLanguages(value string) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lang, err := NormalizeLanguage(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no languages given", ErrInvalidLanguage)
	}
	return out, nil
}
