// Package po reads and writes the intermediate text catalogs produced for
// every language before compilation.
//
// The writer emits a header entry followed by one msgid/msgstr pair per
// translation. The parser is the minimal single-line reader those documents
// need: continuation lines and plural forms are not supported.
package po

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
)

const (
	msgidPrefix  = `msgid "`
	msgstrPrefix = `msgstr "`
)

// maxLineSize bounds a single catalog line.
const maxLineSize = 1 << 20

// Render returns the intermediate catalog for lang.
func Render(lang string, entries *catalog.Entries) string {
	lines := []string{
		`msgid ""`,
		`msgstr ""`,
	}
	for _, header := range catalog.HeaderLines(lang) {
		lines = append(lines, quote(header+"\n"))
	}
	lines = append(lines, "")

	for _, entry := range entries.All() {
		lines = append(lines, "msgid "+quote(entry.Source))
		lines = append(lines, "msgstr "+quote(entry.Translation))
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Write renders the catalog for lang into w.
func Write(w io.Writer, lang string, entries *catalog.Entries) error {
	if _, err := io.WriteString(w, Render(lang, entries)); err != nil {
		return fmt.Errorf("write catalog %s: %w", lang, err)
	}
	return nil
}

// WriteFile writes the catalog for lang to path, creating parent directories.
func WriteFile(path string, lang string, entries *catalog.Entries) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(Render(lang, entries)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Parse recovers source/translation pairs from an intermediate catalog.
// The header entry (empty msgid) is skipped and duplicate msgids overwrite
// earlier ones.
func Parse(r io.Reader) (*catalog.Entries, error) {
	entries := catalog.NewEntries()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var current string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, ok := quotedValue(line, msgidPrefix); ok {
			current = value
			continue
		}
		if value, ok := quotedValue(line, msgstrPrefix); ok {
			if current != "" {
				entries.Set(current, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	return entries, nil
}

// ParseFile parses the intermediate catalog at path.
func ParseFile(path string) (*catalog.Entries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

func quotedValue(line string, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) || len(line) <= len(prefix) || !strings.HasSuffix(line, `"`) {
		return "", false
	}
	return unescape(line[len(prefix) : len(line)-1]), true
}

func quote(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		switch ch := value[i]; ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch != '\\' || i+1 == len(value) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch next := value[i]; next {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(next)
		}
	}
	return b.String()
}
