package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultMasterPath is the embedded master table location.
const DefaultMasterPath = "translations/master.toml"

//go:embed translations/*.toml
var embeddedMasterFS embed.FS

type masterFile struct {
	Languages []string        `toml:"languages"`
	Messages  []masterMessage `toml:"messages"`
}

type masterMessage struct {
	Source       string            `toml:"source"`
	Translations map[string]string `toml:"translations"`
}

type masterRow struct {
	source       string
	translations map[string]string
}

// MasterTable maps each source text to its translations across languages.
// It is loaded once per build and not modified afterwards.
type MasterTable struct {
	languages []string
	rows      []masterRow
	index     map[string]int
}

// LoadEmbedded loads the master table shipped with this package.
func LoadEmbedded() (*MasterTable, error) {
	return LoadFromFS(embeddedMasterFS, DefaultMasterPath)
}

// LoadFile loads a master table from a file on disk. An empty path selects
// the embedded table.
func LoadFile(path string) (*MasterTable, error) {
	if strings.TrimSpace(path) == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read master table %s: %w", path, err)
	}
	table, err := ParseMaster(data)
	if err != nil {
		return nil, fmt.Errorf("parse master table %s: %w", path, err)
	}
	return table, nil
}

// LoadFromFS loads a master table from the provided filesystem.
func LoadFromFS(masterFS fs.FS, path string) (*MasterTable, error) {
	data, err := fs.ReadFile(masterFS, path)
	if err != nil {
		return nil, fmt.Errorf("read master table %s: %w", path, err)
	}
	table, err := ParseMaster(data)
	if err != nil {
		return nil, fmt.Errorf("parse master table %s: %w", path, err)
	}
	return table, nil
}

// ParseMaster decodes a TOML master table.
func ParseMaster(data []byte) (*MasterTable, error) {
	var file masterFile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	table := &MasterTable{index: map[string]int{}}
	declared := map[string]struct{}{}
	for _, raw := range file.Languages {
		lang, err := NormalizeLanguage(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := declared[lang]; ok {
			return nil, fmt.Errorf("language %q declared twice", lang)
		}
		declared[lang] = struct{}{}
		table.languages = append(table.languages, lang)
	}
	if len(table.languages) == 0 {
		return nil, fmt.Errorf("languages list is required")
	}

	for i, message := range file.Messages {
		if strings.TrimSpace(message.Source) == "" {
			return nil, fmt.Errorf("message %d: source is required", i+1)
		}
		translations := make(map[string]string, len(message.Translations))
		for rawLang, value := range message.Translations {
			lang := strings.TrimSpace(rawLang)
			if _, ok := declared[lang]; !ok {
				return nil, fmt.Errorf("message %q: %w %q", message.Source, ErrUnknownLanguage, rawLang)
			}
			translations[lang] = value
		}
		table.set(message.Source, translations)
	}

	return table, nil
}

// set merges translations into the row for source; later values win.
func (m *MasterTable) set(source string, translations map[string]string) {
	if pos, ok := m.index[source]; ok {
		for lang, value := range translations {
			m.rows[pos].translations[lang] = value
		}
		return
	}
	m.index[source] = len(m.rows)
	m.rows = append(m.rows, masterRow{source: source, translations: translations})
}

// Languages returns the declared language codes in declaration order.
func (m *MasterTable) Languages() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.languages))
	copy(out, m.languages)
	return out
}

// HasLanguage reports whether lang is declared.
func (m *MasterTable) HasLanguage(lang string) bool {
	if m == nil {
		return false
	}
	trimmed := strings.TrimSpace(lang)
	for _, declared := range m.languages {
		if declared == trimmed {
			return true
		}
	}
	return false
}

// Len reports the number of distinct source texts.
func (m *MasterTable) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rows)
}

// ForLanguage derives the catalog for lang: every source text that has a
// translation for lang, in table order.
func (m *MasterTable) ForLanguage(lang string) (*Catalog, error) {
	if !m.HasLanguage(lang) {
		return nil, fmt.Errorf("%w %q", ErrUnknownLanguage, lang)
	}
	trimmed := strings.TrimSpace(lang)
	entries := NewEntries()
	for _, row := range m.rows {
		if value, ok := row.translations[trimmed]; ok {
			entries.Set(row.source, value)
		}
	}
	return &Catalog{Language: trimmed, Entries: entries}, nil
}

// Missing returns, in table order, the source texts without a translation for lang.
func (m *MasterTable) Missing(lang string) []string {
	if m == nil {
		return nil
	}
	trimmed := strings.TrimSpace(lang)
	var out []string
	for _, row := range m.rows {
		if _, ok := row.translations[trimmed]; !ok {
			out = append(out, row.source)
		}
	}
	return out
}
