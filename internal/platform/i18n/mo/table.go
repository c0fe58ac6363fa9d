package mo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
)

var (
	// ErrInvalidMagic indicates data that does not start with the table magic.
	ErrInvalidMagic = errors.New("invalid compiled table magic")
	// ErrUnsupportedRevision indicates a table written with another format revision.
	ErrUnsupportedRevision = errors.New("unsupported compiled table revision")
	// ErrTruncated indicates an index or string that points outside the data.
	ErrTruncated = errors.New("compiled table is truncated")
	// ErrUnsorted indicates a source index that is not sorted ascending.
	ErrUnsorted = errors.New("compiled table source index is not sorted")
)

// Record is one (length, offset) index entry.
type Record struct {
	Length uint32
	Offset uint32
}

// Table is a decoded compiled table. Lookups binary-search the source index.
type Table struct {
	header       Header
	sources      []string
	translations []string
}

// Decode parses and validates a compiled table.
func Decode(data []byte) (*Table, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d header bytes", ErrTruncated, len(data))
	}
	header := readHeader(data)
	if header.Magic != Magic {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidMagic, header.Magic)
	}
	if header.Revision != Revision {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedRevision, header.Revision)
	}

	sourceRecords, err := readRecords(data, header.SourceOffset, header.Count)
	if err != nil {
		return nil, fmt.Errorf("source index: %w", err)
	}
	translationRecords, err := readRecords(data, header.TranslationOffset, header.Count)
	if err != nil {
		return nil, fmt.Errorf("translation index: %w", err)
	}

	table := &Table{
		header:       header,
		sources:      make([]string, header.Count),
		translations: make([]string, header.Count),
	}
	for i := range sourceRecords {
		source, err := readString(data, sourceRecords[i])
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		if i > 0 && table.sources[i-1] >= source {
			return nil, fmt.Errorf("%w at entry %d", ErrUnsorted, i)
		}
		translation, err := readString(data, translationRecords[i])
		if err != nil {
			return nil, fmt.Errorf("translation %d: %w", i, err)
		}
		table.sources[i] = source
		table.translations[i] = translation
	}
	return table, nil
}

// ReadFile loads and decodes the compiled table at path.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return table, nil
}

// Header returns the decoded header.
func (t *Table) Header() Header {
	return t.header
}

// Len reports the number of entries, metadata entry included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sources)
}

// Lookup returns the translation recorded for source.
func (t *Table) Lookup(source string) (string, bool) {
	if t == nil {
		return "", false
	}
	i := sort.SearchStrings(t.sources, source)
	if i < len(t.sources) && t.sources[i] == source {
		return t.translations[i], true
	}
	return "", false
}

// Translate returns the translation for source, or source itself when absent.
func (t *Table) Translate(source string) string {
	if translation, ok := t.Lookup(source); ok {
		return translation
	}
	return source
}

// Metadata returns the value of the empty-source entry, if any.
func (t *Table) Metadata() (string, bool) {
	return t.Lookup("")
}

// Entries returns the table contents in table order, metadata excluded.
func (t *Table) Entries() *catalog.Entries {
	out := catalog.NewEntries()
	if t == nil {
		return out
	}
	for i, source := range t.sources {
		if source == "" {
			continue
		}
		out.Set(source, t.translations[i])
	}
	return out
}

func readHeader(data []byte) Header {
	field := func(i int) uint32 {
		return binary.LittleEndian.Uint32(data[i*4:])
	}
	return Header{
		Magic:             field(0),
		Revision:          field(1),
		Count:             field(2),
		SourceOffset:      field(3),
		TranslationOffset: field(4),
		HashSize:          field(5),
		HashOffset:        field(6),
	}
}

func readRecords(data []byte, offset uint32, count uint32) ([]Record, error) {
	end := uint64(offset) + uint64(count)*IndexRecordSize
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: index at %d with %d records", ErrTruncated, offset, count)
	}
	records := make([]Record, count)
	for i := range records {
		at := int(offset) + i*IndexRecordSize
		records[i] = Record{
			Length: binary.LittleEndian.Uint32(data[at:]),
			Offset: binary.LittleEndian.Uint32(data[at+4:]),
		}
	}
	return records, nil
}

func readString(data []byte, record Record) (string, error) {
	start := uint64(record.Offset)
	end := start + uint64(record.Length)
	if end >= uint64(len(data)) {
		return "", fmt.Errorf("%w: string at %d+%d", ErrTruncated, record.Offset, record.Length)
	}
	if data[end] != 0 {
		return "", fmt.Errorf("%w: string at %d missing terminator", ErrTruncated, record.Offset)
	}
	return string(data[start:end]), nil
}

// SourceRecords returns the raw source index of data without validating strings.
func SourceRecords(data []byte) ([]Record, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncated
	}
	header := readHeader(data)
	return readRecords(data, header.SourceOffset, header.Count)
}

// TranslationRecords returns the raw translation index of data without validating strings.
func TranslationRecords(data []byte) ([]Record, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncated
	}
	header := readHeader(data)
	return readRecords(data, header.TranslationOffset, header.Count)
}
