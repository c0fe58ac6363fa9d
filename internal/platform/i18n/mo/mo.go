// Package mo compiles translation catalogs into the binary lookup table
// consumed at runtime, and decodes such tables back.
//
// Layout (all integers little-endian uint32):
//
//	offset 0   magic 0x950412de
//	       4   format revision 0
//	       8   number of entries N
//	      12   offset of source index O (always 28)
//	      16   offset of translation index T (O + 8N)
//	      20   hash table size (0, unused)
//	      24   hash table offset (0, unused)
//	       O   N × (length, offset) of source texts, sorted by source
//	       T   N × (length, offset) of translations, paired by position
//	  T + 8N   payload: each source then its translation, NUL terminated
//
// Lengths exclude the terminating NUL; offsets are absolute.
package mo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/i18n/catalog"
)

const (
	// Magic identifies a compiled table written in little-endian byte order.
	Magic uint32 = 0x950412de
	// Revision is the only supported format revision.
	Revision uint32 = 0
	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 7 * 4
	// IndexRecordSize is the size of one (length, offset) index record.
	IndexRecordSize = 2 * 4
)

var (
	// ErrInvalidUTF8 indicates a source or translated text that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")
	// ErrTableTooLarge indicates a table whose offsets overflow 32 bits.
	ErrTableTooLarge = errors.New("compiled table exceeds 4 GiB")
)

// Header is the fixed-size table header.
type Header struct {
	Magic             uint32
	Revision          uint32
	Count             uint32
	SourceOffset      uint32
	TranslationOffset uint32
	HashSize          uint32
	HashOffset        uint32
}

// Compile encodes exactly the given entries as a compiled table.
func Compile(entries *catalog.Entries) ([]byte, error) {
	items := entries.All()
	for _, item := range items {
		if !utf8.ValidString(item.Source) {
			return nil, fmt.Errorf("%w: source %q", ErrInvalidUTF8, item.Source)
		}
		if !utf8.ValidString(item.Translation) {
			return nil, fmt.Errorf("%w: translation of %q", ErrInvalidUTF8, item.Source)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Source < items[j].Source
	})

	count := len(items)
	payloadStart := HeaderSize + 2*count*IndexRecordSize
	total := payloadStart
	for _, item := range items {
		total += len(item.Source) + 1 + len(item.Translation) + 1
	}
	if uint64(total) > math.MaxUint32 {
		return nil, ErrTableTooLarge
	}

	sourceOffset := HeaderSize
	translationOffset := sourceOffset + count*IndexRecordSize

	buf := make([]byte, total)
	header := Header{
		Magic:             Magic,
		Revision:          Revision,
		Count:             uint32(count),
		SourceOffset:      uint32(sourceOffset),
		TranslationOffset: uint32(translationOffset),
	}
	putHeader(buf, header)

	cursor := payloadStart
	for i, item := range items {
		putRecord(buf, sourceOffset+i*IndexRecordSize, len(item.Source), cursor)
		cursor += copy(buf[cursor:], item.Source) + 1

		putRecord(buf, translationOffset+i*IndexRecordSize, len(item.Translation), cursor)
		cursor += copy(buf[cursor:], item.Translation) + 1
	}
	return buf, nil
}

// CompileCatalog compiles c together with its reserved metadata entry.
func CompileCatalog(c *catalog.Catalog) ([]byte, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	return Compile(c.WithMetadata())
}

// WriteFile writes data to path, creating parent directories. A failed write
// may leave a truncated file behind; rerunning the build replaces it.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func putHeader(buf []byte, h Header) {
	fields := []uint32{h.Magic, h.Revision, h.Count, h.SourceOffset, h.TranslationOffset, h.HashSize, h.HashOffset}
	for i, field := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], field)
	}
}

func putRecord(buf []byte, at int, length int, offset int) {
	binary.LittleEndian.PutUint32(buf[at:], uint32(length))
	binary.LittleEndian.PutUint32(buf[at+4:], uint32(offset))
}
