package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadEmbeddedHasExpectedLanguages(t *testing.T) {
	table, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded master table: %v", err)
	}
	if got := strings.Join(table.Languages(), ","); got != "hi,mr" {
		t.Fatalf("languages = %q, want hi,mr", got)
	}
	if table.Len() == 0 {
		t.Fatal("expected master table messages")
	}

	hi, err := table.ForLanguage("hi")
	if err != nil {
		t.Fatalf("catalog for hi: %v", err)
	}
	if got, ok := hi.Entries.Get("Home"); !ok || got != "होम" {
		t.Fatalf("hi Home = %q (%v), want होम", got, ok)
	}
	mr, err := table.ForLanguage("mr")
	if err != nil {
		t.Fatalf("catalog for mr: %v", err)
	}
	if got, ok := mr.Entries.Get("Maid Hiring System"); !ok || got != "मोलकरीण हायरिंग सिस्टम" {
		t.Fatalf("mr title = %q (%v)", got, ok)
	}
	if sources := sourcesOf(hi.Entries); sources[0] != "Maid Hiring System" || sources[1] != "Home" {
		t.Fatalf("expected master order to be preserved, got %v", sources[:2])
	}
}

func TestParseMasterSkipsMissingTranslations(t *testing.T) {
	table, err := ParseMaster([]byte(`languages = ["hi", "mr"]

[[messages]]
source = "Home"
translations = { hi = "होम" }

[[messages]]
source = "Logout"
translations = { hi = "लॉग आउट", mr = "बाहेर पडा" }
`))
	if err != nil {
		t.Fatalf("parse master: %v", err)
	}
	mr, err := table.ForLanguage("mr")
	if err != nil {
		t.Fatalf("catalog for mr: %v", err)
	}
	if mr.Entries.Len() != 1 {
		t.Fatalf("mr entries = %d, want 1", mr.Entries.Len())
	}
	if missing := table.Missing("mr"); len(missing) != 1 || missing[0] != "Home" {
		t.Fatalf("missing = %v, want [Home]", missing)
	}
}

func TestParseMasterDuplicateSourceLastWriteWins(t *testing.T) {
	table, err := ParseMaster([]byte(`languages = ["hi"]

[[messages]]
source = "Home"
translations = { hi = "first" }

[[messages]]
source = "Logout"
translations = { hi = "लॉग आउट" }

[[messages]]
source = "Home"
translations = { hi = "होम" }
`))
	if err != nil {
		t.Fatalf("parse master: %v", err)
	}
	hi, err := table.ForLanguage("hi")
	if err != nil {
		t.Fatalf("catalog for hi: %v", err)
	}
	if got, _ := hi.Entries.Get("Home"); got != "होम" {
		t.Fatalf("Home = %q, want last value", got)
	}
	if sources := strings.Join(sourcesOf(hi.Entries), ","); sources != "Home,Logout" {
		t.Fatalf("sources = %q, want first position kept", sources)
	}
}

func TestParseMasterRejectsUndeclaredLanguage(t *testing.T) {
	_, err := ParseMaster([]byte(`languages = ["hi"]

[[messages]]
source = "Home"
translations = { fr = "Accueil" }
`))
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected unknown language error, got %v", err)
	}
}

func TestParseMasterRejectsBlankSource(t *testing.T) {
	_, err := ParseMaster([]byte(`languages = ["hi"]

[[messages]]
source = "  "
translations = { hi = "x" }
`))
	if err == nil {
		t.Fatal("expected blank source error")
	}
}

func TestParseMasterRejectsInvalidLanguageTag(t *testing.T) {
	_, err := ParseMaster([]byte(`languages = ["not a tag"]`))
	if !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("expected invalid language error, got %v", err)
	}
}

func TestParseMasterRequiresLanguages(t *testing.T) {
	if _, err := ParseMaster([]byte(`languages = []`)); err == nil {
		t.Fatal("expected error for empty languages")
	}
}

func TestForLanguageUnknown(t *testing.T) {
	table, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded master table: %v", err)
	}
	if _, err := table.ForLanguage("fr"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected unknown language error, got %v", err)
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.toml": &fstest.MapFile{Data: []byte(`languages = ["hi"]
[[messages]]
source = "Welcome"
translations = { hi = "स्वागत" }
`)},
	}
	table, err := LoadFromFS(fsys, "custom.toml")
	if err != nil {
		t.Fatalf("load from fs: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1", table.Len())
	}
	if _, err := LoadFromFS(fsys, "missing.toml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.toml")
	if err := os.WriteFile(path, []byte("languages = [\"mr\"]\n"), 0o644); err != nil {
		t.Fatalf("write master: %v", err)
	}
	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if !table.HasLanguage("mr") {
		t.Fatal("expected mr language")
	}

	embedded, err := LoadFile("")
	if err != nil {
		t.Fatalf("load embedded via empty path: %v", err)
	}
	if !embedded.HasLanguage("hi") {
		t.Fatal("expected embedded table for empty path")
	}
}

func TestWithMetadataReplacesEmptySource(t *testing.T) {
	c, err := New("hi", EntriesFromPairs("", "stale", "Home", "होम"))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	entries := c.WithMetadata()
	got, ok := entries.Get("")
	if !ok {
		t.Fatal("expected metadata entry")
	}
	want := "MIME-Version: 1.0\nContent-Type: text/plain; charset=UTF-8\nContent-Transfer-Encoding: 8bit\nLanguage: hi\n"
	if got != want {
		t.Fatalf("metadata = %q, want %q", got, want)
	}
	if stale, _ := c.Entries.Get(""); stale != "stale" {
		t.Fatal("expected original entries to stay untouched")
	}
}

func TestParseLanguages(t *testing.T) {
	langs, err := ParseLanguages(" hi, mr ,,hi")
	if err != nil {
		t.Fatalf("parse languages: %v", err)
	}
	if got := strings.Join(langs, ","); got != "hi,mr" {
		t.Fatalf("languages = %q, want hi,mr", got)
	}
	if _, err := ParseLanguages(" , "); err == nil {
		t.Fatal("expected error for empty list")
	}
	if _, err := ParseLanguages("hi,??"); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("expected invalid language error, got %v", err)
	}
}
