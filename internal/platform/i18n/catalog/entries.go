package catalog

// Entry is one source text and its translation.
type Entry struct {
	Source      string
	Translation string
}

// Entries is an insertion-ordered mapping of source text to translated text.
// Setting an existing source text replaces its translation in place.
type Entries struct {
	index map[string]int
	items []Entry
}

// NewEntries returns an empty ordered mapping.
func NewEntries() *Entries {
	return &Entries{index: map[string]int{}}
}

// EntriesFromPairs builds an ordered mapping from alternating source/translation
// pairs. It panics on an odd argument count and is meant for literals and tests.
func EntriesFromPairs(pairs ...string) *Entries {
	if len(pairs)%2 != 0 {
		panic("catalog: EntriesFromPairs requires source/translation pairs")
	}
	entries := NewEntries()
	for i := 0; i < len(pairs); i += 2 {
		entries.Set(pairs[i], pairs[i+1])
	}
	return entries
}

// Set records translation for source. Last write wins; position is kept.
func (e *Entries) Set(source string, translation string) {
	if e.index == nil {
		e.index = map[string]int{}
	}
	if pos, ok := e.index[source]; ok {
		e.items[pos].Translation = translation
		return
	}
	e.index[source] = len(e.items)
	e.items = append(e.items, Entry{Source: source, Translation: translation})
}

// Get returns the translation recorded for source.
func (e *Entries) Get(source string) (string, bool) {
	if e == nil {
		return "", false
	}
	pos, ok := e.index[source]
	if !ok {
		return "", false
	}
	return e.items[pos].Translation, true
}

// Len reports the number of distinct source texts.
func (e *Entries) Len() int {
	if e == nil {
		return 0
	}
	return len(e.items)
}

// All returns a copy of the entries in insertion order.
func (e *Entries) All() []Entry {
	if e == nil {
		return nil
	}
	out := make([]Entry, len(e.items))
	copy(out, e.items)
	return out
}

// Clone returns an independent copy.
func (e *Entries) Clone() *Entries {
	out := NewEntries()
	if e == nil {
		return out
	}
	for _, item := range e.items {
		out.Set(item.Source, item.Translation)
	}
	return out
}
