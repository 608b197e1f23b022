// Package dictionary stores pronunciation records and their definitions
// and persists them as compressed chunk files.
package dictionary

import (
	"context"
	"iter"
	"sort"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Filter narrows a record scan by lexical information. Zero value
// admits everything. PartOfSpeech requires an exact match on some
// definition; the query fields require case insensitive substring
// matches over definition text and synonyms.
type Filter struct {
	PartOfSpeech    string
	DefinitionQuery string
	SynonymQuery    string
}

// Empty reports whether the filter admits every record.
func (f Filter) Empty() bool {
	return f.PartOfSpeech == "" && f.DefinitionQuery == "" && f.SynonymQuery == ""
}

func (f Filter) admits(defs []Definition) bool {
	if f.PartOfSpeech != "" {
		found := false
		for _, d := range defs {
			if d.PartOfSpeech == f.PartOfSpeech {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.DefinitionQuery != "" {
		q := strings.ToLower(f.DefinitionQuery)
		found := false
		for _, d := range defs {
			if strings.Contains(strings.ToLower(d.Text), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.SynonymQuery != "" {
		q := strings.ToLower(f.SynonymQuery)
		found := false
		for _, d := range defs {
			for _, syn := range d.Synonyms {
				if strings.Contains(strings.ToLower(syn), q) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store holds the loaded dictionary in memory: records sorted by
// (word, id) for deterministic scans, a patricia trie over words for
// exact and prefix lookup, and definitions keyed by word id. Build it
// fully before serving reads.
type Store struct {
	mu      sync.RWMutex
	records []Record
	trie    *patricia.Trie
	defs    map[int64][]Definition
	dirty   bool
}

func NewStore() *Store {
	return &Store{
		trie: patricia.NewTrie(),
		defs: make(map[int64][]Definition),
	}
}

// Add appends a record. The store re-sorts lazily on the next read.
func (s *Store) Add(rec Record) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.dirty = true
	s.mu.Unlock()
}

// SetDefinitions replaces the definitions of a word.
func (s *Store) SetDefinitions(wordID int64, defs []Definition) {
	s.mu.Lock()
	s.defs[wordID] = defs
	s.mu.Unlock()
}

// Len returns the number of pronunciation records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// finalize sorts into a fresh slice and rebuilds the trie, so slices
// handed to earlier snapshots stay valid.
func (s *Store) finalize() {
	if !s.dirty {
		return
	}
	recs := make([]Record, len(s.records))
	copy(recs, s.records)
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Word != recs[j].Word {
			return recs[i].Word < recs[j].Word
		}
		return recs[i].ID < recs[j].ID
	})
	trie := patricia.NewTrie()
	for i, rec := range recs {
		p := patricia.Prefix(rec.Word)
		if item := trie.Get(p); item != nil {
			trie.Set(p, append(item.([]int), i))
		} else {
			trie.Insert(p, []int{i})
		}
	}
	s.records = recs
	s.trie = trie
	s.dirty = false
}

func (s *Store) snapshot() ([]Record, *patricia.Trie, map[int64][]Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalize()
	return s.records, s.trie, s.defs
}

// Records returns a lazy word-ascending scan over the records admitted
// by the filter. The scan stops early when ctx is done.
func (s *Store) Records(ctx context.Context, filter Filter) iter.Seq[Record] {
	recs, _, defs := s.snapshot()
	return func(yield func(Record) bool) {
		for _, rec := range recs {
			if ctx.Err() != nil {
				return
			}
			if !filter.Empty() && !filter.admits(defs[rec.WordID]) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Lookup returns every pronunciation record of a word, matched case
// insensitively.
func (s *Store) Lookup(word string) []Record {
	recs, trie, _ := s.snapshot()
	item := trie.Get(patricia.Prefix(strings.ToLower(word)))
	if item == nil {
		return nil
	}
	indices := item.([]int)
	out := make([]Record, len(indices))
	for i, idx := range indices {
		out[i] = recs[idx]
	}
	return out
}

// WordsWithPrefix returns up to limit distinct words starting with the
// prefix, ascending. A limit below one means no limit.
func (s *Store) WordsWithPrefix(prefix string, limit int) []string {
	_, trie, _ := s.snapshot()
	var words []string
	trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	sort.Strings(words)
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// DefinitionsFor batches definition lookup by word id. Ids without
// definitions are absent from the result. The slices are shared with
// the store and must not be mutated.
func (s *Store) DefinitionsFor(wordIDs []int64) map[int64][]Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64][]Definition, len(wordIDs))
	for _, id := range wordIDs {
		if defs, ok := s.defs[id]; ok {
			out[id] = defs
		}
	}
	return out
}
