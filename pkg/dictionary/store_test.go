package dictionary

import (
	"context"
	"slices"
	"testing"

	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

func rec(id, wordID int64, word, pron string) Record {
	return NewRecord(id, wordID, word, phonetic.Tokens(pron))
}

func testStore() *Store {
	s := NewStore()
	s.Add(rec(1, 1, "cat", "K AE1 T"))
	s.Add(rec(2, 2, "bat", "B AE1 T"))
	s.Add(rec(3, 3, "battle", "B AE1 T AH0 L"))
	s.Add(rec(4, 4, "about", "AH0 B AW1 T"))
	s.Add(rec(5, 4, "about", "AH0 B AW2 T"))
	s.Add(rec(6, 5, "spider", "S P AY1 D ER0"))
	s.SetDefinitions(1, []Definition{{
		PartOfSpeech: "noun",
		Text:         "a small domesticated feline",
		Source:       "wordnet",
		Synonyms:     []string{"true cat"},
	}})
	s.SetDefinitions(2, []Definition{
		{PartOfSpeech: "noun", Text: "nocturnal flying mammal", Source: "wordnet"},
		{PartOfSpeech: "verb", Text: "strike with a bat", Source: "wordnet"},
	})
	return s
}

func scanWords(t *testing.T, s *Store, f Filter) []string {
	t.Helper()
	var words []string
	for r := range s.Records(context.Background(), f) {
		words = append(words, r.Word)
	}
	return words
}

func TestNewRecordFeatures(t *testing.T) {
	cases := []struct {
		word      string
		pron      string
		count     int
		stress    string
		tvowels   string
		tcons     string
		rhymeKeys []string
	}{
		{"cat", "K AE1 T", 1, "1", "AE1", "T", []string{"AE1 T"}},
		{"spider", "S P AY1 D ER0", 2, "10", "ER0", "", []string{"ER0", "AY1 D ER0"}},
		{"amazing", "AH0 M EY1 Z IH0 NG", 3, "010", "IH0", "NG",
			[]string{"IH0 NG", "EY1 Z IH0 NG", "AH0 M EY1 Z IH0 NG"}},
		{"shh", "SH", 0, "", "", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			r := rec(1, 1, tc.word, tc.pron)
			if r.SyllableCount != tc.count {
				t.Errorf("SyllableCount = %d, want %d", r.SyllableCount, tc.count)
			}
			if r.StressPattern != tc.stress {
				t.Errorf("StressPattern = %q, want %q", r.StressPattern, tc.stress)
			}
			if r.TerminalVowels != tc.tvowels {
				t.Errorf("TerminalVowels = %q, want %q", r.TerminalVowels, tc.tvowels)
			}
			if r.TerminalConsonants != tc.tcons {
				t.Errorf("TerminalConsonants = %q, want %q", r.TerminalConsonants, tc.tcons)
			}
			if !slices.Equal(r.RhymeKeys, tc.rhymeKeys) {
				t.Errorf("RhymeKeys = %v, want %v", r.RhymeKeys, tc.rhymeKeys)
			}
		})
	}
}

func TestRecordRhymeKeyBeyondPrecomputed(t *testing.T) {
	r := rec(1, 1, "examination", "IH0 G Z AE2 M AH0 N EY1 SH AH0 N")
	if len(r.RhymeKeys) != 4 {
		t.Fatalf("precomputed %d keys, want 4", len(r.RhymeKeys))
	}
	key, ok := r.RhymeKey(5)
	if !ok || key != "IH0 G Z AE2 M AH0 N EY1 SH AH0 N" {
		t.Errorf("RhymeKey(5) = %q, %v", key, ok)
	}
	if _, ok := r.RhymeKey(6); ok {
		t.Error("RhymeKey(6) should not exist")
	}
	if _, ok := r.RhymeKey(0); ok {
		t.Error("RhymeKey(0) should not exist")
	}
}

func TestStoreScanOrder(t *testing.T) {
	got := scanWords(t, testStore(), Filter{})
	want := []string{"about", "about", "bat", "battle", "cat", "spider"}
	if !slices.Equal(got, want) {
		t.Errorf("scan order = %v, want %v", got, want)
	}

	// variants of a word come back in id order
	var ids []int64
	for r := range testStore().Records(context.Background(), Filter{}) {
		if r.Word == "about" {
			ids = append(ids, r.ID)
		}
	}
	if !slices.Equal(ids, []int64{4, 5}) {
		t.Errorf("about ids = %v, want [4 5]", ids)
	}
}

func TestStoreLookup(t *testing.T) {
	s := testStore()
	if got := s.Lookup("CAT"); len(got) != 1 || got[0].Word != "cat" {
		t.Errorf("Lookup(CAT) = %v", got)
	}
	if got := s.Lookup("about"); len(got) != 2 {
		t.Errorf("Lookup(about) returned %d records, want 2", len(got))
	}
	if got := s.Lookup("dog"); got != nil {
		t.Errorf("Lookup(dog) = %v, want nil", got)
	}
}

func TestStoreFilter(t *testing.T) {
	s := testStore()
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"part of speech", Filter{PartOfSpeech: "verb"}, []string{"bat"}},
		{"definition query", Filter{DefinitionQuery: "FELINE"}, []string{"cat"}},
		{"synonym query", Filter{SynonymQuery: "true"}, []string{"cat"}},
		{"combined", Filter{PartOfSpeech: "noun", DefinitionQuery: "mammal"}, []string{"bat"}},
		{"no hits", Filter{PartOfSpeech: "adverb"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scanWords(t, s, tc.filter); !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWordsWithPrefix(t *testing.T) {
	s := testStore()
	if got := s.WordsWithPrefix("ba", 0); !slices.Equal(got, []string{"bat", "battle"}) {
		t.Errorf("WordsWithPrefix(ba) = %v", got)
	}
	if got := s.WordsWithPrefix("ba", 1); !slices.Equal(got, []string{"bat"}) {
		t.Errorf("WordsWithPrefix(ba, 1) = %v", got)
	}
	all := s.WordsWithPrefix("", 0)
	want := []string{"about", "bat", "battle", "cat", "spider"}
	if !slices.Equal(all, want) {
		t.Errorf("WordsWithPrefix(\"\") = %v, want %v", all, want)
	}
}

func TestDefinitionsFor(t *testing.T) {
	s := testStore()
	defs := s.DefinitionsFor([]int64{1, 2, 999})
	if len(defs) != 2 {
		t.Fatalf("got %d entries, want 2", len(defs))
	}
	if len(defs[2]) != 2 || defs[2][1].PartOfSpeech != "verb" {
		t.Errorf("definitions for 2 = %v", defs[2])
	}
	if _, ok := defs[999]; ok {
		t.Error("unexpected entry for unknown id")
	}
}

func TestRecordsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	for range testStore().Records(ctx, Filter{}) {
		n++
	}
	if n != 0 {
		t.Errorf("canceled scan yielded %d records", n)
	}
}
