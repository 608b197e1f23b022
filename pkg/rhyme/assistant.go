// Package rhyme builds high level rhyme suggestions on top of the
// search engine.
package rhyme

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/phonetic"
	"github.com/bastiangx/rhymeserve/pkg/search"
)

const (
	// DefaultMaxSyllables bounds how many trailing syllables of the
	// source word SuggestRhymes queries.
	DefaultMaxSyllables = 3
	// DefaultMaxResults caps each syllable bucket from SuggestRhymes.
	DefaultMaxResults = 20
	// DefaultPerfectResults caps each pronunciation group from
	// PerfectRhymes.
	DefaultPerfectResults = 25
)

var wordRe = regexp.MustCompile(`[a-z']+`)

// Assistant combines pronunciation lookups and search queries.
type Assistant struct {
	store  *dictionary.Store
	engine *search.Engine
}

func New(store *dictionary.Store, engine *search.Engine) *Assistant {
	return &Assistant{store: store, engine: engine}
}

// SuggestOptions tunes SuggestRhymes. Zero values pick the defaults; a
// negative MaxResults lifts the per-bucket cap.
type SuggestOptions struct {
	MaxSyllables  int
	MaxResults    int
	MaxDistance   *int
	MinSimilarity *float64
	PartOfSpeech  string
}

// PerfectOptions tunes PerfectRhymes.
type PerfectOptions struct {
	MaxResults   int
	PartOfSpeech string
}

// SyllableRhymes holds the matches for one rhyme depth.
type SyllableRhymes struct {
	Syllables int
	Matches   []search.Result
}

// PronunciationRhymes groups perfect rhymes under one pronunciation of
// the source word.
type PronunciationRhymes struct {
	Pronunciation string
	Matches       []search.Result
}

// SuggestRhymes finds rhymes for the final word of line, one bucket per
// syllable depth from 1 up to MaxSyllables, deepest first. Every
// pronunciation variant of the word contributes candidates; matches are
// deduplicated by (word, depth) and never include the source word.
func (a *Assistant) SuggestRhymes(ctx context.Context, line string, opts SuggestOptions) ([]SyllableRhymes, error) {
	maxSyllables := opts.MaxSyllables
	if maxSyllables == 0 {
		maxSyllables = DefaultMaxSyllables
	}
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}

	word, prons := a.linePronunciations(line)
	type seenKey struct {
		word      string
		syllables int
	}
	seen := make(map[seenKey]bool)
	buckets := make(map[int][]search.Result)
	for _, pron := range prons {
		depth := min(maxSyllables, pron.SyllableCount())
		for syllables := 1; syllables <= depth; syllables++ {
			key, err := pron.RhymeKey(syllables)
			if err != nil {
				continue
			}
			matches, err := a.engine.Search(ctx, search.Options{
				Pattern:       key,
				Type:          search.TypeRhyme,
				Syllables:     syllables,
				MaxDistance:   opts.MaxDistance,
				MinSimilarity: opts.MinSimilarity,
				PartOfSpeech:  opts.PartOfSpeech,
				Limit:         maxResults,
			})
			if err != nil {
				return nil, err
			}
			for _, match := range matches {
				lower := strings.ToLower(match.Word)
				if lower == word {
					continue
				}
				sk := seenKey{word: lower, syllables: syllables}
				if seen[sk] {
					continue
				}
				seen[sk] = true
				if maxResults < 0 || len(buckets[syllables]) < maxResults {
					buckets[syllables] = append(buckets[syllables], match)
				}
			}
		}
	}

	out := make([]SyllableRhymes, 0, len(buckets))
	for syllables, matches := range buckets {
		out = append(out, SyllableRhymes{Syllables: syllables, Matches: matches})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Syllables > out[j].Syllables })
	return out, nil
}

// PerfectRhymes returns perfect rhyme suggestions for word, one group
// per pronunciation variant, ordered by pronunciation text. Variants
// without a stressed vowel produce no group.
func (a *Assistant) PerfectRhymes(ctx context.Context, word string, opts PerfectOptions) ([]PronunciationRhymes, error) {
	records := a.store.Lookup(word)
	if len(records) == 0 {
		return nil, nil
	}
	exclude := make([]int64, 0, len(records))
	for _, rec := range records {
		exclude = append(exclude, rec.WordID)
	}
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = DefaultPerfectResults
	}

	groups := make(map[string][]search.Result)
	for _, rec := range records {
		key, err := rec.Phonemes.PerfectRhymeKey()
		if err != nil {
			continue
		}
		matches, err := a.engine.PerfectRhymeMatches(ctx, key, search.PerfectRhymeOptions{
			PartOfSpeech:   opts.PartOfSpeech,
			Limit:          maxResults,
			ExcludeWordIDs: exclude,
		})
		if err != nil {
			return nil, err
		}
		groups[rec.PronunciationText()] = matches
	}

	out := make([]PronunciationRhymes, 0, len(groups))
	for text, matches := range groups {
		out = append(out, PronunciationRhymes{Pronunciation: text, Matches: matches})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pronunciation < out[j].Pronunciation })
	return out, nil
}

// linePronunciations scans the line backwards for the last word the
// dictionary knows and returns all its pronunciations.
func (a *Assistant) linePronunciations(line string) (string, []phonetic.Pronunciation) {
	words := wordRe.FindAllString(strings.ToLower(line), -1)
	for i := len(words) - 1; i >= 0; i-- {
		records := a.store.Lookup(words[i])
		if len(records) == 0 {
			continue
		}
		prons := make([]phonetic.Pronunciation, len(records))
		for j, rec := range records {
			prons[j] = rec.Phonemes
		}
		return words[i], prons
	}
	return "", nil
}
