package search

import (
	"context"
	"iter"

	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/pattern"
)

// PatternType selects which feature of a record the query pattern is
// compared against.
type PatternType string

const (
	// TypeRhyme compares against the rhyme key over Options.Syllables
	// trailing syllables.
	TypeRhyme PatternType = "rhyme"
	// TypeVowel compares against the vowels of the final syllable.
	TypeVowel PatternType = "vowel"
	// TypeConsonant compares against the consonants after the last vowel.
	TypeConsonant PatternType = "consonant"
	// TypeBoth compares against the full final syllable suffix.
	TypeBoth PatternType = "both"
	// TypePhonemes compares against the whole pronunciation.
	TypePhonemes PatternType = "phonemes"
	// TypeSyllable matches a compiled syllable pattern instead of text.
	TypeSyllable PatternType = "syllable"
)

const (
	// DefaultLimit applies when Options.Limit is zero.
	DefaultLimit = 50
	// DefaultPatternCacheSize bounds the compiled pattern cache.
	DefaultPatternCacheSize = 1024
)

// Options configure one search. The zero value is a rhyme query over
// one syllable returning up to DefaultLimit results.
type Options struct {
	Pattern   string
	Type      PatternType
	Syllables int
	Regex     bool
	Contains  bool

	// Near-match scoring. When either is set, records failing the
	// textual pattern stay in as long as they score well enough.
	MaxDistance   *int
	MinSimilarity *float64

	// StressPattern globs against the record's stress digits.
	StressPattern string
	// IgnoreStress drops stress constraints in syllable mode.
	IgnoreStress bool

	// Lexical pre-filters, delegated to the record source.
	PartOfSpeech    string
	DefinitionQuery string
	SynonymQuery    string

	// Limit caps the ranked results: zero means DefaultLimit, negative
	// means no limit.
	Limit int
}

// PerfectRhymeOptions configure a perfect rhyme scan.
type PerfectRhymeOptions struct {
	PartOfSpeech   string
	Limit          int
	ExcludeWordIDs []int64
}

// Result is one ranked hit.
type Result struct {
	WordID             int64
	Word               string
	Pronunciation      string
	SyllableCount      int
	StressPattern      string
	Similarity         *float64
	TerminalVowels     string
	TerminalConsonants string
	RhymeKey           string
	MatchedSpan        *pattern.Span
	Definitions        []dictionary.Definition
}

// RecordSource streams candidate records. The scan must be
// word-ascending for the ranking tie-break to hold.
type RecordSource interface {
	Records(ctx context.Context, filter dictionary.Filter) iter.Seq[dictionary.Record]
}

// DefinitionSource resolves definitions for word ids in one batch.
type DefinitionSource interface {
	DefinitionsFor(wordIDs []int64) map[int64][]dictionary.Definition
}

// Source supplies both; *dictionary.Store satisfies it.
type Source interface {
	RecordSource
	DefinitionSource
}
