// Package search ranks pronunciation records against phonetic queries:
// rhyme keys, terminal features, whole pronunciations and syllable
// shape patterns, with optional fuzzy scoring.
package search

import (
	"context"
	"fmt"
	"math"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/pattern"
	"github.com/bastiangx/rhymeserve/pkg/phonetic"
	"github.com/bastiangx/rhymeserve/pkg/syllable"
)

// Config tunes engine caches and result limits. Zero values pick the
// package defaults.
type Config struct {
	SyllableCacheSize int
	PatternCacheSize  int
	DefaultLimit      int
	MaxLimit          int
}

// Engine evaluates searches over a record source.
type Engine struct {
	source       Source
	syllabifier  *syllable.Syllabifier
	patterns     *lru.Cache[string, *pattern.Pattern]
	defaultLimit int
	maxLimit     int
}

func NewEngine(source Source, cfg Config) *Engine {
	size := cfg.PatternCacheSize
	if size < 1 {
		size = DefaultPatternCacheSize
	}
	cache, err := lru.New[string, *pattern.Pattern](size)
	if err != nil {
		log.Warnf("Pattern cache disabled: %v", err)
		cache = nil
	}
	limit := cfg.DefaultLimit
	if limit == 0 {
		limit = DefaultLimit
	}
	return &Engine{
		source:       source,
		syllabifier:  syllable.New(cfg.SyllableCacheSize),
		patterns:     cache,
		defaultLimit: limit,
		maxLimit:     cfg.MaxLimit,
	}
}

// Search scans the source and returns ranked results. Pattern syntax
// errors surface as *pattern.SyntaxError before any record is read.
func (e *Engine) Search(ctx context.Context, opts Options) ([]Result, error) {
	ptype := opts.Type
	if ptype == "" {
		ptype = TypeRhyme
	}
	depth := opts.Syllables
	if depth < 1 {
		depth = 1
	}

	var (
		compiled *pattern.Pattern
		re       *regexp.Regexp
		glob     string
		err      error
	)
	switch {
	case ptype == TypeSyllable:
		if compiled, err = e.compilePattern(opts.Pattern); err != nil {
			return nil, err
		}
	case opts.Pattern != "" && opts.Regex:
		expr := opts.Pattern
		if !opts.Contains {
			expr = `\A(?:` + expr + `)\z`
		}
		if re, err = regexp.Compile(expr); err != nil {
			return nil, &pattern.SyntaxError{Kind: pattern.ErrBadRegex, Token: opts.Pattern}
		}
	case opts.Pattern != "":
		glob = opts.Pattern
		if opts.Contains && !strings.ContainsAny(glob, "*?[]") {
			glob = "*" + glob + "*"
		}
		if _, err := path.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("search: bad pattern %q: %w", opts.Pattern, err)
		}
	}
	if opts.StressPattern != "" {
		if _, err := path.Match(opts.StressPattern, ""); err != nil {
			return nil, fmt.Errorf("search: bad stress pattern %q: %w", opts.StressPattern, err)
		}
	}

	filter := dictionary.Filter{
		PartOfSpeech:    opts.PartOfSpeech,
		DefinitionQuery: opts.DefinitionQuery,
		SynonymQuery:    opts.SynonymQuery,
	}
	matchOpts := pattern.MatchOptions{Contains: opts.Contains, IgnoreStress: opts.IgnoreStress}
	nearEnabled := opts.MaxDistance != nil || opts.MinSimilarity != nil

	var results []Result
	for rec := range e.source.Records(ctx, filter) {
		var (
			score    *float64
			span     *pattern.Span
			sequence string
			matched  = true
		)
		if ptype == TypeSyllable {
			spans := compiled.Find(e.syllabifier.Syllabify(rec.Phonemes), matchOpts)
			if len(spans) == 0 {
				continue
			}
			span = &spans[0]
			if len(compiled.Elements) > 0 {
				one := 1.0
				score = &one
			}
		} else {
			var ok bool
			if sequence, ok = sequenceFor(rec, ptype, depth); !ok {
				continue
			}
			if opts.Pattern != "" {
				matched = matchText(sequence, glob, re)
				if !matched && !nearEnabled {
					continue
				}
			}
		}

		if opts.StressPattern != "" {
			if ok, _ := path.Match(opts.StressPattern, rec.StressPattern); !ok {
				continue
			}
		}

		if ptype != TypeSyllable && opts.Pattern != "" {
			switch {
			case opts.MaxDistance != nil:
				seqTokens := phonetic.Tokens(sequence)
				patTokens := phonetic.Tokens(opts.Pattern)
				dist := phonetic.EditDistance(seqTokens, patTokens)
				if dist > *opts.MaxDistance {
					continue
				}
				norm := max(len(seqTokens), len(patTokens), 1)
				s := 1.0 - float64(dist)/float64(norm)
				score = &s
			case opts.MinSimilarity != nil:
				s := phonetic.Similarity(phonetic.Tokens(sequence), phonetic.Tokens(opts.Pattern))
				if s < *opts.MinSimilarity {
					continue
				}
				score = &s
			default:
				one := 1.0
				score = &one
			}
		}

		results = append(results, newResult(rec, score, span))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortResults(results)
	results = e.truncate(results, opts.Limit)
	e.attachDefinitions(results)
	log.Debugf("Search type=%s pattern=%q returned %d results", ptype, opts.Pattern, len(results))
	return results, nil
}

// PerfectRhymeMatches returns the records whose perfect rhyme key
// equals key, excluding the given word ids.
func (e *Engine) PerfectRhymeMatches(ctx context.Context, key string, opts PerfectRhymeOptions) ([]Result, error) {
	excluded := make(map[int64]struct{}, len(opts.ExcludeWordIDs))
	for _, id := range opts.ExcludeWordIDs {
		excluded[id] = struct{}{}
	}
	filter := dictionary.Filter{PartOfSpeech: opts.PartOfSpeech}

	var results []Result
	for rec := range e.source.Records(ctx, filter) {
		if _, skip := excluded[rec.WordID]; skip {
			continue
		}
		recKey, err := rec.Phonemes.PerfectRhymeKey()
		if err != nil || recKey != key {
			continue
		}
		one := 1.0
		results = append(results, newResult(rec, &one, nil))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortResults(results)
	results = e.truncate(results, opts.Limit)
	e.attachDefinitions(results)
	return results, nil
}

func (e *Engine) compilePattern(text string) (*pattern.Pattern, error) {
	if e.patterns != nil {
		if p, ok := e.patterns.Get(text); ok {
			return p, nil
		}
	}
	p, err := pattern.Compile(text)
	if err != nil {
		return nil, err
	}
	if e.patterns != nil {
		e.patterns.Add(text, p)
	}
	return p, nil
}

// sequenceFor picks the record feature a textual pattern compares
// against. ok is false when the record lacks the feature, which drops
// the record from the scan.
func sequenceFor(rec dictionary.Record, ptype PatternType, depth int) (string, bool) {
	switch ptype {
	case TypeVowel:
		return rec.TerminalVowels, rec.TerminalVowels != ""
	case TypeConsonant:
		return rec.TerminalConsonants, true
	case TypeBoth:
		return rec.RhymeKey(1)
	case TypeRhyme:
		return rec.RhymeKey(depth)
	case TypePhonemes:
		return rec.PronunciationText(), true
	}
	return "", false
}

func matchText(sequence, glob string, re *regexp.Regexp) bool {
	text := strings.Join(strings.Fields(sequence), " ")
	if re != nil {
		return re.MatchString(text)
	}
	ok, err := path.Match(glob, text)
	return err == nil && ok
}

func newResult(rec dictionary.Record, score *float64, span *pattern.Span) Result {
	rhymeKey := ""
	if len(rec.RhymeKeys) > 0 {
		rhymeKey = rec.RhymeKeys[0]
	}
	return Result{
		WordID:             rec.WordID,
		Word:               rec.Word,
		Pronunciation:      rec.PronunciationText(),
		SyllableCount:      rec.SyllableCount,
		StressPattern:      rec.StressPattern,
		Similarity:         score,
		TerminalVowels:     rec.TerminalVowels,
		TerminalConsonants: rec.TerminalConsonants,
		RhymeKey:           rhymeKey,
		MatchedSpan:        span,
	}
}

// Ranking: most syllables first, best score next with unscored rows
// last, then word ascending. The scan order breaks remaining ties.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.SyllableCount != b.SyllableCount {
			return a.SyllableCount > b.SyllableCount
		}
		as, bs := scoreOrNegInf(a), scoreOrNegInf(b)
		if as != bs {
			return as > bs
		}
		return a.Word < b.Word
	})
}

func scoreOrNegInf(r Result) float64 {
	if r.Similarity == nil {
		return math.Inf(-1)
	}
	return *r.Similarity
}

func (e *Engine) truncate(results []Result, limit int) []Result {
	switch {
	case limit == 0:
		limit = e.defaultLimit
	case limit < 0:
		limit = 0
	}
	// MaxLimit caps even explicitly unlimited requests.
	if e.maxLimit > 0 && (limit == 0 || limit > e.maxLimit) {
		limit = e.maxLimit
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// attachDefinitions resolves definitions for the surviving results in
// one batched source call.
func (e *Engine) attachDefinitions(results []Result) {
	if len(results) == 0 {
		return
	}
	seen := make(map[int64]struct{}, len(results))
	ids := make([]int64, 0, len(results))
	for i := range results {
		if _, ok := seen[results[i].WordID]; !ok {
			seen[results[i].WordID] = struct{}{}
			ids = append(ids, results[i].WordID)
		}
	}
	defs := e.source.DefinitionsFor(ids)
	for i := range results {
		results[i].Definitions = defs[results[i].WordID]
	}
}
