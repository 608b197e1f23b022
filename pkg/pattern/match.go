package pattern

import (
	"sort"

	"github.com/bastiangx/rhymeserve/pkg/syllable"
)

// Span is a half-open [Start, End) syllable index range.
type Span struct {
	Start int
	End   int
}

// MatchOptions control span discovery. Contains tries every start
// position and keeps partial matches; otherwise only whole-sequence
// matches from index zero count. IgnoreStress drops stress constraints.
type MatchOptions struct {
	Contains     bool
	IgnoreStress bool
}

// Find returns the distinct spans the pattern matches, in discovery
// order. An empty pattern trivially covers the whole sequence.
func (p *Pattern) Find(syllables []syllable.Syllable, opts MatchOptions) []Span {
	if len(p.Elements) == 0 {
		if len(syllables) == 0 {
			return []Span{{0, 0}}
		}
		return []Span{{0, len(syllables)}}
	}
	m := &matcher{
		elements:     p.Elements,
		syllables:    syllables,
		ignoreStress: opts.IgnoreStress,
		memo:         make(map[matchKey][]int),
	}
	var spans []Span
	if !opts.Contains {
		for _, end := range m.reachable(0, 0) {
			if end == len(syllables) {
				spans = append(spans, Span{0, end})
			}
		}
		return spans
	}
	for start := 0; start <= len(syllables); start++ {
		for _, end := range m.reachable(start, 0) {
			spans = append(spans, Span{start, end})
		}
	}
	return spans
}

// Matches reports whether the pattern matches at all.
func (p *Pattern) Matches(syllables []syllable.Syllable, opts MatchOptions) bool {
	return len(p.Find(syllables, opts)) > 0
}

type matchKey struct {
	start int
	elem  int
}

// matcher explores the pattern recursively. Memoization on
// (start, element) keeps runs of wildcard-sequence elements polynomial
// instead of exponential; every recursion step increases start or elem,
// so it terminates.
type matcher struct {
	elements     []Element
	syllables    []syllable.Syllable
	ignoreStress bool
	memo         map[matchKey][]int
}

// reachable returns the sorted set of syllable indices reachable after
// consuming elements[elem:] starting at syllable index start.
func (m *matcher) reachable(start, elem int) []int {
	key := matchKey{start, elem}
	if ends, ok := m.memo[key]; ok {
		return ends
	}
	var ends []int
	if elem == len(m.elements) {
		ends = []int{start}
	} else {
		switch el := m.elements[elem]; el.Kind {
		case ElementWildcardSequence:
			set := make(map[int]struct{})
			for _, e := range m.reachable(start, elem+1) {
				set[e] = struct{}{}
			}
			for next := start + 1; next <= len(m.syllables); next++ {
				for _, e := range m.reachable(next, elem+1) {
					set[e] = struct{}{}
				}
			}
			ends = make([]int, 0, len(set))
			for e := range set {
				ends = append(ends, e)
			}
			sort.Ints(ends)
		case ElementWildcardSyllable:
			if start < len(m.syllables) {
				ends = m.reachable(start+1, elem+1)
			}
		case ElementSyllable:
			if start < len(m.syllables) && el.Syllable.Matches(m.syllables[start], m.ignoreStress) {
				ends = m.reachable(start+1, elem+1)
			}
		}
	}
	m.memo[key] = ends
	return ends
}
