package cli

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/rhymeserve/pkg/dictionary"
	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

// maxSuggestDistance bounds how far a misspelling may drift before we
// stop offering it as a correction.
const maxSuggestDistance = 2

// NearestWords suggests dictionary entries spelled close to a word the
// store does not know. Candidates share the first letter and rank by
// edit distance, then alphabetically.
func NearestWords(store *dictionary.Store, word string, n int) []string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || n < 1 {
		return nil
	}
	first, _ := utf8.DecodeRuneInString(word)
	candidates := store.WordsWithPrefix(string(first), 0)

	type scored struct {
		word string
		dist int
	}
	var close []scored
	target := letters(word)
	for _, candidate := range candidates {
		if candidate == word {
			continue
		}
		if abs(len(candidate)-len(word)) > maxSuggestDistance {
			continue
		}
		d := phonetic.EditDistance(target, letters(candidate))
		if d <= maxSuggestDistance {
			close = append(close, scored{candidate, d})
		}
	}
	sort.Slice(close, func(i, j int) bool {
		if close[i].dist != close[j].dist {
			return close[i].dist < close[j].dist
		}
		return close[i].word < close[j].word
	})
	if len(close) > n {
		close = close[:n]
	}
	out := make([]string, len(close))
	for i, c := range close {
		out[i] = c.word
	}
	return out
}

// letters tokenizes a word one rune per token so the phoneme edit
// distance doubles as a plain spelling distance.
func letters(s string) []phonetic.Phoneme {
	out := make([]phonetic.Phoneme, 0, len(s))
	for _, r := range s {
		out = append(out, phonetic.Phoneme(string(r)))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
