// Package pattern compiles and matches the syllable pattern language.
//
// A pattern is a whitespace separated list of syllable tokens, where
// whitespace inside brackets does not split. Each token is either `*`
// (any one syllable), `**` (any run of syllables, including none), or
// an onset-vowel-coda shape:
//
//	<onset>-<vowel>
//	<onset>-<vowel>/<coda>
//
// Onset and coda accept literal phonemes, `?` (one phoneme), `*` (any
// run), and `[T D]` alternative sets; an empty or Ø/none/null component
// requires the cluster to be empty, while omitting `/coda` leaves the
// coda unconstrained. The vowel accepts alternatives such as `(AH|ER)`
// with an optional trailing stress block: `AY[1]`, `EH[12]`, `ER{0,2}`.
// Pattern text like `[S P]-AY[1] D-ER[0]` therefore describes the two
// syllable shape of "spider" with primary stress on the first syllable.
package pattern

import (
	"fmt"
	"path"
	"strings"

	"github.com/bastiangx/rhymeserve/pkg/phonetic"
	"github.com/bastiangx/rhymeserve/pkg/syllable"
)

// ErrorKind classifies pattern syntax failures.
type ErrorKind uint8

const (
	ErrUnmatchedBracket ErrorKind = iota
	ErrEmptySegment
	ErrMissingDash
	ErrEmptyVowel
	ErrEmptyAlternatives
	ErrBadStressSymbol
	ErrBadRegex
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnmatchedBracket:
		return "unmatched bracket"
	case ErrEmptySegment:
		return "empty pattern segment"
	case ErrMissingDash:
		return "missing '-' separator"
	case ErrEmptyVowel:
		return "missing vowel specification"
	case ErrEmptyAlternatives:
		return "empty alternative block"
	case ErrBadStressSymbol:
		return "unknown stress symbol"
	case ErrBadRegex:
		return "invalid regular expression"
	}
	return "invalid pattern"
}

// SyntaxError reports why a pattern failed to compile. Token carries
// the offending token or segment. Compilation is all or nothing: a
// SyntaxError means no part of the pattern is usable.
type SyntaxError struct {
	Kind  ErrorKind
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern: %s in %q", e.Kind, e.Token)
}

// TokenKind discriminates onset/coda token constraints.
type TokenKind uint8

const (
	// TokenLiteral matches exactly one phoneme by equality.
	TokenLiteral TokenKind = iota
	// TokenAny matches exactly one phoneme of any kind.
	TokenAny
	// TokenSet matches exactly one phoneme from its alternatives.
	TokenSet
	// TokenStar matches any run of phonemes, including none.
	TokenStar
)

// TokenPattern is one constraint inside a component pattern.
type TokenPattern struct {
	Kind    TokenKind
	Literal phonetic.Phoneme
	Alts    []phonetic.Phoneme
}

// ComponentKind discriminates onset/coda constraints as a whole.
type ComponentKind uint8

const (
	// ComponentAny accepts any cluster, including an empty one.
	ComponentAny ComponentKind = iota
	// ComponentEmpty requires the cluster to be empty.
	ComponentEmpty
	// ComponentTokens matches the cluster against a token sequence.
	ComponentTokens
)

// ComponentPattern constrains an onset or coda cluster.
type ComponentPattern struct {
	Kind   ComponentKind
	Tokens []TokenPattern
}

// Matches reports whether the cluster satisfies the component.
func (c ComponentPattern) Matches(cluster []phonetic.Phoneme) bool {
	switch c.Kind {
	case ComponentEmpty:
		return len(cluster) == 0
	case ComponentAny:
		return true
	}
	return matchTokens(c.Tokens, cluster, 0, 0)
}

// matchTokens backtracks over the token sequence. Consecutive stars
// collapse; a trailing star swallows the rest of the cluster.
func matchTokens(tokens []TokenPattern, cluster []phonetic.Phoneme, ti, ci int) bool {
	for ti < len(tokens) {
		tok := tokens[ti]
		if tok.Kind == TokenStar {
			for ti+1 < len(tokens) && tokens[ti+1].Kind == TokenStar {
				ti++
			}
			if ti+1 == len(tokens) {
				return true
			}
			for skip := ci; skip <= len(cluster); skip++ {
				if matchTokens(tokens, cluster, ti+1, skip) {
					return true
				}
			}
			return false
		}
		if ci >= len(cluster) {
			return false
		}
		ph := cluster[ci]
		switch tok.Kind {
		case TokenLiteral:
			if ph != tok.Literal {
				return false
			}
		case TokenAny:
			// consumes one phoneme unconditionally
		case TokenSet:
			found := false
			for _, alt := range tok.Alts {
				if ph == alt {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		ti++
		ci++
	}
	return ci == len(cluster)
}

// VowelPattern is an ordered set of accepted vowel spellings. Each
// spelling is a glob matched case sensitively against the nucleus text
// including its stress digit, e.g. "AY?" or "ER*".
type VowelPattern []string

// Matches reports whether any spelling accepts the nucleus.
func (v VowelPattern) Matches(nucleus phonetic.Phoneme) bool {
	text := string(nucleus)
	for _, alt := range v {
		if ok, err := path.Match(alt, text); err == nil && ok {
			return true
		}
	}
	return false
}

// SyllablePattern constrains a single syllable. Stress holds the
// accepted stress digits; empty means unconstrained.
type SyllablePattern struct {
	Onset  ComponentPattern
	Vowel  VowelPattern
	Coda   ComponentPattern
	Stress string
}

// Matches reports whether the syllable satisfies every constraint.
func (p SyllablePattern) Matches(s syllable.Syllable, ignoreStress bool) bool {
	if !p.Onset.Matches(s.Onset) {
		return false
	}
	if !p.Vowel.Matches(s.Nucleus) {
		return false
	}
	if !p.Coda.Matches(s.Coda) {
		return false
	}
	if ignoreStress || p.Stress == "" {
		return true
	}
	return strings.IndexByte(p.Stress, s.Stress()) >= 0
}

// ElementKind discriminates pattern elements.
type ElementKind uint8

const (
	// ElementSyllable matches one syllable against a SyllablePattern.
	ElementSyllable ElementKind = iota
	// ElementWildcardSyllable matches exactly one syllable of any shape.
	ElementWildcardSyllable
	// ElementWildcardSequence matches zero or more syllables.
	ElementWildcardSequence
)

// Element is one step of a compiled pattern.
type Element struct {
	Kind     ElementKind
	Syllable SyllablePattern
}

// Pattern is a compiled syllable pattern, immutable once built.
type Pattern struct {
	Elements []Element
	Source   string
}
