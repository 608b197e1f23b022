package phonetic

import "errors"

// ErrNoSuchKey reports that a pronunciation has too few vowels, or no
// stressed vowel, for the requested derivation. Callers treat it as
// "no key available" and filter rather than fail.
var ErrNoSuchKey = errors.New("phonetic: no such key")

// Pronunciation is an ordered phoneme sequence. Treated as immutable
// once built; derivations return fresh values.
type Pronunciation []Phoneme

// FromText parses a space separated pronunciation string.
func FromText(text string) Pronunciation {
	return Pronunciation(Tokens(text))
}

// Text renders the pronunciation as a space separated string.
func (p Pronunciation) Text() string {
	return Join(p)
}

// SyllableCount returns the number of vowel phonemes.
func (p Pronunciation) SyllableCount() int {
	n := 0
	for _, ph := range p {
		if IsVowel(ph) {
			n++
		}
	}
	return n
}

// StressPattern returns the stress digits of the vowels in order, with
// '0' standing in for vowels that carry no digit.
func (p Pronunciation) StressPattern() string {
	var b []byte
	for _, ph := range p {
		if IsVowel(ph) {
			b = append(b, Stress(ph))
		}
	}
	return string(b)
}

func (p Pronunciation) vowelIndices() []int {
	var indices []int
	for i, ph := range p {
		if IsVowel(ph) {
			indices = append(indices, i)
		}
	}
	return indices
}

// RhymeKey returns the phoneme suffix starting at the nth-from-last
// vowel, space joined. ErrNoSuchKey when fewer than n vowels exist.
func (p Pronunciation) RhymeKey(syllables int) (string, error) {
	if syllables < 1 {
		return "", ErrNoSuchKey
	}
	indices := p.vowelIndices()
	if len(indices) < syllables {
		return "", ErrNoSuchKey
	}
	start := indices[len(indices)-syllables]
	return Join(p[start:]), nil
}

// PerfectRhymeKey returns the suffix starting at the last vowel whose
// stress is primary or secondary. ErrNoSuchKey when no vowel is
// stressed.
func (p Pronunciation) PerfectRhymeKey() (string, error) {
	last := -1
	for i, ph := range p {
		if !IsVowel(ph) {
			continue
		}
		if s := Stress(ph); s == '1' || s == '2' {
			last = i
		}
	}
	if last < 0 {
		return "", ErrNoSuchKey
	}
	return Join(p[last:]), nil
}

// TerminalVowels returns the vowel phonemes, stress digits kept, at and
// after the nth-from-last vowel. ErrNoSuchKey when fewer than n vowels
// exist or the result would be empty.
func (p Pronunciation) TerminalVowels(syllables int) (string, error) {
	if syllables < 1 {
		return "", ErrNoSuchKey
	}
	indices := p.vowelIndices()
	if len(indices) < syllables {
		return "", ErrNoSuchKey
	}
	start := indices[len(indices)-syllables]
	var vowels []Phoneme
	for _, ph := range p[start:] {
		if IsVowel(ph) {
			vowels = append(vowels, ph)
		}
	}
	if len(vowels) == 0 {
		return "", ErrNoSuchKey
	}
	return Join(vowels), nil
}

// TerminalConsonants returns the phonemes after the last vowel, empty
// when the pronunciation has no vowels.
func (p Pronunciation) TerminalConsonants() string {
	indices := p.vowelIndices()
	if len(indices) == 0 {
		return ""
	}
	last := indices[len(indices)-1]
	return Join(p[last+1:])
}

// StripStress returns a copy with all stress digits removed.
func (p Pronunciation) StripStress() Pronunciation {
	stripped := make(Pronunciation, len(p))
	for i, ph := range p {
		stripped[i] = StripStress(ph)
	}
	return stripped
}
