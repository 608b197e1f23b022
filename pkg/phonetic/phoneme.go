// Package phonetic models ARPABET phonemes and pronunciations: vowel
// classification, stress digits, rhyme keys and token level edit
// distance. Everything here is pure and allocation-light so callers can
// derive features for whole dictionaries at load time.
package phonetic

import "strings"

// Phoneme is a single ARPABET symbol, e.g. "K" or "AE1".
// Vowels carry a trailing stress digit: 0 none, 1 primary, 2 secondary.
type Phoneme string

// arpabetVowels is the closed vowel set. Any symbol outside it is a
// consonant.
var arpabetVowels = map[Phoneme]struct{}{
	"AA": {}, "AE": {}, "AH": {}, "AO": {}, "AW": {},
	"AY": {}, "EH": {}, "ER": {}, "EY": {}, "IH": {},
	"IY": {}, "OW": {}, "OY": {}, "UH": {}, "UW": {},
}

// IsVowel reports whether p is a vowel once its stress digit is stripped.
func IsVowel(p Phoneme) bool {
	_, ok := arpabetVowels[StripStress(p)]
	return ok
}

// StripStress removes trailing stress digits from a phoneme.
func StripStress(p Phoneme) Phoneme {
	end := len(p)
	for end > 0 && p[end-1] >= '0' && p[end-1] <= '9' {
		end--
	}
	return p[:end]
}

// Stress returns the stress digit of a phoneme, '0' when it carries none.
func Stress(p Phoneme) byte {
	if n := len(p); n > 0 && p[n-1] >= '0' && p[n-1] <= '9' {
		return p[n-1]
	}
	return '0'
}

// Tokens splits a pronunciation string into phonemes on whitespace.
// Empty fields are dropped.
func Tokens(text string) []Phoneme {
	fields := strings.Fields(text)
	phonemes := make([]Phoneme, len(fields))
	for i, f := range fields {
		phonemes[i] = Phoneme(f)
	}
	return phonemes
}

// Join renders phonemes as a space separated string.
func Join(phonemes []Phoneme) string {
	var b strings.Builder
	for i, p := range phonemes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(p))
	}
	return b.String()
}
