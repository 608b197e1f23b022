// Package syllable segments ARPABET pronunciations into onset, nucleus
// and coda units. Segmentation follows the maximal legal onset rule:
// consonants between two vowels attach to the following syllable when
// the resulting cluster is a legal word-initial onset, otherwise they
// stay in the coda.
package syllable

import "github.com/bastiangx/rhymeserve/pkg/phonetic"

// Syllable is one onset/nucleus/coda unit. The nucleus is always a
// single vowel phoneme and keeps its stress digit. Onset and coda may
// be empty.
type Syllable struct {
	Onset   []phonetic.Phoneme
	Nucleus phonetic.Phoneme
	Coda    []phonetic.Phoneme
}

// Stress returns the nucleus stress digit, '0' when absent.
func (s Syllable) Stress() byte {
	return phonetic.Stress(s.Nucleus)
}

// Phonemes returns the syllable's phonemes in order.
func (s Syllable) Phonemes() []phonetic.Phoneme {
	out := make([]phonetic.Phoneme, 0, len(s.Onset)+1+len(s.Coda))
	out = append(out, s.Onset...)
	out = append(out, s.Nucleus)
	out = append(out, s.Coda...)
	return out
}

// clusterOnsets enumerates the multi-consonant clusters that may begin
// a syllable, keyed by their space joined form. Single consonants are
// always legal and are not listed.
var clusterOnsets = map[string]struct{}{
	"B L": {}, "B R": {}, "B W": {},
	"CH R": {},
	"D R": {}, "D W": {},
	"F L": {}, "F R": {},
	"G L": {}, "G R": {}, "G W": {},
	"HH Y": {},
	"K L": {}, "K R": {}, "K W": {},
	"P L": {}, "P R": {}, "P W": {},
	"S K": {}, "S L": {}, "S M": {}, "S N": {}, "S P": {}, "S T": {}, "S W": {},
	"SH R": {},
	"T R": {}, "T W": {},
	"TH R": {}, "TH W": {},
	"V L": {}, "V R": {},
	"Z L": {}, "Z R": {},
	"ZH R": {},
	"S P L": {}, "S P R": {},
	"S T L": {}, "S T R": {},
	"S K L": {}, "S K R": {}, "S K W": {},
}

func legalOnset(cluster []phonetic.Phoneme) bool {
	if len(cluster) == 1 {
		return true
	}
	_, ok := clusterOnsets[phonetic.Join(cluster)]
	return ok
}

// Split segments phonemes into syllables. The segmentation is lossless:
// concatenating onset+nucleus+coda across the result reproduces the
// input. Sequences without any vowel yield no syllables. Split never
// caches; use a Syllabifier for repeated inputs.
func Split(phonemes []phonetic.Phoneme) []Syllable {
	var syllables []Syllable
	var pendingOnset []phonetic.Phoneme
	i := 0
	for i < len(phonemes) {
		p := phonemes[i]
		if !phonetic.IsVowel(p) {
			pendingOnset = append(pendingOnset, p)
			i++
			continue
		}
		j := i + 1
		var cluster []phonetic.Phoneme
		for j < len(phonemes) && !phonetic.IsVowel(phonemes[j]) {
			cluster = append(cluster, phonemes[j])
			j++
		}
		coda, nextOnset := splitCluster(cluster, j < len(phonemes))
		syllables = append(syllables, Syllable{
			Onset:   pendingOnset,
			Nucleus: p,
			Coda:    coda,
		})
		pendingOnset = nextOnset
		i = j
	}
	// Trailing consonants that never reached a vowel merge into the
	// last coda. Unreachable for well formed input, kept as a guard.
	if len(pendingOnset) > 0 && len(syllables) > 0 {
		last := &syllables[len(syllables)-1]
		last.Coda = append(last.Coda, pendingOnset...)
	}
	return syllables
}

// splitCluster divides the consonant run after a nucleus between that
// syllable's coda and the next syllable's onset. The longest trailing
// suffix that forms a legal onset wins; without one, the final
// consonant alone moves forward.
func splitCluster(cluster []phonetic.Phoneme, vowelFollows bool) (coda, nextOnset []phonetic.Phoneme) {
	if len(cluster) == 0 {
		return nil, nil
	}
	if !vowelFollows {
		return cluster, nil
	}
	for start := 0; start < len(cluster); start++ {
		if legalOnset(cluster[start:]) {
			return cluster[:start], cluster[start:]
		}
	}
	return cluster[:len(cluster)-1], cluster[len(cluster)-1:]
}
