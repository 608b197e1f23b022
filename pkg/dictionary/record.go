package dictionary

import (
	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

// Record is one pronunciation of a word together with the features the
// search engine compares against. A word with several pronunciations
// has several records sharing a WordID.
type Record struct {
	ID                 int64                  `msgpack:"id"`
	WordID             int64                  `msgpack:"wid"`
	Word               string                 `msgpack:"w"`
	Phonemes           phonetic.Pronunciation `msgpack:"ph"`
	SyllableCount      int                    `msgpack:"sc"`
	StressPattern      string                 `msgpack:"st"`
	TerminalVowels     string                 `msgpack:"tv,omitempty"`
	TerminalConsonants string                 `msgpack:"tc,omitempty"`
	// RhymeKeys[n-1] is the rhyme key over the last n syllables,
	// precomputed for n up to 4.
	RhymeKeys []string `msgpack:"rk,omitempty"`
}

// Definition is one dictionary sense of a word.
type Definition struct {
	PartOfSpeech string   `msgpack:"pos,omitempty"`
	Text         string   `msgpack:"d"`
	Example      string   `msgpack:"ex,omitempty"`
	Source       string   `msgpack:"src,omitempty"`
	Synonyms     []string `msgpack:"syn,omitempty"`
}

// NewRecord derives every feature field from the phoneme sequence.
func NewRecord(id, wordID int64, word string, phonemes []phonetic.Phoneme) Record {
	pron := phonetic.Pronunciation(phonemes)
	rec := Record{
		ID:                 id,
		WordID:             wordID,
		Word:               word,
		Phonemes:           pron,
		SyllableCount:      pron.SyllableCount(),
		StressPattern:      pron.StressPattern(),
		TerminalConsonants: pron.TerminalConsonants(),
	}
	if tv, err := pron.TerminalVowels(1); err == nil {
		rec.TerminalVowels = tv
	}
	for n := 1; n <= 4; n++ {
		key, err := pron.RhymeKey(n)
		if err != nil {
			break
		}
		rec.RhymeKeys = append(rec.RhymeKeys, key)
	}
	return rec
}

// RhymeKey returns the rhyme key over the last n syllables, computing
// it when n exceeds the precomputed range. ok is false when the
// pronunciation has fewer than n vowels.
func (r Record) RhymeKey(n int) (string, bool) {
	if n >= 1 && n <= len(r.RhymeKeys) {
		return r.RhymeKeys[n-1], true
	}
	key, err := r.Phonemes.RhymeKey(n)
	if err != nil {
		return "", false
	}
	return key, true
}

// PronunciationText returns the space joined phoneme form.
func (r Record) PronunciationText() string {
	return r.Phonemes.Text()
}
