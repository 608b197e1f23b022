package syllable

import (
	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

// DefaultCacheSize bounds the syllabification cache when no size is
// configured.
const DefaultCacheSize = 8192

// Syllabifier memoizes Split results keyed by pronunciation text.
// Safe for concurrent use: entries are write-once and immutable, and
// two callers racing on the same key just duplicate the work.
type Syllabifier struct {
	cache *lru.Cache[string, []Syllable]
}

// New returns a Syllabifier with an LRU cache of the given capacity.
// Sizes below 1 fall back to DefaultCacheSize.
func New(size int) *Syllabifier {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []Syllable](size)
	if err != nil {
		log.Warn("syllable cache disabled", "err", err)
		cache = nil
	}
	return &Syllabifier{cache: cache}
}

// Syllabify returns the segmentation of pron. The returned slice is
// shared with the cache and must not be mutated.
func (s *Syllabifier) Syllabify(pron phonetic.Pronunciation) []Syllable {
	key := pron.Text()
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached
		}
	}
	syllables := Split(pron)
	if s.cache != nil {
		s.cache.Add(key, syllables)
	}
	return syllables
}

// SyllabifyText is a convenience wrapper over raw pronunciation text.
func (s *Syllabifier) SyllabifyText(text string) []Syllable {
	return s.Syllabify(phonetic.FromText(text))
}

// Len reports the number of cached segmentations.
func (s *Syllabifier) Len() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}
