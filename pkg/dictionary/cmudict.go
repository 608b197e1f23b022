package dictionary

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/rhymeserve/pkg/phonetic"
)

// Stats summarizes one parse pass.
type Stats struct {
	Lines   int
	Parsed  int
	Skipped int
}

// cmuLine matches `WORD  PH ON EMES` with an optional variant marker,
// e.g. `ABOUT(2)  AH0 B AW1 T`.
var cmuLine = regexp.MustCompile(`^([A-Z'\-.]+)(?:\((\d+)\))?\s+(.+)$`)

// ParseCMU reads a CMU pronouncing dictionary. Comment lines start
// with ";;;". Words are stored lowercase; pronunciation variants of a
// word share its word id. Malformed lines are skipped and counted, not
// fatal.
func ParseCMU(r io.Reader) ([]Record, Stats, error) {
	var (
		stats   Stats
		records []Record
		wordIDs = make(map[string]int64)
		nextID  int64 = 1
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			stats.Skipped++
			continue
		}
		m := cmuLine.FindStringSubmatch(line)
		if m == nil {
			stats.Skipped++
			continue
		}
		word := strings.ToLower(m[1])
		phonemes := phonetic.Tokens(m[3])
		if len(phonemes) == 0 {
			stats.Skipped++
			continue
		}
		wordID, ok := wordIDs[word]
		if !ok {
			wordID = int64(len(wordIDs) + 1)
			wordIDs[word] = wordID
		}
		records = append(records, NewRecord(nextID, wordID, word, phonemes))
		nextID++
		stats.Parsed++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}
	log.Debugf("Parsed %d pronunciations for %d words (%d lines skipped)",
		stats.Parsed, len(wordIDs), stats.Skipped)
	return records, stats, nil
}
