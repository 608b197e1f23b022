package dictionary

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// IngestResult summarizes a completed ingest run.
type IngestResult struct {
	Words       int
	Records     int
	Definitions int
	Chunks      int
	Stats       Stats
}

// Ingest parses a CMU dictionary file and an optional definitions
// file, then writes the chunked data directory the loader reads.
func Ingest(dictPath, defsPath, dataDir string, chunkSize int) (IngestResult, error) {
	var result IngestResult
	start := time.Now()

	if err := ensureTextSource(dictPath); err != nil {
		return result, err
	}
	f, err := os.Open(dictPath)
	if err != nil {
		return result, fmt.Errorf("open dictionary: %w", err)
	}
	records, stats, err := ParseCMU(f)
	f.Close()
	if err != nil {
		return result, fmt.Errorf("parse %s: %w", dictPath, err)
	}
	result.Stats = stats
	if len(records) == 0 {
		return result, fmt.Errorf("no pronunciations parsed from %s", dictPath)
	}

	w, err := NewWriter(dataDir, chunkSize)
	if err != nil {
		return result, err
	}
	wordIDs := make(map[string]int64, len(records))
	for _, rec := range records {
		wordIDs[rec.Word] = rec.WordID
		if err := w.Add(rec); err != nil {
			return result, err
		}
	}
	if err := w.Close(); err != nil {
		return result, err
	}
	result.Words = len(wordIDs)
	result.Records = w.RecordCount()
	result.Chunks = w.ChunkCount()

	if defsPath != "" {
		if err := ensureTextSource(defsPath); err != nil {
			return result, err
		}
		df, err := os.Open(defsPath)
		if err != nil {
			return result, fmt.Errorf("open definitions: %w", err)
		}
		byWord, err := ParseDefinitions(df)
		df.Close()
		if err != nil {
			return result, fmt.Errorf("parse %s: %w", defsPath, err)
		}
		// definitions for words without pronunciations are dropped
		byID := make(map[int64][]Definition)
		for word, defs := range byWord {
			if id, ok := wordIDs[word]; ok {
				byID[id] = defs
				result.Definitions += len(defs)
			}
		}
		if err := w.WriteDefinitions(byID); err != nil {
			return result, err
		}
	}

	log.Infof("Ingested %d words (%d pronunciations, %d definitions) into %d chunks in %v",
		result.Words, result.Records, result.Definitions, result.Chunks,
		time.Since(start).Round(time.Millisecond))
	return result, nil
}
