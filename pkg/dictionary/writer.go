package dictionary

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/rhymeserve/internal/utils"
)

const (
	// DefaultChunkSize is the record count per chunk file.
	DefaultChunkSize = 10000

	chunkFilePattern = "pron_*.bin"
	defsFileName     = "defs.bin"
)

// Writer streams records into numbered chunk files pron_0001.bin,
// pron_0002.bin and so on under a data directory.
type Writer struct {
	dir       string
	chunkSize int
	pending   []Record
	chunks    int
	total     int
}

func NewWriter(dir string, chunkSize int) (*Writer, error) {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Writer{dir: dir, chunkSize: chunkSize}, nil
}

// Add buffers a record, flushing a chunk file when the buffer fills.
func (w *Writer) Add(rec Record) error {
	w.pending = append(w.pending, rec)
	if len(w.pending) >= w.chunkSize {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	w.chunks++
	name := filepath.Join(w.dir, fmt.Sprintf("pron_%04d.bin", w.chunks))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create chunk file: %w", err)
	}
	if err := encodeCompressed(f, w.pending); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	log.Debugf("Wrote chunk %s with %d records", name, len(w.pending))
	w.total += len(w.pending)
	w.pending = w.pending[:0]
	return nil
}

// WriteDefinitions writes the definitions file next to the chunks.
func (w *Writer) WriteDefinitions(defs map[int64][]Definition) error {
	name := filepath.Join(w.dir, defsFileName)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create definitions file: %w", err)
	}
	if err := encodeCompressed(f, defs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	log.Debugf("Wrote definitions for %d words", len(defs))
	return nil
}

// Close flushes the remaining records.
func (w *Writer) Close() error {
	return w.flush()
}

// RecordCount returns the records flushed so far.
func (w *Writer) RecordCount() int { return w.total }

// ChunkCount returns the chunk files written so far.
func (w *Writer) ChunkCount() int { return w.chunks }
