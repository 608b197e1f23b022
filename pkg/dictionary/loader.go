package dictionary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Loader discovers chunk files in a data directory and builds a Store
// from them.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// ChunkFiles returns the chunk file paths in ascending chunk order.
func (l *Loader) ChunkFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(l.dir, chunkFilePattern))
	if err != nil {
		return nil, fmt.Errorf("scan chunk files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads every chunk in parallel and assembles the store. The
// definitions file is optional; a missing one just yields a store
// without definitions.
func (l *Loader) Load(ctx context.Context) (*Store, error) {
	start := time.Now()
	files, err := l.ChunkFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no chunk files in %s (run ingest first)", l.dir)
	}

	chunks := make([][]Record, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open chunk: %w", err)
			}
			defer f.Close()
			r, err := checkChunkHeader(path, f)
			if err != nil {
				return err
			}
			if err := decodeCompressed(r, &chunks[i]); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	store := NewStore()
	total := 0
	for _, recs := range chunks {
		for _, rec := range recs {
			store.Add(rec)
		}
		total += len(recs)
	}

	defs, err := l.loadDefinitions()
	if err != nil {
		return nil, err
	}
	for wordID, d := range defs {
		store.SetDefinitions(wordID, d)
	}

	log.Infof("Loaded %d records from %d chunks and definitions for %d words in %v",
		total, len(files), len(defs), time.Since(start).Round(time.Millisecond))
	return store, nil
}

func (l *Loader) loadDefinitions() (map[int64][]Definition, error) {
	path := filepath.Join(l.dir, defsFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("No definitions file at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("open definitions: %w", err)
	}
	defer f.Close()
	r, err := checkChunkHeader(path, f)
	if err != nil {
		return nil, err
	}
	var defs map[int64][]Definition
	if err := decodeCompressed(r, &defs); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return defs, nil
}
