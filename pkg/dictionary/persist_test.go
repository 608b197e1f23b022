package dictionary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterLoaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 10)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for i := 1; i <= 25; i++ {
		r := rec(int64(i), int64(i), fmt.Sprintf("word%02d", i), "K AE1 T")
		if err := w.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if w.ChunkCount() != 3 || w.RecordCount() != 25 {
		t.Fatalf("wrote %d chunks / %d records, want 3 / 25", w.ChunkCount(), w.RecordCount())
	}
	defs := map[int64][]Definition{
		3: {{PartOfSpeech: "noun", Text: "the third word", Source: "wordnet"}},
	}
	if err := w.WriteDefinitions(defs); err != nil {
		t.Fatalf("WriteDefinitions: %v", err)
	}

	store, err := NewLoader(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 25 {
		t.Errorf("store has %d records, want 25", store.Len())
	}
	recs := store.Lookup("word03")
	if len(recs) != 1 {
		t.Fatalf("Lookup(word03) = %v", recs)
	}
	if recs[0].RhymeKeys[0] != "AE1 T" {
		t.Errorf("features lost on round trip: %+v", recs[0])
	}
	got := store.DefinitionsFor([]int64{3})
	if len(got[3]) != 1 || got[3][0].Text != "the third word" {
		t.Errorf("definitions lost on round trip: %v", got)
	}
}

func TestLoaderRequiresChunks(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(context.Background())
	if err == nil {
		t.Fatal("Load on empty dir should fail")
	}
	if !strings.Contains(err.Error(), "no chunk files") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIngest(t *testing.T) {
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "cmudict.txt")
	defsPath := filepath.Join(dir, "defs.tsv")
	dataDir := filepath.Join(dir, "data")
	if err := os.WriteFile(dictPath, []byte(sampleCMU), 0o644); err != nil {
		t.Fatal(err)
	}
	tsv := "cat\tnoun\ta small feline\n" +
		"zebra\tnoun\tstriped equine\n" // no pronunciation, dropped
	if err := os.WriteFile(defsPath, []byte(tsv), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Ingest(dictPath, defsPath, dataDir, 2)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.Words != 3 || result.Records != 4 {
		t.Errorf("result = %+v", result)
	}
	if result.Definitions != 1 {
		t.Errorf("kept %d definitions, want 1 (zebra has no pronunciation)", result.Definitions)
	}
	if result.Chunks != 2 {
		t.Errorf("chunks = %d, want 2", result.Chunks)
	}

	store, err := NewLoader(dataDir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load after ingest: %v", err)
	}
	cat := store.Lookup("cat")
	if len(cat) != 1 {
		t.Fatalf("Lookup(cat) = %v", cat)
	}
	defs := store.DefinitionsFor([]int64{cat[0].WordID})
	if len(defs[cat[0].WordID]) != 1 {
		t.Errorf("cat definitions missing after ingest: %v", defs)
	}
}
