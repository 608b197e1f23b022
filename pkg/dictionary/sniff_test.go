package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectKind(t *testing.T) {
	dir := t.TempDir()

	chunkDir := filepath.Join(dir, "data")
	w, err := NewWriter(chunkDir, 10)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Add(rec(1, 1, "cat", "K AE1 T")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	chunks, err := NewLoader(chunkDir).ChunkFiles()
	if err != nil || len(chunks) != 1 {
		t.Fatalf("ChunkFiles = %v, %v", chunks, err)
	}

	textPath := filepath.Join(dir, "dict.txt")
	if err := os.WriteFile(textPath, []byte("CAT  K AE1 T\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	emptyPath := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want FileKind
	}{
		{"chunk", chunks[0], KindChunk},
		{"text", textPath, KindText},
		{"empty", emptyPath, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.path)
			if err != nil {
				t.Fatalf("DetectKind: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectKind(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if _, err := DetectKind(filepath.Join(dir, "nope")); err == nil {
		t.Error("DetectKind on a missing file should fail")
	}
}

func TestIngestRejectsBinarySource(t *testing.T) {
	dir := t.TempDir()
	chunkDir := filepath.Join(dir, "data")
	w, err := NewWriter(chunkDir, 10)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Add(rec(1, 1, "cat", "K AE1 T")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	chunks, err := NewLoader(chunkDir).ChunkFiles()
	if err != nil || len(chunks) != 1 {
		t.Fatalf("ChunkFiles = %v, %v", chunks, err)
	}

	_, err = Ingest(chunks[0], "", filepath.Join(dir, "out"), 10)
	if err == nil {
		t.Fatal("Ingest with a chunk file as the dictionary should fail")
	}
	if !strings.Contains(err.Error(), "binary chunk") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoaderRejectsCorruptChunk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pron_0001.bin"), []byte("not a chunk"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(dir).Load(context.Background())
	if err == nil {
		t.Fatal("Load should fail on a corrupt chunk")
	}
	if !strings.Contains(err.Error(), "bad magic") {
		t.Errorf("unexpected error: %v", err)
	}
}
