package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// FileKind classifies the on-disk files the package reads and writes.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindChunk            // zstd compressed msgpack, written by Writer
	KindText             // plain text source: CMU dictionary or definitions TSV
)

func (k FileKind) String() string {
	switch k {
	case KindChunk:
		return "binary chunk"
	case KindText:
		return "text"
	}
	return "unknown"
}

// zstdMagic starts every frame the chunk writer emits.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// DetectKind sniffs the leading bytes of a file. Chunks carry the zstd
// frame magic; text sources start with printable ASCII.
func DetectKind(path string) (FileKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	head := make([]byte, len(zstdMagic))
	n, err := io.ReadFull(f, head)
	if err == io.EOF {
		return KindUnknown, nil
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return KindUnknown, fmt.Errorf("read %s: %w", path, err)
	}
	head = head[:n]

	if bytes.Equal(head, zstdMagic) {
		return KindChunk, nil
	}
	if textLike(head) {
		return KindText, nil
	}
	return KindUnknown, nil
}

func textLike(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 || (c < 0x20 && c != '\t' && c != '\n' && c != '\r') {
			return false
		}
	}
	return len(b) > 0
}

// ensureTextSource rejects binary files passed where a text source is
// expected, before a parser chews on compressed bytes.
func ensureTextSource(path string) error {
	kind, err := DetectKind(path)
	if err != nil {
		return err
	}
	if kind == KindChunk {
		return fmt.Errorf("%s is a binary chunk file, expected a text source", path)
	}
	if kind == KindUnknown {
		log.Warnf("Cannot tell what %s holds, parsing it as text anyway", path)
	}
	return nil
}

// checkChunkHeader verifies r starts with the zstd frame magic and
// returns a reader with those bytes still pending.
func checkChunkHeader(name string, r io.Reader) (io.Reader, error) {
	head := make([]byte, len(zstdMagic))
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}
	if !bytes.Equal(head, zstdMagic) {
		return nil, fmt.Errorf("%s is not a chunk file (bad magic %x)", name, head)
	}
	return io.MultiReader(bytes.NewReader(head), r), nil
}
