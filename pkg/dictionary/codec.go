package dictionary

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Chunk files hold msgpack values compressed with zstd.

func encodeCompressed(w io.Writer, v any) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := msgpack.NewEncoder(zw).Encode(v); err != nil {
		zw.Close()
		return fmt.Errorf("encode msgpack: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zstd writer: %w", err)
	}
	return nil
}

func decodeCompressed(r io.Reader, v any) error {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	if err := msgpack.NewDecoder(zr).Decode(v); err != nil {
		return fmt.Errorf("decode msgpack: %w", err)
	}
	return nil
}
