package bvh

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// OpenSource wraps r with transparent decompression, sniffing gzip and
// zstd by their magic bytes. Plain text passes through unchanged.
func OpenSource(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("bvh: sniff source: %w", err)
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("bvh: open gzip source: %w", err)
		}
		return zr, nil

	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("bvh: open zstd source: %w", err)
		}
		return zr.IOReadCloser(), nil

	default:
		return br, nil
	}
}

// LoadFile parses the named file, decompressing gzip or zstd content
// transparently.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bvh: open %s: %w", path, err)
	}
	defer fh.Close()

	src, err := OpenSource(fh)
	if err != nil {
		return nil, err
	}
	return Load(src)
}
