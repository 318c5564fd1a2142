package bvh

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func gzipData(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdData(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	if _, err := zw.Write([]byte(text)); err != nil {
		t.Fatalf("zstd write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	return buf.Bytes()
}

func TestOpenSource(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"plain", func(t *testing.T) []byte { return []byte(simpleSkeleton) }},
		{"gzip", func(t *testing.T) []byte { return gzipData(t, simpleSkeleton) }},
		{"zstd", func(t *testing.T) []byte { return zstdData(t, simpleSkeleton) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := OpenSource(bytes.NewReader(tt.data(t)))
			if err != nil {
				t.Fatalf("OpenSource: %v", err)
			}
			f, err := Load(src)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if f.NumJoints() != 2 {
				t.Errorf("NumJoints: got %d, want 2", f.NumJoints())
			}
		})
	}
}

func TestOpenSource_ShortInput(t *testing.T) {
	// Inputs shorter than the longest magic must not error out of the
	// sniffer; they fail later, in the parser.
	src, err := OpenSource(bytes.NewReader([]byte("HI")))
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if _, err := Load(src); err == nil {
		t.Error("Truncated input should fail to parse")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "clip.bvh")
	if err := os.WriteFile(plain, []byte(simpleSkeleton), 0o644); err != nil {
		t.Fatal(err)
	}
	packed := filepath.Join(dir, "clip.bvh.gz")
	if err := os.WriteFile(packed, gzipData(t, simpleSkeleton), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, packed} {
		f, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", path, err)
		}
		if f.NumFrames() != 1 {
			t.Errorf("LoadFile(%s): %d frames, want 1", path, f.NumFrames())
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.bvh")); err == nil {
		t.Error("LoadFile should fail on a missing file")
	}
}
