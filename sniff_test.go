package zfile

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Format
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0, 0, 0, 0, 0, 0, 3}, FormatGzip},
		{"gzip non-deflate method", []byte{0x1f, 0x8b, 0x07, 0, 0, 0, 0, 0, 0, 3}, FormatNone},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0, 0, 0, 0, 0, 0}, FormatZstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18, 0, 0, 0, 0, 0, 0}, FormatLZ4},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0, 0, 0, 0}, FormatXZ},
		{"bzip2", []byte{0x42, 0x5a, 0x68, 0x39, 0, 0, 0, 0, 0, 0}, FormatBzip2},
		{"snappy framed", []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59}, FormatSnappy},
		{"plain text", []byte("hello, world"), FormatNone},
		{"short header", []byte{0x1f}, FormatNone},
		{"empty", nil, FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.header); got != tt.want {
				t.Fatalf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatWrappable(t *testing.T) {
	if !FormatGzip.Wrappable() || !FormatZstd.Wrappable() {
		t.Fatal("gzip and zstd must be wrappable")
	}
	for _, format := range []Format{FormatLZ4, FormatSnappy, FormatXZ, FormatBzip2, FormatNone} {
		if format.Wrappable() {
			t.Fatalf("%q must not be wrappable", format)
		}
	}
}

// Recognized-but-unsupported formats must pass through byte for byte.

func TestPassthroughLZ4(t *testing.T) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(pattern(32 * 1024)); err != nil {
		t.Fatalf("Failed to lz4 test data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close lz4 writer: %v", err)
	}

	assertPassthrough(t, buf.Bytes(), FormatLZ4)
}

func TestPassthroughSnappy(t *testing.T) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(pattern(32 * 1024)); err != nil {
		t.Fatalf("Failed to snappy test data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close snappy writer: %v", err)
	}

	assertPassthrough(t, buf.Bytes(), FormatSnappy)
}

func TestPassthroughBrotli(t *testing.T) {
	// Brotli has no magic bytes, so it comes through as an unrecognized
	// file.
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(pattern(32 * 1024)); err != nil {
		t.Fatalf("Failed to brotli test data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close brotli writer: %v", err)
	}

	if format := DetectFormat(buf.Bytes()); format == FormatNone {
		assertPassthrough(t, buf.Bytes(), FormatNone)
	} else {
		t.Fatalf("Unexpected magic match for brotli data: %q", format)
	}
}

func assertPassthrough(t *testing.T, file []byte, want Format) {
	t.Helper()

	f, err := NewFile(newMemSource(file), nil)
	if err != nil {
		t.Fatalf("Failed to open stream: %v", err)
	}
	defer f.Close()

	if f.Compressed() {
		t.Fatalf("Expected %q to pass through undecoded", want)
	}
	if f.Format() != want {
		t.Fatalf("Expected format %q, got %q", want, f.Format())
	}

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if !bytes.Equal(got, file) {
		t.Fatal("Passthrough altered the bytes")
	}
}
