package zfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

type zstdEngine struct {
	src Source
	br  *bufio.Reader
	dec *zstd.Decoder
}

func newZstdEngine(src Source, inputSize int) *zstdEngine {
	return &zstdEngine{
		src: src,
		br:  bufio.NewReaderSize(src, inputSize),
	}
}

func (e *zstdEngine) reset() error {
	// The frame magic is part of the payload, so decoding restarts at
	// offset 0.
	if _, err := e.src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	e.br.Reset(e.src)
	if e.dec == nil {
		// Single-goroutine decoding: input is pulled on demand, never
		// read ahead by workers.
		dec, err := zstd.NewReader(e.br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return err
		}
		e.dec = dec
		return nil
	}
	return e.dec.Reset(e.br)
}

// produce decodes the next stretch of frame data. Concatenated frames come
// out as one continuous stream; end of stream is reported only once the
// source is exhausted at a frame boundary.
func (e *zstdEngine) produce(dst []byte) (int, bool, error) {
	n, err := e.dec.Read(dst)
	switch {
	case err == nil:
		return n, false, nil
	case errors.Is(err, io.EOF):
		return n, true, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		// No length trailer exists to legitimize a partial stream, so
		// a short frame is fatal.
		return n, false, fmt.Errorf("%w: zstd frame ends mid-stream", ErrTruncated)
	default:
		return n, false, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
}

// finalize is a no-op: zstd frames carry their own checksums, which the
// decoder verifies internally and surfaces as decode errors.
func (e *zstdEngine) finalize() ([]error, error) {
	return nil, nil
}

func (e *zstdEngine) close() error {
	if e.dec != nil {
		e.dec.Close()
	}
	return nil
}
