package zfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
)

// gzipHeaderSize is the fixed member header this package accepts. The header
// is skipped manually so the body can be decoded as raw deflate; members
// carrying optional FEXTRA/FNAME/FCOMMENT fields are not supported.
const gzipHeaderSize = 10

type gzipEngine struct {
	src Source
	br  *bufio.Reader
	fr  io.ReadCloser

	crc  uint32 // running CRC32 over produced bytes
	size uint32 // produced length mod 2^32
}

func newGzipEngine(src Source, inputSize int) *gzipEngine {
	return &gzipEngine{
		src: src,
		br:  bufio.NewReaderSize(src, inputSize),
	}
}

func (e *gzipEngine) reset() error {
	if _, err := e.src.Seek(gzipHeaderSize, io.SeekStart); err != nil {
		return err
	}
	e.br.Reset(e.src)
	if e.fr == nil {
		e.fr = flate.NewReader(e.br)
	} else if err := e.fr.(flate.Resetter).Reset(e.br, nil); err != nil {
		return err
	}
	e.crc = 0
	e.size = 0
	return nil
}

func (e *gzipEngine) produce(dst []byte) (int, bool, error) {
	n, err := e.fr.Read(dst)
	if n > 0 {
		e.crc = crc32.Update(e.crc, crc32.IEEETable, dst[:n])
		e.size += uint32(n)
	}
	switch {
	case err == nil:
		return n, false, nil
	case errors.Is(err, io.EOF):
		return n, true, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return n, false, fmt.Errorf("%w: deflate body ends mid-stream", ErrTruncated)
	default:
		return n, false, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
}

// finalize reads the 8-byte trailer (CRC32, then length mod 2^32, both
// little-endian). The deflate decoder reads byte-precise, so trailer bytes
// it never consumed sit unread in the input buffer; reading from it drains
// that lookback first and fetches any remainder from the source.
func (e *gzipEngine) finalize() ([]error, error) {
	var tlr [8]byte
	if _, err := io.ReadFull(e.br, tlr[:]); err != nil {
		// A short trailer does not invalidate the bytes already
		// delivered.
		return []error{fmt.Errorf("%w: gzip trailer missing or short", ErrTruncated)}, nil
	}

	var warnings []error
	crc := binary.LittleEndian.Uint32(tlr[0:4])
	mlen := binary.LittleEndian.Uint32(tlr[4:8])

	// A zero trailer CRC is treated as absent, not mismatching; some
	// producers emit trailers without computing one.
	if crc != 0 && crc != e.crc {
		warnings = append(warnings, fmt.Errorf("%w: trailer declares %#08x, computed %#08x", ErrChecksumMismatch, crc, e.crc))
	}
	if mlen != e.size {
		return warnings, fmt.Errorf("%w: trailer declares %d bytes, decoded %d", ErrLengthMismatch, mlen, e.size)
	}
	return warnings, nil
}

func (e *gzipEngine) close() error {
	if e.fr == nil {
		return nil
	}
	return e.fr.Close()
}
