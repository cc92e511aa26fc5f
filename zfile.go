package zfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
)

// Format identifies a compression format by its file header.
type Format string

const (
	FormatGzip   Format = "gzip"
	FormatZstd   Format = "zstd"
	FormatLZ4    Format = "lz4"
	FormatSnappy Format = "snappy"
	FormatXZ     Format = "xz"
	FormatBzip2  Format = "bzip2"
	FormatNone   Format = ""
)

// Config holds stream configuration
type Config struct {
	// Capacity of the raw compressed-byte buffer refilled from the
	// source (default: 32KB)
	InputBufferSize int

	// Capacity of the decoded-byte buffer drained by Read (default: 256KB)
	OutputBufferSize int

	// Scratch buffer used to discard decoded bytes while emulating a
	// forward seek (default: 32KB)
	SeekBufferSize int

	// Logger receives seek-skip notices and trailer warnings.
	// Nil disables logging.
	Logger logrus.FieldLogger
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		InputBufferSize:  32 * 1024,
		OutputBufferSize: 256 * 1024,
		SeekBufferSize:   32 * 1024,
	}
}

var (
	ErrTruncated        = errors.New("zfile: truncated input")
	ErrCorrupted        = errors.New("zfile: corrupted compressed data")
	ErrInvalidSeek      = errors.New("zfile: unsupported seek")
	ErrLengthMismatch   = errors.New("zfile: gzip trailer length mismatch")
	ErrChecksumMismatch = errors.New("zfile: gzip trailer checksum mismatch")
)

// Source is the raw byte source a File decompresses from. It only ever needs
// to seek forward or back to the start; *os.File satisfies it.
type Source interface {
	io.Reader
	io.Seeker
	io.Closer
}

// File presents a compressed source as an ordinary read-only stream. It is
// not safe for concurrent use: like an *os.File, it assumes a single owner.
type File struct {
	src    Source
	config *Config
	format Format

	// logicOffset is where the caller believes it is in the decompressed
	// stream; decodeOffset is how far decoding has actually accounted for.
	// They differ only while a forward seek is being emulated.
	logicOffset  int64
	decodeOffset int64

	// actualLen counts every decompressed byte produced, including bytes
	// discarded by forward seeks.
	actualLen int64

	outbuf   []byte
	outStart int
	outEnd   int

	eng     engine
	seekbuf []byte

	eof       bool
	truncated bool
	rerr      error
	warnings  []error
	closed    bool
}

// Open opens the named file for reading with default configuration,
// transparently decompressing it if it is gzip- or zstd-compressed.
func Open(name string) (*File, error) {
	return OpenFile(name, nil)
}

// OpenFile opens the named file for reading. A nil config means
// DefaultConfig.
func OpenFile(name string, config *Config) (*File, error) {
	src, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	f, err := NewFile(src, config)
	if err != nil {
		src.Close()
		return nil, err
	}
	return f, nil
}

// NewFile wraps an already-open source positioned at offset 0. The returned
// File takes ownership of src and closes it on Close; on error, src is left
// open and positioned arbitrarily. Sources whose header matches no supported
// format are passed through undecoded, which Compressed reports.
func NewFile(src Source, config *Config) (*File, error) {
	config = fillConfig(config)

	hdr := make([]byte, sniffLen)
	if _, err := io.ReadFull(src, hdr); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: file shorter than %d-byte header", ErrTruncated, sniffLen)
		}
		return nil, err
	}

	format := DetectFormat(hdr)

	f := &File{
		src:    src,
		config: config,
		format: format,
	}

	f.eng = newEngine(format, src, config.InputBufferSize)
	if f.eng == nil {
		// Not a format we decode: hand back the raw bytes.
		if format != FormatNone && config.Logger != nil {
			config.Logger.WithField("format", string(format)).Debug("recognized format has no decoder, passing through")
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return f, nil
	}

	if err := f.eng.reset(); err != nil {
		f.eng.close()
		return nil, err
	}
	f.outbuf = make([]byte, config.OutputBufferSize)
	return f, nil
}

// Read decompresses into p. Short reads are allowed; (0, io.EOF) means the
// decoded stream is complete. When the source turns out to be truncated,
// bytes decoded before the cut are still delivered and the following call
// returns an error wrapping ErrTruncated.
func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}
	if f.eng == nil {
		return f.src.Read(p)
	}
	if len(p) == 0 {
		return 0, nil
	}

	total := 0

	// Decoded bytes a prior seek skipped over but that have not been
	// produced yet. Zero except mid-emulation.
	ignore := f.logicOffset - f.decodeOffset

	for {
		// Drain already-decoded output first.
		if avail := f.outEnd - f.outStart; avail > 0 {
			if ignore > 0 {
				skip := min(ignore, int64(avail))
				f.outStart += int(skip)
				f.decodeOffset += skip
				ignore -= skip
				avail -= int(skip)
			}
			if ignore == 0 && avail > 0 {
				n := copy(p[total:], f.outbuf[f.outStart:f.outEnd])
				f.outStart += n
				f.decodeOffset += int64(n)
				f.logicOffset += int64(n)
				total += n
				if total == len(p) {
					return total, nil
				}
			}
		}

		// Output exhausted. Surface a recorded terminal state before
		// asking the engine for more.
		if f.rerr != nil {
			if total > 0 {
				return total, nil
			}
			return 0, f.rerr
		}
		if f.eof {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}

		n, eos, err := f.eng.produce(f.outbuf)
		f.outStart, f.outEnd = 0, n
		f.actualLen += int64(n)
		if eos {
			f.eof = true
			warnings, fatal := f.eng.finalize()
			f.warn(warnings...)
			if fatal != nil {
				f.rerr = fatal
			}
		}
		if err != nil {
			f.rerr = err
			if errors.Is(err, ErrTruncated) {
				f.truncated = true
			}
		}
	}
}

// Close releases the decoder state and then closes the underlying source.
func (f *File) Close() error {
	if f.closed {
		return fs.ErrClosed
	}
	f.closed = true

	var err error
	if f.eng != nil {
		err = f.eng.close()
		f.eng = nil
	}
	if cerr := f.src.Close(); cerr != nil && err == nil {
		err = cerr
	}
	f.outbuf = nil
	f.seekbuf = nil
	return err
}

// Format returns the format detected at open time. A non-empty format with
// Compressed()==false means the file was recognized but is handed through
// undecoded.
func (f *File) Format() Format {
	return f.format
}

// Compressed reports whether reads are being decompressed.
func (f *File) Compressed() bool {
	return f.eng != nil
}

// Truncated reports whether the compressed payload ended before the decoder
// expected it to. A stream that merely lacks its gzip trailer is not
// considered truncated; that condition appears in Warnings instead.
func (f *File) Truncated() bool {
	return f.truncated
}

// Warnings returns the non-fatal integrity findings recorded so far, such as
// a mismatching gzip trailer checksum or a missing trailer. Rewinding to
// offset 0 clears them.
func (f *File) Warnings() []error {
	return f.warnings
}

// Offset returns the caller-visible position in the decompressed stream.
func (f *File) Offset() int64 {
	if f.eng == nil {
		off, _ := f.src.Seek(0, io.SeekCurrent)
		return off
	}
	return f.logicOffset
}

// DecodedBytes returns the number of decompressed bytes produced so far,
// including bytes discarded by forward seeks.
func (f *File) DecodedBytes() int64 {
	return f.actualLen
}

func (f *File) warn(warnings ...error) {
	for _, w := range warnings {
		if f.config.Logger != nil {
			f.config.Logger.WithField("format", string(f.format)).Warn(w.Error())
		}
	}
	f.warnings = append(f.warnings, warnings...)
}
