package zfile

// engine adapts one stateful streaming decompressor to a uniform contract.
// An engine owns the input-side buffering against the source; the File owns
// the output buffer and all offset bookkeeping.
type engine interface {
	// produce fills dst with decompressed bytes. eos is reported once,
	// when the final frame or member completes; n may be nonzero on the
	// same call. Errors wrap ErrTruncated or ErrCorrupted.
	produce(dst []byte) (n int, eos bool, err error)

	// finalize runs once after produce reports end of stream. It returns
	// non-fatal findings separately from a fatal verdict.
	finalize() (warnings []error, fatal error)

	// reset reinitializes decoder state so the next produce decodes from
	// the beginning of the payload. Also used for first-time setup.
	reset() error

	close() error
}

// newEngine creates the decode engine for a format, or nil for formats the
// package passes through undecoded.
func newEngine(format Format, src Source, inputSize int) engine {
	switch format {
	case FormatGzip:
		return newGzipEngine(src, inputSize)
	case FormatZstd:
		return newZstdEngine(src, inputSize)
	default:
		return nil
	}
}
