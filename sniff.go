package zfile

import "bytes"

// sniffLen is how many header bytes open reads before deciding whether to
// wrap the source: the full fixed-size gzip member header, which also covers
// every other magic below.
const sniffLen = 10

// Magic bytes for compression format detection. Gzip is matched on three
// bytes (ID1, ID2, CM=deflate) so that members using an unexpected
// compression method fall through to passthrough.
var magicBytes = map[Format][]byte{
	FormatGzip:   {0x1f, 0x8b, 0x08},
	FormatZstd:   {0x28, 0xb5, 0x2f, 0xfd},
	FormatLZ4:    {0x04, 0x22, 0x4d, 0x18},
	FormatSnappy: {0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50},
	FormatXZ:     {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	FormatBzip2:  {0x42, 0x5a, 0x68},
}

// DetectFormat classifies a file header by magic bytes. It returns
// FormatNone when no known magic matches. Only FormatGzip and FormatZstd
// lead to decompression when opening; the other formats are reported for
// diagnostics and passed through.
func DetectFormat(header []byte) Format {
	for format, magic := range magicBytes {
		if len(header) >= len(magic) && bytes.Equal(header[:len(magic)], magic) {
			return format
		}
	}
	return FormatNone
}

// Wrappable reports whether this package can decompress the format.
func (f Format) Wrappable() bool {
	return f == FormatGzip || f == FormatZstd
}
