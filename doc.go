// Package zfile presents a gzip- or zstd-compressed file as an ordinary
// read-only, forward-seekable stream.
//
// True random access is impossible over a compressed byte stream, so the
// stream emulates the restricted seeks that are still sound: seeking forward
// decodes and discards, and seeking back to offset 0 rewinds by
// reinitializing the decoder. Every other seek is rejected. Files whose
// header matches neither format are handed through undecoded, so callers
// always get a usable stream.
//
// # Features
//
//   - Transparent gzip and zstd decompression behind Read/Seek/Close
//   - Magic-byte format detection at open time, passthrough for everything else
//   - Forward seeks and rewind-to-zero over compressed data
//   - Gzip trailer validation: checksum mismatches are recorded as warnings,
//     length mismatches fail the read
//   - Tolerates truncated tails: decoded bytes are delivered before the
//     truncation is surfaced as an error
//   - Configurable buffer sizes and optional structured logging
//
// # Quick Start
//
//	f, _ := zfile.Open("core.gz")
//	defer f.Close()
//
//	if f.Compressed() {
//	    // reads decompress transparently
//	}
//
//	f.Seek(4096, io.SeekStart) // decode-and-discard forward
//	data, _ := io.ReadAll(f)
//	f.Seek(0, io.SeekStart)    // full rewind, fresh decoder
//
// # Seeking Rules
//
// io.SeekEnd is never supported for compressed files: the decompressed
// length is not known in advance. Backward seeks to any offset other than 0
// fail and leave the stream untouched. Seeking past the end of the stream
// positions at the end rather than failing.
//
// # Integrity
//
// For gzip, a running CRC32 is kept over the decompressed bytes and checked
// against the 8-byte trailer at end of stream. A trailer checksum of exactly
// zero is treated as absent. Checksum disagreement is a warning (see
// Warnings) because some producers are known to emit unreliable checksums; a
// length disagreement is an error, since it means the caller received a
// different number of bytes than the producer declared. Zstd frames carry
// their own checksums, verified inside the decoder.
//
// A File is not safe for concurrent use; it owns its buffers and decoder
// state exclusively, the same discipline as an *os.File.
package zfile
