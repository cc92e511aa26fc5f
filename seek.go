package zfile

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/sirupsen/logrus"
)

// Seek repositions the decompressed stream. Only io.SeekStart and
// io.SeekCurrent are supported: the decoded length is unknown until the
// stream has been read through, so io.SeekEnd is rejected. The target must
// be 0 (a full rewind) or at/after the current position (emulated by
// decoding and discarding); any other target fails without touching stream
// state. Seeking past end of stream positions at end of stream.
//
// Uncompressed sources keep their native seek behavior, including
// io.SeekEnd.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}
	if f.eng == nil {
		return f.src.Seek(offset, whence)
	}

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.logicOffset + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", ErrInvalidSeek, whence)
	}

	if target < 0 || (target < f.logicOffset && target != 0) {
		return 0, fmt.Errorf("%w: cannot seek backward to %d", ErrInvalidSeek, target)
	}

	if target == 0 {
		return 0, f.rewind()
	}

	if target > f.logicOffset {
		if f.config.Logger != nil {
			f.config.Logger.WithFields(logrus.Fields{
				"skip": target - f.logicOffset,
				"to":   target,
			}).Debug("emulating forward seek")
		}
		if f.seekbuf == nil {
			f.seekbuf = make([]byte, f.config.SeekBufferSize)
		}
		for f.logicOffset < target {
			chunk := min(int64(len(f.seekbuf)), target-f.logicOffset)
			_, err := f.Read(f.seekbuf[:chunk])
			if err == io.EOF {
				// Clamp: the stream ended before the target.
				target = f.logicOffset
				break
			}
			if err != nil {
				return 0, err
			}
		}
	}

	return f.logicOffset, nil
}

// rewind tears the decoder down and starts over, leaving the stream exactly
// as a freshly opened one.
func (f *File) rewind() error {
	if err := f.eng.reset(); err != nil {
		return err
	}
	f.logicOffset = 0
	f.decodeOffset = 0
	f.actualLen = 0
	f.outStart, f.outEnd = 0, 0
	f.eof = false
	f.truncated = false
	f.rerr = nil
	f.warnings = nil
	return nil
}
