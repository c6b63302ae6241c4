package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only yields whole newline-terminated lines. A trailing line
// without its newline is held back, with io.EOF reported, until the rest of
// it arrives, so a CSV file that is still being appended to never parses a
// half-written row.
type lineReader struct {
	r *bufio.Reader
	// partial is the unterminated line read so far.
	partial []byte
	// pending is the remainder of a complete line that did not fit into
	// the caller's buffer.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		l.pending, l.partial = l.partial, nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
