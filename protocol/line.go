package protocol

// MaxLineLen bounds a single command line. A line still unterminated at
// the limit is emitted as-is, matching the firmware-style fixed receive
// buffer this framer replaces.
const MaxLineLen = 64

// LineFramer accumulates raw bytes into newline-delimited command
// lines. Feed it one byte at a time; it reports at most one completed
// line per byte.
type LineFramer struct {
	buf []byte
}

// NewLineFramer returns an empty framer.
func NewLineFramer() *LineFramer {
	return &LineFramer{buf: make([]byte, 0, MaxLineLen)}
}

// Feed consumes one byte. When b completes a line (LF or CR, or the
// buffer hit MaxLineLen), the accumulated text is returned with ok ==
// true and the framer resets. Empty lines and bare line-break pairs are
// swallowed.
func (f *LineFramer) Feed(b byte) (line string, ok bool) {
	if b == '\n' || b == '\r' {
		if len(f.buf) == 0 {
			return "", false
		}
		line = string(f.buf)
		f.buf = f.buf[:0]
		return line, true
	}
	f.buf = append(f.buf, b)
	if len(f.buf) >= MaxLineLen {
		line = string(f.buf)
		f.buf = f.buf[:0]
		return line, true
	}
	return "", false
}

// Pending returns the number of buffered bytes not yet terminated.
func (f *LineFramer) Pending() int { return len(f.buf) }

// Reset discards any partial line.
func (f *LineFramer) Reset() { f.buf = f.buf[:0] }
