package lineedit

import "fmt"

// DefaultCapacity is the line capacity used when none is configured.
const DefaultCapacity = 256

// Line is a bounded, editable command line with a cursor.
//
// The invariant 0 <= cursor <= Len() <= Cap() holds after every method
// returns. Bytes [0, Len()) are exactly the text shown after the prompt.
type Line struct {
	buf    []byte
	n      int
	cursor int
}

// NewLine creates an empty line holding at most capacity bytes.
// A non-positive capacity selects DefaultCapacity.
func NewLine(capacity int) *Line {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Line{buf: make([]byte, capacity)}
}

// Len returns the number of bytes in the line.
func (l *Line) Len() int {
	return l.n
}

// Cap returns the maximum number of bytes the line can hold.
func (l *Line) Cap() int {
	return len(l.buf)
}

// Cursor returns the insertion point.
func (l *Line) Cursor() int {
	return l.cursor
}

// AtEnd reports whether the cursor sits after the last byte.
func (l *Line) AtEnd() bool {
	return l.cursor == l.n
}

// Bytes returns the line content. The slice aliases the line storage.
func (l *Line) Bytes() []byte {
	return l.buf[:l.n]
}

// String returns a copy of the line content.
func (l *Line) String() string {
	return string(l.buf[:l.n])
}

// Reset empties the line.
func (l *Line) Reset() {
	l.n = 0
	l.cursor = 0
}

// Insert puts b at the cursor, shifting the tail right, and advances the
// cursor. It returns false and leaves the line untouched when full.
func (l *Line) Insert(b byte) bool {
	if l.n >= len(l.buf) {
		return false
	}
	copy(l.buf[l.cursor+1:l.n+1], l.buf[l.cursor:l.n])
	l.buf[l.cursor] = b
	l.n++
	l.cursor++
	return true
}

// Backspace removes the byte before the cursor.
func (l *Line) Backspace() bool {
	if l.cursor == 0 {
		return false
	}
	l.cursor--
	l.removeAt(l.cursor)
	return true
}

// Delete removes the byte under the cursor.
func (l *Line) Delete() bool {
	if l.cursor >= l.n {
		return false
	}
	l.removeAt(l.cursor)
	return true
}

// Left moves the cursor one byte left. It reports whether it moved.
func (l *Line) Left() bool {
	if l.cursor == 0 {
		return false
	}
	l.cursor--
	return true
}

// Right moves the cursor one byte right. It reports whether it moved.
func (l *Line) Right() bool {
	if l.cursor >= l.n {
		return false
	}
	l.cursor++
	return true
}

func (l *Line) removeAt(i int) {
	copy(l.buf[i:l.n-1], l.buf[i+1:l.n])
	l.n--
	l.buf[l.n] = NUL
}

// GoString renders the line with a cursor marker, for test failures.
func (l *Line) GoString() string {
	return fmt.Sprintf("Line(%q|%q, len=%d, cap=%d)",
		l.buf[:l.cursor], l.buf[l.cursor:l.n], l.n, len(l.buf))
}
