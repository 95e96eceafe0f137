package lineedit

import (
	"bufio"
	"io"
)

// Pre-allocated escape sequence fragments.
var (
	csi           = []byte("\x1b[")
	csiEraseLine  = []byte("\x1b[K")
	csiBackOne    = []byte("\x1b[1D")
	csiForwardOne = []byte("\x1b[1C")
	crlf          = []byte("\r\n")
)

// Renderer keeps the terminal in sync with a Line.
//
// Edits at the tail use single-byte echo or erase. Any edit away from the
// tail repaints the prompt and the whole line, clears the rest of the
// terminal line, and moves the terminal cursor back to the logical one.
type Renderer struct {
	w      *bufio.Writer
	prompt []byte
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriter(w)}
}

// Prompt writes the prompt followed by a single space and remembers it for
// later repaints.
func (r *Renderer) Prompt(prompt string) {
	r.prompt = append(r.prompt[:0], prompt...)
	r.prompt = append(r.prompt, SP)
	r.w.Write(r.prompt)
}

// Echo writes a byte appended at the tail.
func (r *Renderer) Echo(b byte) {
	r.w.WriteByte(b)
}

// EraseLast removes the last cell on screen.
func (r *Renderer) EraseLast() {
	r.w.Write(csiBackOne)
	r.w.Write(csiEraseLine)
}

// Repaint redraws the prompt and line, then puts the terminal cursor on
// the line's cursor.
func (r *Renderer) Repaint(l *Line) {
	r.w.WriteByte(CR)
	r.w.Write(r.prompt)
	r.w.Write(l.Bytes())
	r.w.Write(csiEraseLine)
	r.Back(l.Len() - l.Cursor())
}

// Forward moves the terminal cursor n columns right.
func (r *Renderer) Forward(n int) {
	r.move(n, 'C')
}

// Back moves the terminal cursor n columns left.
func (r *Renderer) Back(n int) {
	r.move(n, 'D')
}

// Newline ends the line with CRLF.
func (r *Renderer) Newline() {
	r.w.Write(crlf)
}

// Flush writes any buffered output.
func (r *Renderer) Flush() error {
	return r.w.Flush()
}

func (r *Renderer) move(n int, dir byte) {
	// ESC[0D moves one column on most terminals; never emit it.
	if n <= 0 {
		return
	}
	if n == 1 {
		if dir == 'C' {
			r.w.Write(csiForwardOne)
		} else {
			r.w.Write(csiBackOne)
		}
		return
	}
	r.w.Write(csi)
	writeInt(r.w, n)
	r.w.WriteByte(dir)
}

// writeInt writes a non-negative integer without allocating.
func writeInt(w *bufio.Writer, n int) {
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}
