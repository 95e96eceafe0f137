package lineedit

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/econ/internal/argv"
)

// DefaultPrompt is shown when Prompt is called with an empty prompt.
const DefaultPrompt = "econ>"

// defaultChunkSize is the read size per wake-up.
const defaultChunkSize = 256

// Editor is one line-editing session bound to an input Source and an
// output stream. It is not safe for concurrent use.
type Editor struct {
	id  string
	src Source
	out *Renderer

	line *Line
	dec  Decoder

	chunk   []byte
	pending []byte

	// skipLF swallows the LF of a CRLF pair whose CR ended the last line.
	skipLF bool
	closed bool

	defaultPrompt string
	logger        *zap.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithCapacity sets the maximum line length in bytes.
func WithCapacity(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.line = NewLine(n)
		}
	}
}

// WithDefaultPrompt replaces DefaultPrompt for this session.
func WithDefaultPrompt(prompt string) Option {
	return func(e *Editor) {
		if prompt != "" {
			e.defaultPrompt = prompt
		}
	}
}

// WithChunkSize sets how many bytes are read per wake-up.
func WithChunkSize(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.chunk = make([]byte, n)
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an editing session reading from src and rendering to out.
func New(src Source, out io.Writer, opts ...Option) *Editor {
	e := &Editor{
		id:            uuid.New().String(),
		src:           src,
		out:           NewRenderer(out),
		line:          NewLine(DefaultCapacity),
		chunk:         make([]byte, defaultChunkSize),
		defaultPrompt: DefaultPrompt,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With(zap.String("session", e.id))
	return e
}

// ID returns the session identifier.
func (e *Editor) ID() string {
	return e.id
}

// Line returns the line being edited.
func (e *Editor) Line() *Line {
	return e.line
}

// Closed reports whether the input stream has signalled closure. Once
// closed, every further Prompt returns an empty line immediately.
func (e *Editor) Closed() bool {
	return e.closed
}

// Close closes the input source if it is an io.Closer.
func (e *Editor) Close() error {
	if c, ok := e.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Prompt shows prompt, edits one line and returns at most maxArgs
// whitespace separated arguments.
//
// The line ends on CR or LF, or when the stream closes or errors, which
// counts as an implicit end of line. A failing wait or read aborts the
// cycle; the returned error wraps the underlying OS error.
func (e *Editor) Prompt(prompt string, maxArgs int) ([]string, error) {
	if prompt == "" {
		prompt = e.defaultPrompt
	}

	e.line.Reset()
	e.dec.Reset()
	e.out.Prompt(prompt)
	e.logger.Debug("prompt", zap.String("prompt", prompt))

	done, err := e.edit()
	if flushErr := e.out.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, flushErr)
	}
	if err != nil {
		return nil, err
	}
	if !done {
		// Closure ends the line the same way Enter does.
		e.out.Newline()
		if err := e.out.Flush(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	args := argv.Strings(argv.Split(e.line.Bytes(), maxArgs))
	e.logger.Debug("line complete",
		zap.Int("length", e.line.Len()),
		zap.Int("args", len(args)),
		zap.Bool("closed", e.closed),
	)
	return args, nil
}

// edit runs the read loop. It returns true when the line ended with Enter
// and false when the stream closed first.
func (e *Editor) edit() (bool, error) {
	if len(e.pending) > 0 {
		data := e.pending
		e.pending = nil
		if e.feed(data) {
			return true, nil
		}
	}

	for !e.closed {
		if err := e.out.Flush(); err != nil {
			return false, fmt.Errorf("%w: %w", ErrWrite, err)
		}

		ready, err := e.src.Wait()
		if err != nil {
			e.logger.Debug("wait failed", zap.Error(err))
			return false, fmt.Errorf("%w: %w", ErrWait, err)
		}

		if !ready.IsReadable() {
			if ready.IsClosed() {
				e.logger.Debug("input closed", zap.Stringer("readiness", ready))
				e.closed = true
			}
			continue
		}

		n, err := e.src.Read(e.chunk)
		if n > 0 && e.feed(e.chunk[:n]) {
			return true, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				e.logger.Debug("input exhausted")
				e.closed = true
				continue
			}
			return false, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
	return false, nil
}

// feed applies data to the line. It returns true when a line end was
// consumed; bytes after it are kept for the next Prompt.
func (e *Editor) feed(data []byte) bool {
	for i, b := range data {
		if e.skipLF {
			e.skipLF = false
			if b == LF {
				continue
			}
		}

		ev := e.dec.Feed(b)
		if ev.Key != KeyEnter {
			e.apply(ev)
			continue
		}

		e.skipLF = b == CR
		e.out.Newline()
		if rest := data[i+1:]; len(rest) > 0 {
			e.pending = append([]byte(nil), rest...)
		}
		return true
	}
	return false
}

// apply performs one editing key on the line and renders the change.
func (e *Editor) apply(ev Event) {
	l := e.line

	switch ev.Key {
	case KeyPrintable:
		atEnd := l.AtEnd()
		if !l.Insert(ev.Byte) {
			return
		}
		if atEnd {
			e.out.Echo(ev.Byte)
		} else {
			e.out.Repaint(l)
		}

	case KeyBackspace:
		if l.AtEnd() {
			if l.Backspace() {
				e.out.EraseLast()
			}
			return
		}
		if l.Backspace() {
			e.out.Repaint(l)
		}

	case KeyDelete:
		if l.Delete() {
			e.out.Repaint(l)
		}

	case KeyRight:
		if l.Right() {
			e.out.Forward(1)
		}

	case KeyLeft:
		if l.Left() {
			e.out.Back(1)
		}

	case KeyUp, KeyDown:
		// No history.
	}
}
