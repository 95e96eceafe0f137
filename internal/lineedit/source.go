package lineedit

import (
	"errors"
	"io"
)

// Readiness describes what a wake-up reported about the input stream.
type Readiness uint8

const (
	// Readable means at least one byte can be read without blocking.
	Readable Readiness = 1 << iota

	// Closed means the stream hung up or reported an error condition.
	Closed
)

// IsReadable reports whether data is available.
func (r Readiness) IsReadable() bool {
	return r&Readable != 0
}

// IsClosed reports whether the stream signalled closure or an error.
func (r Readiness) IsClosed() bool {
	return r&Closed != 0
}

// String returns a short description for logging.
func (r Readiness) String() string {
	switch {
	case r.IsReadable() && r.IsClosed():
		return "readable|closed"
	case r.IsReadable():
		return "readable"
	case r.IsClosed():
		return "closed"
	}
	return "none"
}

// Source is a single input stream with a blocking readiness wait.
type Source interface {
	// Wait blocks with no timeout until the stream is readable or closed.
	Wait() (Readiness, error)

	// Read reads the bytes that are currently available, up to len(p).
	// It returns io.EOF once the stream is exhausted.
	Read(p []byte) (int, error)
}

// ReaderSource adapts a plain io.Reader. It has no way to wait for
// readiness, so Wait always reports readable and Read blocks instead.
type ReaderSource struct {
	r   io.Reader
	eof bool
}

// NewReaderSource wraps r as a blocking Source.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Wait implements Source.
func (s *ReaderSource) Wait() (Readiness, error) {
	if s.eof {
		return Closed, nil
	}
	return Readable, nil
}

// Read implements Source.
func (s *ReaderSource) Read(p []byte) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	n, err := s.r.Read(p)
	if errors.Is(err, io.EOF) {
		s.eof = true
		if n > 0 {
			err = nil
		}
	}
	if n == 0 && err == nil {
		// A reader returning (0, nil) makes no progress; treat it as a
		// wake-up without data.
		return 0, nil
	}
	return n, err
}

// Close closes the underlying reader if it is an io.Closer.
func (s *ReaderSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
