//go:build unix

package lineedit

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// FileSource waits on a file descriptor with poll(2).
type FileSource struct {
	f  *os.File
	fd int
}

// NewFileSource creates a Source polling f. Fd puts f in blocking mode,
// which is what the poll-then-read loop expects.
func NewFileSource(f *os.File) *FileSource {
	return &FileSource{f: f, fd: int(f.Fd())}
}

// Wait implements Source. It blocks without timeout; EINTR restarts the
// wait, any other poll error is returned unchanged.
func (s *FileSource) Wait() (Readiness, error) {
	for {
		r, err := s.poll(-1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return r, err
	}
}

// Read implements Source. It drains every byte available right now, up to
// len(p), without blocking after the first read.
func (s *FileSource) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := unix.Read(s.fd, p[total:])
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if total > 0 {
				return total, nil
			}
			if errors.Is(err, unix.EIO) {
				// A terminal whose other side went away reports EIO.
				return 0, io.EOF
			}
			return 0, err
		}
		if n == 0 {
			if total == 0 {
				return 0, io.EOF
			}
			break
		}
		total += n
		if total == len(p) {
			break
		}

		r, err := s.poll(0)
		if err != nil || !r.IsReadable() {
			break
		}
	}
	return total, nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}

func (s *FileSource) poll(timeout int) (Readiness, error) {
	fds := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
	}

	n, err := unix.Poll(fds, timeout)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	var r Readiness
	if fds[0].Revents&unix.POLLIN != 0 {
		r |= Readable
	}
	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
		r |= Closed
	}
	return r, nil
}
