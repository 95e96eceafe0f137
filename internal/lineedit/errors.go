package lineedit

import "errors"

// Line editor errors.
var (
	// ErrWait indicates the readiness wait on the input stream failed.
	ErrWait = errors.New("lineedit: wait for input")

	// ErrRead indicates reading from the input stream failed.
	ErrRead = errors.New("lineedit: read input")

	// ErrWrite indicates writing to the output stream failed.
	ErrWrite = errors.New("lineedit: write output")
)
