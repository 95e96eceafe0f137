package script

import "errors"

// Script errors.
var (
	// ErrCompile is returned when the source does not load.
	ErrCompile = errors.New("script: compile failed")

	// ErrNoRun is returned when the source defines no run function.
	ErrNoRun = errors.New("script: run function not defined")

	// ErrClosed is returned by a closed script.
	ErrClosed = errors.New("script: closed")
)
