package config

import "errors"

// Configuration errors.
var (
	// ErrInvalidConfig indicates a setting is out of range.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *ParseError) Error() string {
	return "config: parse " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
