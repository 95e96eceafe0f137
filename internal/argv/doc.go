// Package argv splits a finished command line into an argument vector.
//
// Split works in place: separator bytes in the line are overwritten with
// NUL and the returned tokens are sub-slices of the caller's buffer, so they
// stay valid only as long as that buffer is not reused. Use Strings to take
// copies that outlive the buffer.
package argv
