package cmdtree

import "errors"

// ErrInvalidEntry is wrapped by every declaration error. The message names
// the offending entry by its path.
var ErrInvalidEntry = errors.New("cmdtree: invalid entry")
