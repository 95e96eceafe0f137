package command

import "io"

// Handler runs a leaf command. argv[0] is the command's own name. A zero
// status means success.
type Handler interface {
	Run(out io.Writer, argv []string) int
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(out io.Writer, argv []string) int

// Run implements Handler.
func (f HandlerFunc) Run(out io.Writer, argv []string) int {
	return f(out, argv)
}

// Usage prints how to call a command after its handler failed.
type Usage interface {
	Usage(out io.Writer, name string)
}

// UsageFunc adapts a function to Usage.
type UsageFunc func(out io.Writer, name string)

// Usage implements Usage.
func (f UsageFunc) Usage(out io.Writer, name string) {
	f(out, name)
}
