package command

import (
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Status codes returned by Invoke besides handler results.
const (
	// StatusOK is the success status.
	StatusOK = 0

	// StatusNotFound is returned when no command matched.
	StatusNotFound = -1
)

// Dispatcher resolves argument vectors against command forests.
type Dispatcher struct {
	out     io.Writer
	logger  *zap.Logger
	metrics *Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records every invocation in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher writing listings, and handing handlers,
// the writer out.
func NewDispatcher(out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		out:    out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Invoke runs the command named by argv in forest.
//
// On a match it returns the handler's status and a nil error; a failing
// handler with a usage callback gets the callback run with argv[0] before
// the status is returned. When nothing matches it writes the not-found
// message and the sibling list, and returns StatusNotFound with a
// *NotFoundError.
func (d *Dispatcher) Invoke(argv []string, forest Forest) (int, error) {
	return d.invoke(argv, forest, nil)
}

func (d *Dispatcher) invoke(argv []string, forest Forest, path []string) (int, error) {
	width := 0
	for _, n := range forest {
		if n.kind == 0 {
			continue
		}

		if len(argv) > 0 && n.name == argv[0] {
			if n.IsGroup() {
				return d.invoke(argv[1:], n.children, append(path, n.name))
			}
			return d.run(n, argv, len(path))
		}

		if w := utf8.RuneCountInString(n.name); w > width {
			width = w
		}
	}

	name := ""
	if len(argv) > 0 {
		name = argv[0]
		fmt.Fprintf(d.out, "%s: command not found\r\n", name)
	}
	d.writeList(forest, width)

	d.logger.Debug("command not found",
		zap.Strings("path", path),
		zap.String("name", name),
	)
	d.metrics.observeNotFound()
	return StatusNotFound, &NotFoundError{Path: path, Name: name}
}

func (d *Dispatcher) run(n Node, argv []string, depth int) (int, error) {
	status := n.handler.Run(d.out, argv)
	if status != StatusOK {
		d.logger.Debug("command failed",
			zap.String("name", n.name),
			zap.Int("status", status),
		)
		if n.usage != nil {
			n.usage.Usage(d.out, argv[0])
		}
	}
	d.metrics.observeRun(status, depth)
	return status, nil
}

// WriteList writes the "available list." block for forest to w.
func WriteList(w io.Writer, forest Forest) {
	writeList(w, forest, maxNameWidth(forest))
}

func (d *Dispatcher) writeList(forest Forest, width int) {
	writeList(d.out, forest, width)
}

func writeList(w io.Writer, forest Forest, width int) {
	fmt.Fprint(w, "\r\navailable list.\r\n")
	for _, n := range forest {
		if n.kind == 0 {
			continue
		}
		fmt.Fprintf(w, "* %-*s: %s\r\n", width+1, n.name, n.help)
	}
}

func maxNameWidth(forest Forest) int {
	width := 0
	for _, n := range forest {
		if n.kind == 0 {
			continue
		}
		if w := utf8.RuneCountInString(n.name); w > width {
			width = w
		}
	}
	return width
}
