// Package command resolves an argument vector against a tree of commands
// and runs exactly one handler, or prints the commands available where the
// lookup stopped.
//
// # Trees
//
// A Forest is an ordered list of sibling nodes. Leaves carry a Handler and
// an optional Usage; groups carry a nested Forest:
//
//	var commands = command.Forest{
//	    command.Command("dummy", command.HandlerFunc(dummy), "help message", command.UsageFunc(usage)),
//	    command.Subcommand("sub", command.Forest{
//	        command.Command("dummy", command.HandlerFunc(dummy), "dummy help", nil),
//	    }, "sub-commands help"),
//	}
//
// # Resolution
//
// Invoke scans siblings in order and takes the first exact, case-sensitive
// name match. A group consumes the name and resolves the rest one level
// down; a leaf receives the remaining argv with its own name first. When
// nothing matches, the dispatcher writes "<name>: command not found" (if a
// name was given) and the sibling list, and returns StatusNotFound with a
// *NotFoundError.
//
// Trees are never modified by the dispatcher and may be shared freely.
package command
