package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/econ/internal/cmdtree"
	"github.com/dshills/econ/internal/command"
)

// builtins returns the Go handlers a command file may reference.
func (c *console) builtins() cmdtree.Builtins {
	return cmdtree.Builtins{
		"dummy": command.HandlerFunc(c.dummy),
		"fail":  command.HandlerFunc(c.fail),
		"exit":  command.HandlerFunc(c.exit),
		"help":  command.HandlerFunc(c.help),
		"echo":  command.HandlerFunc(echo),
	}
}

// demoForest is the tree used when no command file is configured.
func (c *console) demoForest() command.Forest {
	b := c.builtins()
	dummyUsage := command.UsageFunc(func(out io.Writer, name string) {
		fmt.Fprintf(out, "usage: %s\r\n", name)
	})

	return command.Forest{
		command.Command("dummy", b["dummy"], "help message", dummyUsage),
		command.Command("dummmmmmmmmmmmmmmmmmmmmmmy", b["dummy"], "help message", dummyUsage),
		command.Subcommand("sub", command.Forest{
			command.Command("dummy", b["dummy"], "dummy help", nil),
		}, "sub-commands help"),
		command.Command("aaa", b["fail"], "aaa help", nil),
		command.Command("exit", b["exit"], "exit console", nil),
		command.Command("help", b["help"], "list commands", nil),
		command.Command("echo", b["echo"], "print arguments", nil),
	}
}

// dummy needs one argument.
func (c *console) dummy(_ io.Writer, argv []string) int {
	if len(argv) < 2 {
		return -1
	}
	c.logger.Debug("called", zap.String("name", argv[0]), zap.String("arg", argv[1]))
	return 0
}

func (c *console) fail(_ io.Writer, argv []string) int {
	c.logger.Debug("called", zap.String("name", argv[0]), zap.Int("argc", len(argv)))
	return -1
}

func (c *console) exit(_ io.Writer, _ []string) int {
	c.quit = true
	return 0
}

// help lists the top level, or the commands under a group path.
func (c *console) help(out io.Writer, argv []string) int {
	if len(argv) < 2 {
		command.WriteList(out, c.forest)
		return 0
	}

	n, ok := c.forest.Find(argv[1:]...)
	if !ok {
		fmt.Fprintf(out, "%s: command not found\r\n", strings.Join(argv[1:], " "))
		return 1
	}
	if n.IsGroup() {
		command.WriteList(out, n.Children())
		return 0
	}
	fmt.Fprintf(out, "%s: %s\r\n", n.Name(), n.Help())
	if u := n.Usage(); u != nil {
		u.Usage(out, n.Name())
	}
	return 0
}

func echo(out io.Writer, argv []string) int {
	io.WriteString(out, strings.Join(argv[1:], " ")+"\r\n")
	return 0
}
