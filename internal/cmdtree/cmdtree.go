package cmdtree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/econ/internal/argv"
	"github.com/dshills/econ/internal/command"
	"github.com/dshills/econ/internal/script"
)

// File is the document layout.
type File struct {
	Commands []Entry `yaml:"commands"`
}

// Entry declares one command.
type Entry struct {
	Name     string  `yaml:"name"`
	Help     string  `yaml:"help"`
	Usage    string  `yaml:"usage"`
	Builtin  string  `yaml:"builtin"`
	Script   string  `yaml:"script"`
	Commands []Entry `yaml:"commands"`
}

// Builtins maps builtin names to handlers.
type Builtins map[string]command.Handler

// Tree is a loaded forest. Close it to release script handlers.
type Tree struct {
	Forest  command.Forest
	scripts []*script.Script
}

// Scripts returns the number of script handlers in the tree.
func (t *Tree) Scripts() int {
	return len(t.scripts)
}

// Close releases every script handler.
func (t *Tree) Close() error {
	var errs []error
	for _, s := range t.scripts {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	t.scripts = nil
	return errors.Join(errs...)
}

// Load reads and parses the file at path.
func Load(path string, builtins Builtins) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cmdtree: %w", err)
	}
	return Parse(data, builtins)
}

// Parse builds a tree from YAML. Unknown keys are rejected. An empty
// document yields an empty forest.
func Parse(data []byte, builtins Builtins) (*Tree, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cmdtree: parse: %w", err)
	}

	t := &Tree{}
	b := builder{builtins: builtins, tree: t}
	forest, err := b.forest(f.Commands, "")
	if err != nil {
		_ = t.Close()
		return nil, err
	}
	t.Forest = forest
	return t, nil
}

type builder struct {
	builtins Builtins
	tree     *Tree
}

func (b *builder) forest(entries []Entry, parent string) (command.Forest, error) {
	forest := make(command.Forest, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		path := entryPath(parent, e.Name, i)
		if err := validName(e.Name); err != nil {
			return nil, invalid(path, err.Error())
		}
		if seen[e.Name] {
			return nil, invalid(path, "duplicate name")
		}
		seen[e.Name] = true

		n, err := b.node(e, path)
		if err != nil {
			return nil, err
		}
		forest = append(forest, n)
	}
	return forest, nil
}

func (b *builder) node(e Entry, path string) (command.Node, error) {
	kinds := 0
	for _, set := range []bool{e.Builtin != "", e.Script != "", len(e.Commands) > 0} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return command.Node{}, invalid(path, "need exactly one of builtin, script or commands")
	}

	switch {
	case len(e.Commands) > 0:
		if e.Usage != "" {
			return command.Node{}, invalid(path, "usage is only allowed on leaf commands")
		}
		children, err := b.forest(e.Commands, path)
		if err != nil {
			return command.Node{}, err
		}
		return command.Subcommand(e.Name, children, e.Help), nil

	case e.Builtin != "":
		h, ok := b.builtins[e.Builtin]
		if !ok || h == nil {
			return command.Node{}, invalid(path, fmt.Sprintf("unknown builtin %q", e.Builtin))
		}
		return command.Command(e.Name, h, e.Help, usage(e.Usage)), nil

	default:
		s, err := script.Compile(e.Name, e.Script)
		if err != nil {
			return command.Node{}, fmt.Errorf("%w: %s: %w", ErrInvalidEntry, path, err)
		}
		b.tree.scripts = append(b.tree.scripts, s)
		return command.Command(e.Name, s, e.Help, usage(e.Usage)), nil
	}
}

// usage returns a callback printing tmpl, or nil for an empty template.
func usage(tmpl string) command.Usage {
	if tmpl == "" {
		return nil
	}
	tmpl = strings.TrimRight(tmpl, "\r\n")
	return command.UsageFunc(func(out io.Writer, name string) {
		io.WriteString(out, strings.ReplaceAll(tmpl, "{name}", name)+"\r\n")
	})
}

func validName(name string) error {
	if name == "" {
		return errors.New("empty name")
	}
	if strings.IndexFunc(name, func(r rune) bool {
		return r < 0x80 && argv.IsSeparator(byte(r))
	}) >= 0 {
		return errors.New("name contains a separator")
	}
	return nil
}

func entryPath(parent, name string, index int) string {
	if name == "" {
		name = fmt.Sprintf("[%d]", index)
	}
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func invalid(path, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidEntry, path, msg)
}
