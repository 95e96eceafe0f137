package cmdtree_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/econ/internal/cmdtree"
	"github.com/dshills/econ/internal/command"
)

const sample = `
commands:
  - name: echo
    help: print arguments
    builtin: echo
  - name: sub
    help: sub-commands
    commands:
      - name: greet
        help: greet someone
        usage: "usage: {name} <who>"
        script: |
          function run(argv)
            if #argv < 2 then return false end
            write("hello ", argv[2], "\r\n")
          end
  - name: fail
    help: always fails
    builtin: fail
    usage: "{name} takes no arguments"
`

func builtins() cmdtree.Builtins {
	return cmdtree.Builtins{
		"echo": command.HandlerFunc(func(out io.Writer, argv []string) int {
			io.WriteString(out, strings.Join(argv[1:], " ")+"\r\n")
			return 0
		}),
		"fail": command.HandlerFunc(func(io.Writer, []string) int { return 3 }),
	}
}

func parse(t *testing.T, doc string) *cmdtree.Tree {
	t.Helper()
	tree, err := cmdtree.Parse([]byte(doc), builtins())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tree.Close() })
	return tree
}

func TestParse_Structure(t *testing.T) {
	tree := parse(t, sample)

	assert.Equal(t, []string{"echo", "sub", "fail"}, tree.Forest.Names())
	assert.Equal(t, 1, tree.Scripts())

	sub, ok := tree.Forest.Find("sub")
	require.True(t, ok)
	assert.True(t, sub.IsGroup())
	assert.Equal(t, "sub-commands", sub.Help())

	greet, ok := tree.Forest.Find("sub", "greet")
	require.True(t, ok)
	assert.Equal(t, command.KindLeaf, greet.Kind())
	assert.NotNil(t, greet.Usage())

	echo, _ := tree.Forest.Find("echo")
	assert.Nil(t, echo.Usage())
}

func TestParse_Dispatch(t *testing.T) {
	tree := parse(t, sample)

	tests := []struct {
		name   string
		argv   []string
		status int
		out    string
	}{
		{"builtin", []string{"echo", "a", "b"}, 0, "a b\r\n"},
		{"script", []string{"sub", "greet", "bob"}, 0, "hello bob\r\n"},
		{"script usage", []string{"sub", "greet"}, 1, "usage: greet <who>\r\n"},
		{"builtin usage", []string{"fail", "x"}, 3, "fail takes no arguments\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			status, err := command.NewDispatcher(&out).Invoke(tt.argv, tree.Forest)
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.out, out.String())
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, doc := range []string{"", "commands: []\n"} {
		tree := parse(t, doc)
		assert.Empty(t, tree.Forest)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"no kind",
			"commands:\n  - name: x\n",
			"x: need exactly one of",
		},
		{
			"two kinds",
			"commands:\n  - name: x\n    builtin: echo\n    script: 'function run() end'\n",
			"x: need exactly one of",
		},
		{
			"empty name",
			"commands:\n  - builtin: echo\n",
			"[0]: empty name",
		},
		{
			"separator in name",
			"commands:\n  - name: \"a b\"\n    builtin: echo\n",
			"a b: name contains a separator",
		},
		{
			"duplicate",
			"commands:\n  - name: x\n    builtin: echo\n  - name: x\n    builtin: echo\n",
			"x: duplicate name",
		},
		{
			"unknown builtin",
			"commands:\n  - name: x\n    builtin: nope\n",
			`x: unknown builtin "nope"`,
		},
		{
			"group usage",
			"commands:\n  - name: g\n    usage: u\n    commands:\n      - name: x\n        builtin: echo\n",
			"g: usage is only allowed",
		},
		{
			"nested path",
			"commands:\n  - name: g\n    commands:\n      - name: x\n",
			"g/x: need exactly one of",
		},
		{
			"bad script",
			"commands:\n  - name: s\n    script: 'x = 1'\n",
			"s: script: run function not defined",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cmdtree.Parse([]byte(tt.doc), builtins())
			require.ErrorIs(t, err, cmdtree.ErrInvalidEntry)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Syntax(t *testing.T) {
	_, err := cmdtree.Parse([]byte("commands: [\n"), builtins())
	require.Error(t, err)
	assert.NotErrorIs(t, err, cmdtree.ErrInvalidEntry)

	_, err = cmdtree.Parse([]byte("commands:\n  - name: x\n    colour: red\n"), builtins())
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	tree, err := cmdtree.Load(path, builtins())
	require.NoError(t, err)
	defer tree.Close()
	assert.Len(t, tree.Forest, 3)

	_, err = cmdtree.Load(filepath.Join(t.TempDir(), "missing.yaml"), builtins())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClose(t *testing.T) {
	tree, err := cmdtree.Parse([]byte(sample), builtins())
	require.NoError(t, err)
	require.NoError(t, tree.Close())
	assert.Equal(t, 0, tree.Scripts())
	require.NoError(t, tree.Close())
}
