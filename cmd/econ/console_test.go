package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/econ/internal/config"
	"github.com/dshills/econ/internal/lineedit"
)

func newTestConsole(t *testing.T, input string) (*console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := newConsole(consoleConfig{
		cfg: config.Default(),
		src: lineedit.NewReaderSource(strings.NewReader(input)),
		out: &out,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c, &out
}

func TestConsole_Echo(t *testing.T) {
	c, out := newTestConsole(t, "echo hi there\r")
	require.NoError(t, c.Run())
	assert.Equal(t, "econ> echo hi there\r\nhi there\r\necon> \r\n", out.String())
}

func TestConsole_Exit(t *testing.T) {
	c, out := newTestConsole(t, "exit\recho no\r")
	require.NoError(t, c.Run())
	assert.Equal(t, "econ> exit\r\n", out.String())
	assert.True(t, c.quit)
}

func TestConsole_EmptyLine(t *testing.T) {
	c, out := newTestConsole(t, "   \r")
	require.NoError(t, c.Run())
	assert.Equal(t, "econ>    \r\necon> \r\n", out.String())
}

func TestConsole_Demo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not found", "nope\r", "nope: command not found\r\n\r\navailable list.\r\n"},
		{"usage", "dummy\r", "usage: dummy\r\n"},
		{"long name usage", "dummmmmmmmmmmmmmmmmmmmmmmy\r", "usage: dummmmmmmmmmmmmmmmmmmmmmmy\r\n"},
		{"list alignment", "help\r", "* dummmmmmmmmmmmmmmmmmmmmmmy : help message\r\n"},
		{"sub list", "help sub\r", "\r\navailable list.\r\n* dummy : dummy help\r\n"},
		{"leaf help", "help dummy\r", "dummy: help message\r\nusage: dummy\r\n"},
		{"missing sub-command", "sub\r", "\r\navailable list.\r\n* dummy : dummy help\r\n"},
		{"help unknown", "help zzz\r", "zzz: command not found\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestConsole(t, tt.input)
			require.NoError(t, c.Run())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestConsole_DemoQuiet(t *testing.T) {
	c, out := newTestConsole(t, "sub dummy x\rdummy x\r")
	require.NoError(t, c.Run())
	assert.Equal(t, "econ> sub dummy x\r\necon> dummy x\r\necon> \r\n", out.String())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const commandsDoc = `
commands:
  - name: greet
    help: greet someone
    usage: "usage: {name} <who>"
    script: |
      function run(argv)
        if #argv < 2 then return false end
        write("hello ", argv[2], "\r\n")
      end
  - name: bye
    help: leave
    builtin: exit
`

func TestConsole_LoadCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	writeFile(t, path, commandsDoc)

	c, out := newTestConsole(t, "greet bob\rgreet\rbye\r")
	require.NoError(t, c.loadCommands(path))
	assert.Equal(t, []string{"greet", "bye"}, c.forest.Names())

	require.NoError(t, c.Run())
	assert.Contains(t, out.String(), "hello bob\r\n")
	assert.Contains(t, out.String(), "usage: greet <who>\r\n")
	assert.True(t, c.quit)
}

func TestConsole_LoadCommandsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	writeFile(t, path, "commands:\n  - name: x\n")

	c, _ := newTestConsole(t, "")
	assert.Error(t, c.loadCommands(path))
	assert.Contains(t, c.forest.Names(), "dummy")
}

func TestConsole_ReloadCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	writeFile(t, path, commandsDoc)

	c, _ := newTestConsole(t, "")
	require.NoError(t, c.loadCommands(path))

	writeFile(t, path, "commands:\n  - name: only\n    builtin: echo\n")
	c.notify(path)
	c.applyReloads()
	assert.Equal(t, []string{"only"}, c.forest.Names())

	writeFile(t, path, "commands: [")
	c.notify(path)
	c.applyReloads()
	assert.Equal(t, []string{"only"}, c.forest.Names(), "a broken file keeps the old tree")
}

func TestConsole_ReloadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "econ.toml")
	cmdPath := filepath.Join(dir, "commands.yaml")
	writeFile(t, cfgPath, "prompt = \"a>\"\n")
	writeFile(t, cmdPath, commandsDoc)

	var out bytes.Buffer
	c := newConsole(consoleConfig{
		cfg:        config.Default(),
		configPath: cfgPath,
		src:        lineedit.NewReaderSource(strings.NewReader("")),
		out:        &out,
	})
	defer c.Close()

	c.notify(cfgPath)
	c.applyReloads()
	assert.Equal(t, "a>", c.prompt)

	writeFile(t, cfgPath, "prompt = \"b>\"\nmax_args = 2\ncommands_file = \""+cmdPath+"\"\n")
	c.notify(cfgPath)
	c.applyReloads()
	assert.Equal(t, "b>", c.prompt)
	assert.Equal(t, 2, c.maxArgs)
	assert.Equal(t, []string{"greet", "bye"}, c.forest.Names())

	writeFile(t, cfgPath, "max_args = 0\n")
	c.notify(cfgPath)
	c.applyReloads()
	assert.Equal(t, "b>", c.prompt, "an invalid file keeps the old settings")
}

func TestConsole_ReloadOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "econ.toml")
	writeFile(t, cfgPath, "prompt = \"file>\"\n")

	c := newConsole(consoleConfig{
		cfg:        config.Default(),
		configPath: cfgPath,
		override:   func(cfg *config.Config) { cfg.Prompt = "flag>" },
		src:        lineedit.NewReaderSource(strings.NewReader("")),
		out:        &bytes.Buffer{},
	})
	c.notify(cfgPath)
	c.applyReloads()
	assert.Equal(t, "flag>", c.prompt)
}

func TestConsole_NotifyNeverBlocks(t *testing.T) {
	c, _ := newTestConsole(t, "")
	for i := 0; i < 100; i++ {
		c.notify("/nowhere")
	}
	c.applyReloads()
	assert.Empty(t, c.reloads)
}
