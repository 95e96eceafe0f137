package main

import (
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dshills/econ/internal/cmdtree"
	"github.com/dshills/econ/internal/command"
	"github.com/dshills/econ/internal/config"
	"github.com/dshills/econ/internal/config/watcher"
	"github.com/dshills/econ/internal/lineedit"
)

type consoleConfig struct {
	cfg        *config.Config
	configPath string
	override   func(*config.Config)
	src        lineedit.Source
	out        io.Writer
	logger     *zap.Logger
	dispatch   []command.Option
}

// console runs the prompt and dispatch loop. Reloads requested by the
// watcher are queued and applied between lines.
type console struct {
	editor     *lineedit.Editor
	dispatcher *command.Dispatcher
	logger     *zap.Logger

	prompt  string
	maxArgs int

	configPath   string
	commandsPath string
	override     func(*config.Config)

	forest  command.Forest
	tree    *cmdtree.Tree
	watcher *watcher.Watcher

	reloads chan string
	quit    bool
}

func newConsole(cc consoleConfig) *console {
	logger := cc.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	override := cc.override
	if override == nil {
		override = func(*config.Config) {}
	}

	c := &console{
		editor: lineedit.New(cc.src, cc.out,
			lineedit.WithCapacity(cc.cfg.BufferSize),
			lineedit.WithDefaultPrompt(cc.cfg.Prompt),
			lineedit.WithLogger(logger.Named("lineedit")),
		),
		dispatcher: command.NewDispatcher(cc.out, cc.dispatch...),
		logger:     logger,
		prompt:     cc.cfg.Prompt,
		maxArgs:    cc.cfg.MaxArgs,
		configPath: absPath(cc.configPath),
		override:   override,
		reloads:    make(chan string, 8),
	}
	c.forest = c.demoForest()
	return c
}

// Run loops until exit is invoked or the input closes.
func (c *console) Run() error {
	for !c.quit {
		c.applyReloads()

		args, err := c.editor.Prompt(c.prompt, c.maxArgs)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			// Not-found is reported to the user by the dispatcher.
			_, _ = c.dispatcher.Invoke(args, c.forest)
		}
		if c.editor.Closed() {
			c.logger.Debug("input closed")
			return nil
		}
	}
	return nil
}

// Close releases script handlers.
func (c *console) Close() error {
	if c.tree == nil {
		return nil
	}
	err := c.tree.Close()
	c.tree = nil
	return err
}

// loadCommands replaces the forest with the tree in path. An empty path
// restores the demo forest.
func (c *console) loadCommands(path string) error {
	if path == "" {
		c.swapTree(nil, c.demoForest())
		c.commandsPath = ""
		return nil
	}

	tree, err := cmdtree.Load(path, c.builtins())
	if err != nil {
		return err
	}
	c.swapTree(tree, tree.Forest)
	c.commandsPath = absPath(path)
	c.logger.Info("commands loaded",
		zap.String("path", c.commandsPath),
		zap.Strings("commands", tree.Forest.Names()),
	)
	return nil
}

func (c *console) swapTree(tree *cmdtree.Tree, forest command.Forest) {
	if c.tree != nil {
		if err := c.tree.Close(); err != nil {
			c.logger.Warn("closing command tree", zap.Error(err))
		}
	}
	c.tree = tree
	c.forest = forest
}

// notify queues a reload of path. It never blocks; a full queue already
// holds a pending reload.
func (c *console) notify(path string) {
	select {
	case c.reloads <- path:
	default:
	}
}

func (c *console) applyReloads() {
	for {
		select {
		case path := <-c.reloads:
			c.reload(path)
		default:
			return
		}
	}
}

// reload re-reads a changed file. Failures are logged and the previous
// settings stay in effect.
func (c *console) reload(path string) {
	path = absPath(path)
	switch path {
	case c.configPath:
		c.reloadConfig()
	case c.commandsPath:
		if err := c.loadCommands(path); err != nil {
			c.logger.Warn("command reload failed", zap.String("path", path), zap.Error(err))
		}
	}
}

func (c *console) reloadConfig() {
	cfg, err := loadConfig(c.configPath, c.override)
	if err != nil {
		c.logger.Warn("config reload failed", zap.String("path", c.configPath), zap.Error(err))
		return
	}

	c.prompt = cfg.Prompt
	c.maxArgs = cfg.MaxArgs
	if cfg.BufferSize != c.editor.Line().Cap() {
		c.logger.Info("buffer_size change takes effect on restart",
			zap.Int("current", c.editor.Line().Cap()),
			zap.Int("configured", cfg.BufferSize),
		)
	}

	if absPath(cfg.CommandsFile) != c.commandsPath {
		if err := c.loadCommands(cfg.CommandsFile); err != nil {
			c.logger.Warn("command reload failed", zap.String("path", cfg.CommandsFile), zap.Error(err))
			return
		}
		if c.watcher != nil && c.commandsPath != "" {
			if err := c.watcher.Add(c.commandsPath); err != nil {
				c.logger.Warn("watching commands file", zap.Error(err))
			}
		}
	}
	c.logger.Info("config reloaded", zap.String("path", c.configPath))
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
