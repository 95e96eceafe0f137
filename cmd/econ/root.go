package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/econ/internal/command"
	"github.com/dshills/econ/internal/config"
	"github.com/dshills/econ/internal/config/watcher"
	"github.com/dshills/econ/internal/lineedit"
	"github.com/dshills/econ/internal/logging"
)

// options holds command-line flags. Set flags override the config file
// and environment.
type options struct {
	configPath   string
	prompt       string
	commandsFile string
	logLevel     string
	metricsAddr  string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "econ",
		Short: "Embedded console",
		Long: `econ reads raw keystrokes, edits a command line in place and runs the
finished line against a command tree.

Without --commands a demo tree is loaded. Type "help" to list commands and
"exit" to leave.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to TOML configuration file")
	flags.StringVar(&opts.prompt, "prompt", "", "prompt text")
	flags.StringVar(&opts.commandsFile, "commands", "", "path to YAML command tree")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// overrides returns a function applying set flags to a loaded config.
func overrides(cmd *cobra.Command, opts options) func(*config.Config) {
	flags := cmd.Flags()
	return func(cfg *config.Config) {
		if flags.Changed("prompt") {
			cfg.Prompt = opts.prompt
		}
		if flags.Changed("commands") {
			cfg.CommandsFile = opts.commandsFile
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = opts.logLevel
		}
	}
}

func loadConfig(path string, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	override(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runConsole(cmd *cobra.Command, opts options) error {
	override := overrides(cmd, opts)
	cfg, err := loadConfig(opts.configPath, override)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()

	restore, err := makeRaw(in)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer restore()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(signals)
		close(done)
	}()
	go func() {
		select {
		case <-signals:
			restore()
			os.Exit(1)
		case <-done:
		}
	}()

	var dispOpts []command.Option
	dispOpts = append(dispOpts, command.WithLogger(logger.Named("command")))
	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m, err := command.NewMetrics(reg)
		if err != nil {
			return err
		}
		dispOpts = append(dispOpts, command.WithMetrics(m))
		stop := serveMetrics(opts.metricsAddr, reg, logger)
		defer stop()
	}

	c := newConsole(consoleConfig{
		cfg:        cfg,
		configPath: opts.configPath,
		override:   override,
		src:        newSource(in),
		out:        out,
		logger:     logger,
		dispatch:   dispOpts,
	})
	defer c.Close()

	if err := c.loadCommands(cfg.CommandsFile); err != nil {
		return err
	}

	w, err := c.watch()
	if err != nil {
		logger.Warn("reload disabled", zap.Error(err))
	}
	if w != nil {
		defer w.Close()
	}

	return c.Run()
}

// newSource uses a readiness-driven source for files and a blocking one
// for anything else.
func newSource(in io.Reader) lineedit.Source {
	if f, ok := in.(*os.File); ok {
		return lineedit.NewFileSource(f)
	}
	return lineedit.NewReaderSource(in)
}

// watch starts a watcher for the config and commands files, if any.
func (c *console) watch() (*watcher.Watcher, error) {
	var paths []string
	if c.configPath != "" {
		paths = append(paths, c.configPath)
	}
	if c.commandsPath != "" {
		paths = append(paths, c.commandsPath)
	}
	if len(paths) == 0 {
		return nil, nil
	}

	w, err := watcher.New(watcher.WithLogger(c.logger.Named("watcher")))
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	w.OnChange(func(ev watcher.Event) {
		c.notify(ev.Path)
	})
	c.watcher = w
	return w, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
