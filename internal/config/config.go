package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/econ/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. ECON_PROMPT.
const EnvPrefix = "ECON"

// Limits enforced by Validate.
const (
	MinBufferSize = 16
	MaxBufferSize = 64 * 1024
)

// Config holds console settings.
type Config struct {
	// Prompt is shown before each line.
	Prompt string `toml:"prompt" envconfig:"PROMPT"`

	// BufferSize is the maximum line length in bytes.
	BufferSize int `toml:"buffer_size" envconfig:"BUFFER_SIZE"`

	// MaxArgs caps the number of tokens per line.
	MaxArgs int `toml:"max_args" envconfig:"MAX_ARGS"`

	// CommandsFile is an optional YAML command tree.
	CommandsFile string `toml:"commands_file" envconfig:"COMMANDS_FILE"`

	Log LogConfig `toml:"log" envconfig:"LOG"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level       string `toml:"level" envconfig:"LEVEL"`
	Development bool   `toml:"development" envconfig:"DEVELOPMENT"`

	// Output is a file path, "stderr", or empty to disable logging.
	Output string `toml:"output" envconfig:"OUTPUT"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:     "econ>",
		BufferSize: 256,
		MaxArgs:    24,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a configuration from defaults, the TOML file at path (if
// path is non-empty and the file exists) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.MergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile overlays the TOML file at path. A missing file is not an error.
func (c *Config) MergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	defer f.Close()

	return c.decode(path, f)
}

// MergeReader overlays TOML read from r.
func (c *Config) MergeReader(r io.Reader) error {
	return c.decode("<reader>", r)
}

func (c *Config) decode(source string, r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return &ParseError{Path: source, Err: err}
	}
	return nil
}

// MergeEnv overlays ECON_* environment variables. Unset variables leave
// the current values alone.
func (c *Config) MergeEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.BufferSize < MinBufferSize || c.BufferSize > MaxBufferSize {
		return fmt.Errorf("%w: buffer_size %d not in [%d, %d]",
			ErrInvalidConfig, c.BufferSize, MinBufferSize, MaxBufferSize)
	}
	if c.MaxArgs < 1 {
		return fmt.Errorf("%w: max_args must be at least 1, got %d", ErrInvalidConfig, c.MaxArgs)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Logging converts the log section to a logging.Config.
func (c *Config) Logging() logging.Config {
	cfg := logging.Config{
		Level:       c.Log.Level,
		Development: c.Log.Development,
	}
	if c.Log.Output != "" {
		cfg.OutputPaths = []string{c.Log.Output}
	}
	return cfg
}
