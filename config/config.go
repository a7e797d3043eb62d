// Package config loads hot edit analysis settings from YAML or TOML files.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
	"github.com/viant/hotedit/analyzer"
	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/inspector/graph"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// ErrInvalid is returned for settings that cannot be applied
var ErrInvalid = errors.New("invalid config")

// Config holds analysis, logging and output settings
type Config struct {
	Capabilities []string     `yaml:"capabilities" toml:"capabilities" json:"capabilities"`
	Strict       bool         `yaml:"strict" toml:"strict" json:"strict"`
	Concurrency  int          `yaml:"concurrency" toml:"concurrency" json:"concurrency"`
	Logging      Logging      `yaml:"logging" toml:"logging" json:"logging"`
	Output       Output       `yaml:"output" toml:"output" json:"output"`
	Inspector    graph.Config `yaml:"inspector" toml:"inspector" json:"inspector"`
}

// Logging configures the zap logger
type Logging struct {
	Level    string `yaml:"level" toml:"level" json:"level"`
	Encoding string `yaml:"encoding" toml:"encoding" json:"encoding"` // json or console
}

// Output configures result rendering
type Output struct {
	Format  string `yaml:"format" toml:"format" json:"format"`
	NoColor bool   `yaml:"noColor" toml:"noColor" json:"noColor"`
}

// Default returns the settings used without a config file
func Default() *Config {
	return &Config{
		Capabilities: []string{"Baseline"},
		Logging:      Logging{Level: "info", Encoding: "console"},
		Output:       Output{Format: FormatText},
		Inspector:    *graph.DefaultConfig(),
	}
}

// Load reads a config file; the format is chosen by extension (.yaml, .yml or .toml).
// Settings absent from the file keep their defaults.
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	ret := Default()
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err = decoder.Decode(ret); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%v: failed to parse YAML: %w", URL, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), ret)
		if err != nil {
			return nil, fmt.Errorf("%v: failed to parse TOML: %w", URL, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: %v: unknown key %v", ErrInvalid, URL, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, ext)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", URL, err)
	}
	return ret, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if _, err := c.CapabilitySet(); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: negative concurrency %d", ErrInvalid, c.Concurrency)
	}
	switch c.Output.Format {
	case "", FormatText, FormatJSON, FormatYAML, FormatMsgpack:
	default:
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalid, c.Output.Format)
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: unsupported log encoding %q", ErrInvalid, c.Logging.Encoding)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

// CapabilitySet parses the configured capability names
func (c *Config) CapabilitySet() (capability.Set, error) {
	return capability.Parse(c.Capabilities...)
}

func (c *Config) level() (zapcore.Level, error) {
	if c.Logging.Level == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return level, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return level, nil
}

// Logger builds a production zap logger; verbose forces the debug level
func (c *Config) Logger(verbose bool) (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	if c.Logging.Encoding != "" {
		cfg.Encoding = c.Logging.Encoding
	}
	if cfg.Encoding == "console" {
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Options converts the settings into analyzer options
func (c *Config) Options(logger *zap.Logger) ([]analyzer.Option, error) {
	capabilities, err := c.CapabilitySet()
	if err != nil {
		return nil, err
	}
	return []analyzer.Option{
		analyzer.WithCapabilities(capabilities),
		analyzer.WithStrictInvariants(c.Strict),
		analyzer.WithConcurrency(c.Concurrency),
		analyzer.WithLogger(logger),
	}, nil
}
