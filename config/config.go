// Package config loads the htmltok settings from a TOML file.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/heathj/htmltok/logging"
	"github.com/heathj/htmltok/parser"
	"github.com/heathj/htmltok/render"
)

// DefaultExcerptLimit is the excerpt budget in visible characters.
const DefaultExcerptLimit = 280

// Config is the content of a config file.
type Config struct {
	Tokenizer TokenizerConfig `toml:"tokenizer"`
	Render    RenderConfig    `toml:"render"`
	Log       LogConfig       `toml:"log"`
}

type TokenizerConfig struct {
	// SelfClosing is one of "keep", "drop" or "normalize".
	SelfClosing string `toml:"self_closing"`
}

type RenderConfig struct {
	ExcerptLimit int    `toml:"excerpt_limit"`
	Ellipsis     string `toml:"ellipsis"`
	// BlockTags and IgnoredTags replace the default sets when not empty.
	BlockTags   []string `toml:"block_tags"`
	IgnoredTags []string `toml:"ignored_tags"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			SelfClosing: parser.KeepSelfClosing.String(),
		},
		Render: RenderConfig{
			ExcerptLimit: DefaultExcerptLimit,
			Ellipsis:     render.DefaultOptions().Ellipsis,
		},
		Log: LogConfig{
			Level:  logging.DefaultLogLevel.String(),
			Format: string(logging.DefaultLogFormat),
		},
	}
}

// DefaultPath returns ~/.htmltok/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locating home directory")
	}
	return filepath.Join(home, ".htmltok", "config.toml"), nil
}

// Load reads the config file at path on top of the defaults. A missing
// file is not an error. Unknown keys are.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if _, err := ParseSelfClosingMode(c.Tokenizer.SelfClosing); err != nil {
		return err
	}
	if c.Render.ExcerptLimit < 0 {
		return errors.Errorf("excerpt_limit must not be negative, got %d", c.Render.ExcerptLimit)
	}
	return nil
}

// ParseSelfClosingMode maps "keep", "drop" and "normalize" to a mode. The
// empty string means keep.
func ParseSelfClosingMode(s string) (parser.SelfClosingMode, error) {
	switch strings.ToLower(s) {
	case "", "keep":
		return parser.KeepSelfClosing, nil
	case "drop":
		return parser.DropSelfClosing, nil
	case "normalize":
		return parser.NormalizeSelfClosing, nil
	default:
		return parser.KeepSelfClosing, errors.Errorf("unknown self_closing mode %q, expected keep, drop or normalize", s)
	}
}

// ParserConfig returns the tokenizer settings. An invalid mode falls back to
// keep; call Validate first to reject it.
func (c *Config) ParserConfig() parser.Config {
	mode, _ := ParseSelfClosingMode(c.Tokenizer.SelfClosing)
	return parser.Config{SelfClosing: mode}
}

// RenderOptions returns the renderer settings.
func (c *Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Tokenizer = c.ParserConfig()
	opts.Ellipsis = c.Render.Ellipsis
	if len(c.Render.BlockTags) > 0 {
		opts.BlockTags = render.NewTagSet(lower(c.Render.BlockTags)...)
	}
	if len(c.Render.IgnoredTags) > 0 {
		opts.IgnoredTags = render.NewTagSet(lower(c.Render.IgnoredTags)...)
	}
	return opts
}

// LogOptions returns the logging settings.
func (c *Config) LogOptions() logging.LogOptions {
	opts := logging.LogOptions{}
	if c.Log.Level != "" {
		opts[logging.LevelOpt] = c.Log.Level
	}
	if c.Log.Format != "" {
		opts[logging.FormatOpt] = c.Log.Format
	}
	return opts
}

func lower(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
