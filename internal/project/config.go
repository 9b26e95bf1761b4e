package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrBadConfig is wrapped by every invalid sniper.toml.
var ErrBadConfig = errors.New("invalid sniper.toml")

// Config is the content of sniper.toml. Zero values mean "not set".
type Config struct {
	Path string `toml:"-"`

	Format struct {
		IndentWidth int   `toml:"indent_width"`
		UseTabs     *bool `toml:"use_tabs"`
	} `toml:"format"`

	Trace struct {
		Level  string `toml:"level"`
		Output string `toml:"output"`
	} `toml:"trace"`

	Run struct {
		Jobs    int      `toml:"jobs"`
		Include []string `toml:"include"`
		Exclude []string `toml:"exclude"`
	} `toml:"run"`
}

// LoadConfig parses the sniper.toml at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%s: %w: unknown key %s", path, ErrBadConfig, keys[0])
	}
	if cfg.Format.IndentWidth < 0 {
		return nil, fmt.Errorf("%s: %w: [format].indent_width must not be negative", path, ErrBadConfig)
	}
	if cfg.Run.Jobs < 0 {
		return nil, fmt.Errorf("%s: %w: [run].jobs must not be negative", path, ErrBadConfig)
	}
	cfg.Trace.Level = strings.TrimSpace(cfg.Trace.Level)
	cfg.Trace.Output = strings.TrimSpace(cfg.Trace.Output)
	cfg.Path = path
	return &cfg, nil
}

// Discover finds and loads sniper.toml above startDir. A missing file yields
// an empty config.
func Discover(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Config{}, nil
	}
	return LoadConfig(path)
}
