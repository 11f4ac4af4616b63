// Package config loads the levelkit configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/levels"
)

const DefaultFile = "levelkit.yaml"

type Config struct {
	AssetsRoot   string       `yaml:"assets_root"`
	LevelIndex   string       `yaml:"level_index"`
	PreloadIndex string       `yaml:"preload_index"`
	LogLevel     string       `yaml:"log_level"`
	Render       RenderConfig `yaml:"render"`
	Watch        WatchConfig  `yaml:"watch"`
}

type RenderConfig struct {
	Width uint `yaml:"width"`
	Color bool `yaml:"color"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

func Default() Config {
	return Config{
		AssetsRoot:   "assets",
		LevelIndex:   levels.IndexPath,
		PreloadIndex: assets.PreloadIndexPath,
		LogLevel:     "info",
		Render:       RenderConfig{Width: 100},
		Watch:        WatchConfig{Debounce: levels.DefaultDebounce},
	}
}

// LoadSpec decodes the YAML file at filename over def, so fields missing
// from the file keep their value in def.
func LoadSpec[T any](fsys billy.Filesystem, filename string, def T) (T, error) {
	data, err := util.ReadFile(fsys, filename)
	if err != nil {
		return def, fmt.Errorf("config: load %s: %w", filename, err)
	}
	spec := def
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return def, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// Load reads filename from fsys. A missing file yields the defaults when
// optional is set.
func Load(fsys billy.Filesystem, filename string, optional bool) (Config, error) {
	cfg, err := LoadSpec(fsys, filename, Default())
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.AssetsRoot) == "" {
		return errors.New("assets_root must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
