// Package config loads climpviz settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/climpviz/internal/canvas"
	"github.com/olivier-w/climpviz/internal/logger"
	"github.com/olivier-w/climpviz/internal/playback"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

// Config holds every user setting.
type Config struct {
	// FPS is the live frame rate.
	FPS int `toml:"fps"`

	// Analyser settings.
	FFTSize     int     `toml:"fft_size"`
	Smoothing   float64 `toml:"smoothing"`
	MinDecibels float64 `toml:"min_decibels"`
	MaxDecibels float64 `toml:"max_decibels"`

	// Style is the visualization selected at startup.
	Style string `toml:"style"`

	// Colors as #rrggbb.
	Accent string `toml:"accent"`
	Disc   string `toml:"disc"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:         60,
		FFTSize:     playback.DefaultFFTSize,
		Smoothing:   playback.DefaultSmoothing,
		MinDecibels: playback.DefaultMinDecibels,
		MaxDecibels: playback.DefaultMaxDecibels,
		Style:       visualizer.Waveform.String(),
		Accent:      "#1DB954",
		Disc:        "#333333",
		LogLevel:    "info",
	}
}

// DefaultPath is $CLIMPVIZ_CONFIG, or climpviz/config.toml under the user
// config directory.
func DefaultPath() string {
	if p := os.Getenv("CLIMPVIZ_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "climpviz", "config.toml")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CLIMPVIZ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CLIMPVIZ_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("CLIMPVIZ_STYLE"); v != "" {
		c.Style = v
	}
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps %d must be in [1, 240]", c.FPS)
	}
	if err := c.Analyser().Validate(); err != nil {
		return err
	}
	if _, err := visualizer.ParseStyle(c.Style); err != nil {
		return err
	}
	for name, hex := range map[string]string{"accent": c.Accent, "disc": c.Disc} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%s color %q: %w", name, hex, err)
		}
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Analyser returns the analyser settings.
func (c Config) Analyser() playback.AnalyserConfig {
	return playback.AnalyserConfig{
		FFTSize:     c.FFTSize,
		Smoothing:   c.Smoothing,
		MinDecibels: c.MinDecibels,
		MaxDecibels: c.MaxDecibels,
	}
}

// StartStyle returns the parsed startup style. Call after Validate.
func (c Config) StartStyle() visualizer.Style {
	s, _ := visualizer.ParseStyle(c.Style)
	return s
}

// Palette returns the configured colors.
func (c Config) Palette() visualizer.Palette {
	return visualizer.Palette{
		Accent: canvas.Solid(c.Accent),
		Disc:   canvas.Solid(c.Disc),
	}
}

// Logger returns logger settings. Output is left for the caller to open.
func (c Config) Logger() logger.Config {
	lc := logger.DefaultConfig()
	if l, ok := logger.ParseLevel(c.LogLevel); ok {
		lc.Level = l
	}
	return lc
}
