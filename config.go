package trellis

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFontSize is the font size used when neither the config nor the
// element's text properties set one.
const DefaultFontSize = 14.0

// Config is the tree configuration, usually read from a TOML file.
type Config struct {
	Debug         bool         `toml:"debug"`
	LogLevel      string       `toml:"log_level"`
	Window        WindowConfig `toml:"window"`
	Input         InputConfig  `toml:"input"`
	Font          FontConfig   `toml:"font"`
	ScreenshotDir string       `toml:"screenshot_dir"`
}

// WindowConfig sizes the root element and the ebiten window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// InputConfig tunes the ebiten input poller.
type InputConfig struct {
	// Second press within this many milliseconds is a double click.
	DoubleClickMS int `toml:"double_click_ms"`
	// Ticks a key must be held before it starts repeating.
	KeyRepeatDelayTicks int `toml:"key_repeat_delay_ticks"`
	// Ticks between repeats once repeating.
	KeyRepeatIntervalTicks int `toml:"key_repeat_interval_ticks"`
}

// FontConfig selects the default text properties of new elements.
type FontConfig struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "trellis",
			Width:  1280,
			Height: 720,
		},
		Input: InputConfig{
			DoubleClickMS:          400,
			KeyRepeatDelayTicks:    30,
			KeyRepeatIntervalTicks: 3,
		},
		Font: FontConfig{
			Family: FamilyGo,
			Size:   DefaultFontSize,
		},
		ScreenshotDir: "screenshots",
	}
}

// ParseConfig decodes TOML over the defaults. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the config file at path. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as TOML to path.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the value ranges of cfg.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("config: font size must be positive, got %v", c.Font.Size)
	}
	if c.Input.DoubleClickMS < 0 || c.Input.KeyRepeatDelayTicks < 0 || c.Input.KeyRepeatIntervalTicks < 1 {
		return fmt.Errorf("config: invalid input timing %+v", c.Input)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error"). An empty
// level is info.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log_level: %w", err)
	}
	return lvl, nil
}
