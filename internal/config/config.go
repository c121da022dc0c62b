package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "GERGUI_"

// Config holds the settings shared by every command.
type Config struct {
	Screen          ScreenConfig `yaml:"screen"`
	AssetsDir       string       `yaml:"assets_dir"`
	CooldownSeconds float32      `yaml:"cooldown_seconds"`
	Log             LogConfig    `yaml:"log"`
	Audio           AudioConfig  `yaml:"audio"`
	Feed            PortConfig   `yaml:"feed"`
	Serve           PortConfig   `yaml:"serve"`
	CacheTTLMillis  int          `yaml:"cache_ttl_ms"`
}

type ScreenConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type PortConfig struct {
	Port int `yaml:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Screen:          ScreenConfig{Width: 1920, Height: 1080},
		AssetsDir:       "assets",
		CooldownSeconds: 0.5,
		Log:             LogConfig{Level: "info", Format: "text"},
		Audio:           AudioConfig{Enabled: true},
		Feed:            PortConfig{Port: 8090},
		Serve:           PortConfig{Port: 8080},
		CacheTTLMillis:  500,
	}
}

// Load builds the configuration: defaults, then the yaml file at path (skipped
// when path is empty), then .env, then GERGUI_* variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float32{
		"SCREEN_WIDTH":     &c.Screen.Width,
		"SCREEN_HEIGHT":    &c.Screen.Height,
		"COOLDOWN_SECONDS": &c.CooldownSeconds,
	}
	for key, dst := range floats {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = float32(f)
		}
	}

	strs := map[string]*string{
		"ASSETS_DIR": &c.AssetsDir,
		"LOG_LEVEL":  &c.Log.Level,
		"LOG_FORMAT": &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "AUDIO"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sAUDIO: %w", EnvPrefix, err)
		}
		c.Audio.Enabled = b
	}
	return nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %gx%g", c.Screen.Width, c.Screen.Height)
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("cooldown_seconds must not be negative, got %g", c.CooldownSeconds)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
