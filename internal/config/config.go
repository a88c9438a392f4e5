// Package config loads lumen configuration from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/lumen/config.toml (falling back to
// ~/.config/lumen/config.toml) and every field is optional; missing fields
// keep their defaults, a missing file yields the full default config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/pipeline"
)

// appName is the directory name used under config/cache homes.
const appName = "lumen"

// Config is the top-level configuration file structure.
type Config struct {
	Viewer Viewer `toml:"viewer"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Viewer configures the interactive viewer and layout defaults.
type Viewer struct {
	Theme          string  `toml:"theme"`
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	ChargeStrength float64 `toml:"charge_strength"`
	LinkDistance   float64 `toml:"link_distance"`
}

// Cache selects the cache backend.
type Cache struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `toml:"redis_addr"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`

	// MongoURI enables the MongoDB workspace store when set.
	// Empty means workspaces are stored on the local filesystem.
	MongoURI string `toml:"mongo_uri"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Viewer: Viewer{
			Theme:          pipeline.DefaultTheme,
			Width:          pipeline.DefaultWidth,
			Height:         pipeline.DefaultHeight,
			ChargeStrength: force.DefaultChargeStrength,
			LinkDistance:   force.DefaultLinkDistance,
		},
		Cache: Cache{
			Backend: "file",
		},
		Server: Server{
			Addr: ":8390",
		},
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at the default path. A missing file is not an
// error; it returns Default().
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file. Fields absent from the file
// keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !pipeline.ValidThemes[c.Viewer.Theme] {
		return fmt.Errorf("unknown viewer theme %q", c.Viewer.Theme)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q (must be 'file', 'redis', or 'none')", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend 'redis' requires redis_addr")
	}
	if c.Viewer.Width < 0 || c.Viewer.Height < 0 {
		return fmt.Errorf("viewer dimensions must be non-negative")
	}
	return nil
}
