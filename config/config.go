package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "JFRAG_CONFIG"

// Config holds the settings shared by the jfrag commands
type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

// ServerConfig holds web UI settings
type ServerConfig struct {
	Addr    string `toml:"addr"`
	History int    `toml:"history"`
}

// LogConfig holds commonlog settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// OutputConfig holds CLI report settings
type OutputConfig struct {
	Format string `toml:"format"`
	Color  *bool  `toml:"color"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads the file at path, or the file named by JFRAG_CONFIG, or the
// first default location that exists. Without any file it returns Default.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if env := os.Getenv(EnvPath); env != "" {
		return Load(env)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./jfrag.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "jfrag", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.History == 0 {
		c.Server.History = 100
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Color == nil {
		color := true
		c.Output.Color = &color
	}
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output format %q (expected text, json or yaml)", c.Output.Format)
	}
	if c.Server.History < 0 {
		return errors.New("server history must not be negative")
	}
	if c.Log.Verbosity < 0 {
		return errors.New("log verbosity must not be negative")
	}
	return nil
}

// LogPath returns the log file, or nil to log to stderr.
func (c *Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	return &path
}
