package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	// WSPort is the port the websocket game server listens on.
	WSPort int `yaml:"wsPort"`
	// AuthPort is the port the auth/profile HTTP API listens on.
	AuthPort int `yaml:"authPort"`
}

type GameConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int `yaml:"tickRate"`
	// ResourceCheckTicks is the number of ticks between resource respawn checks.
	ResourceCheckTicks int `yaml:"resourceCheckTicks"`
}

type StorageConfig struct {
	// Backend selects the repository implementation: jsonfile, sqlite or postgres.
	Backend string `yaml:"backend"`
	// DataDir is the directory for the jsonfile backend.
	DataDir string `yaml:"dataDir"`
	// Path is the database file for the sqlite backend.
	Path string `yaml:"path"`
	// DSN is the connection string for the postgres backend.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			WSPort:   8888,
			AuthPort: 8889,
		},
		Game: GameConfig{
			TickRate:           20,
			ResourceCheckTicks: 20,
		},
		Storage: StorageConfig{
			Backend: "jsonfile",
			DataDir: "data",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file, applying defaults for missing fields.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.Game.TickRate)
	}
	if c.Game.ResourceCheckTicks <= 0 {
		return fmt.Errorf("resource check ticks must be positive, got %d", c.Game.ResourceCheckTicks)
	}
	switch c.Storage.Backend {
	case "jsonfile", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	return nil
}

// TickInterval returns the duration of one simulation tick.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}
