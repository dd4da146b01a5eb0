package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	ModeServer   = "server"
	ModeTerminal = "terminal"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Mode          string        `json:"mode"`
	Size          int           `json:"size"`
	MaxSize       int           `json:"max_size"`
	TickInterval  time.Duration `json:"tick_interval"`
	Playing       bool          `json:"playing"`
	Seed          int64         `json:"seed"`
	UseParallel   bool          `json:"use_parallel"`
	Workers       int           `json:"workers"`
	UseMemoryPool bool          `json:"use_memory_pool"`
	LogLevel      string        `json:"log_level"`

	// server mode
	Addr           string        `json:"addr"`
	SnapshotPath   string        `json:"snapshot_path"`
	RequestTimeout time.Duration `json:"request_timeout"`

	// terminal mode
	AutoRestart         bool `json:"auto_restart"`
	StagnationThreshold int  `json:"stagnation_threshold"`
	MaxGenerations      int  `json:"max_generations"`
	InjectionCount      int  `json:"injection_count"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Mode:                ModeServer,
		Size:                50,
		MaxSize:             512,
		TickInterval:        500 * time.Millisecond,
		Playing:             true,
		UseParallel:         false,
		Workers:             4,
		UseMemoryPool:       true,
		LogLevel:            "info",
		Addr:                ":8080",
		SnapshotPath:        "world1.json",
		RequestTimeout:      200 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		InjectionCount:      3,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ApplyEnv overrides the listen address from PORT when it is set
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
}

// EngineWorkers is the number of row bands the engine should use
func (c Config) EngineWorkers() int {
	if !c.UseParallel {
		return 1
	}
	return c.Workers
}

// Validate checks the settings both modes rely on
func (c Config) Validate() error {
	switch {
	case c.Mode != ModeServer && c.Mode != ModeTerminal:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown mode %q", c.Mode)
	case c.Size <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] size must be positive, got %d", c.Size)
	case c.Size > c.MaxSize:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] size %d exceeds max_size %d", c.Size, c.MaxSize)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] tick_interval must be positive, got %s", c.TickInterval)
	case c.UseParallel && c.Workers <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must be positive, got %d", c.Workers)
	case c.Mode == ModeServer && c.RequestTimeout <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
