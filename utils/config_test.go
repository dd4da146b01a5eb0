package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"size": 20, "mode": "terminal", "tick_interval": 100000000, "use_parallel": true}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, config.Size)
	assert.Equal(t, ModeTerminal, config.Mode)
	assert.Equal(t, 100*time.Millisecond, config.TickInterval)
	assert.Equal(t, 4, config.EngineWorkers())
	// untouched fields keep their defaults
	assert.True(t, config.Playing)
	assert.Equal(t, "world1.json", config.SnapshotPath)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	config, err := LoadConfig(writeConfig(t, `{"size": `))
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig().Size, config.Size)
}

func TestApplyEnv(t *testing.T) {
	config := DefaultConfig()
	t.Setenv("PORT", "9000")
	config.ApplyEnv()
	assert.Equal(t, ":9000", config.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "gui" }},
		{"size", func(c *Config) { c.Size = 0 }},
		{"size above max", func(c *Config) { c.Size = c.MaxSize + 1 }},
		{"max size", func(c *Config) { c.MaxSize = 0 }},
		{"tick", func(c *Config) { c.TickInterval = 0 }},
		{"workers", func(c *Config) { c.UseParallel, c.Workers = true, 0 }},
		{"timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			assert.True(t, errors.Is(config.Validate(), ErrInvalidConfig))
		})
	}
}

func TestEngineWorkersSequentialByDefault(t *testing.T) {
	assert.Equal(t, 1, DefaultConfig().EngineWorkers())
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, [4]int{0, 60, 30, 10}, 500*time.Millisecond)
	assert.Equal(t, 1, s.TotalGenerations)
	assert.InDelta(t, 2.0, s.GenerationsPerSecond, 1e-9)
	assert.InDelta(t, 100.0, s.AveragePopulation, 1e-9)
	assert.Equal(t, 1, s.Leader())

	s.Update(2, [4]int{0, 60, 140, 0}, 0)
	assert.InDelta(t, 110.0, s.AveragePopulation, 1e-9)
	assert.InDelta(t, 2.0, s.GenerationsPerSecond, 1e-9)
	assert.InDelta(t, 60.0, s.ColorAverages[1], 1e-9)
	assert.InDelta(t, 41.0, s.ColorAverages[2], 1e-9)
	assert.Equal(t, 1, s.Leader())
}

func TestStatsLeaderNoPlayers(t *testing.T) {
	s := NewStats()
	s.Update(1, [4]int{5, 0, 0, 0}, time.Millisecond)
	assert.Equal(t, 0, s.Leader())
}
