package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Alice", cfg.Game.PlayerOne)
	assert.Equal(t, "Bob", cfg.Game.PlayerTwo)
	assert.Zero(t, cfg.Game.Seed)
	assert.Equal(t, 1000, cfg.Game.RefillAttempts)
	assert.Equal(t, ModeTUI, cfg.UI.Mode)
	assert.Equal(t, log.WarnLevel, cfg.GetLogLevel())
	assert.True(t, cfg.ColorEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
game {
  player_one      = "Ann"
  player_two      = "Ben"
  seed            = 1234
  refill_attempts = 50
}

ui {
  mode      = "plain"
  log_level = "debug"
  log_file  = "/tmp/game.log"
  color     = false
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, GameSettings{PlayerOne: "Ann", PlayerTwo: "Ben", Seed: 1234, RefillAttempts: 50}, cfg.Game)
	assert.Equal(t, ModePlain, cfg.UI.Mode)
	assert.Equal(t, log.DebugLevel, cfg.GetLogLevel())
	assert.Equal(t, "/tmp/game.log", cfg.UI.LogFile)
	assert.False(t, cfg.ColorEnabled())
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  seed = 7
}

ui {
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, defaults.Game.PlayerOne, cfg.Game.PlayerOne)
	assert.Equal(t, defaults.Game.PlayerTwo, cfg.Game.PlayerTwo)
	assert.Equal(t, defaults.Game.RefillAttempts, cfg.Game.RefillAttempts)
	assert.Equal(t, defaults.UI, cfg.UI)
	assert.True(t, cfg.ColorEnabled())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `game {`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `
game {
  seed = "soon"
}
ui {}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode HCL")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `
game {
  stakes = 10
}
ui {}
`))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"missing player", func(c *Config) { c.Game.PlayerTwo = "" }, "both player names"},
		{"same names", func(c *Config) { c.Game.PlayerTwo = c.Game.PlayerOne }, "must differ"},
		{"negative refill attempts", func(c *Config) { c.Game.RefillAttempts = -1 }, "refill attempts"},
		{"zero refill attempts", func(c *Config) { c.Game.RefillAttempts = 0 }, ""},
		{"bad mode", func(c *Config) { c.UI.Mode = "gui" }, "invalid UI mode"},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
