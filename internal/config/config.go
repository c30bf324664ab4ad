package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file read when none is named
const DefaultFile = "set.hcl"

// Config represents the complete configuration for a local game
type Config struct {
	Game GameSettings `hcl:"game,block"`
	UI   UISettings   `hcl:"ui,block"`
}

// GameSettings contains the session settings
type GameSettings struct {
	PlayerOne      string `hcl:"player_one,optional"`
	PlayerTwo      string `hcl:"player_two,optional"`
	Seed           int64  `hcl:"seed,optional"`
	RefillAttempts int    `hcl:"refill_attempts,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	Mode     string `hcl:"mode,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	Color    *bool  `hcl:"color,optional"`
}

// UI modes
const (
	ModeTUI   = "tui"
	ModePlain = "plain"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	color := true
	return &Config{
		Game: GameSettings{
			PlayerOne:      "Alice",
			PlayerTwo:      "Bob",
			Seed:           0,
			RefillAttempts: 1000,
		},
		UI: UISettings{
			Mode:     ModeTUI,
			LogLevel: "warn",
			LogFile:  "set.log",
			Color:    &color,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in values left out of the file
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Game.PlayerOne == "" {
		c.Game.PlayerOne = defaults.Game.PlayerOne
	}
	if c.Game.PlayerTwo == "" {
		c.Game.PlayerTwo = defaults.Game.PlayerTwo
	}
	if c.Game.RefillAttempts == 0 {
		c.Game.RefillAttempts = defaults.Game.RefillAttempts
	}

	if c.UI.Mode == "" {
		c.UI.Mode = defaults.UI.Mode
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.Color == nil {
		c.UI.Color = defaults.UI.Color
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.PlayerOne == "" || c.Game.PlayerTwo == "" {
		return fmt.Errorf("both player names are required")
	}

	if c.Game.PlayerOne == c.Game.PlayerTwo {
		return fmt.Errorf("player names must differ: %q", c.Game.PlayerOne)
	}

	if c.Game.RefillAttempts < 0 {
		return fmt.Errorf("refill attempts cannot be negative")
	}

	if c.UI.Mode != ModeTUI && c.UI.Mode != ModePlain {
		return fmt.Errorf("invalid UI mode: %s", c.UI.Mode)
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// GetLogLevel returns the parsed log level, falling back to warn
func (c *Config) GetLogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// ColorEnabled reports whether card colours should be rendered
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}
