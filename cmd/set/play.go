package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"github.com/lox/setgame/internal/config"
	"github.com/lox/setgame/internal/display"
	"github.com/lox/setgame/internal/game"
	"github.com/lox/setgame/internal/randutil"
)

type PlayCmd struct {
	Config   string `short:"c" default:"set.hcl" help:"Path to HCL configuration file"`
	Player1  string `name:"player1" help:"Name of player 0 (overrides config)"`
	Player2  string `name:"player2" help:"Name of player 1 (overrides config)"`
	Seed     int64  `help:"Shuffle seed, 0 for random (overrides config)"`
	Plain    bool   `help:"Use the line-oriented console instead of the TUI"`
	NoColor  bool   `help:"Render cards without colour"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
}

// loadConfig reads the config file and applies command line overrides
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if c.Player1 != "" {
		cfg.Game.PlayerOne = c.Player1
	}
	if c.Player2 != "" {
		cfg.Game.PlayerTwo = c.Player2
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.Plain {
		cfg.UI.Mode = config.ModePlain
	}
	if c.NoColor {
		noColor := false
		cfg.UI.Color = &noColor
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file (overwritten each run)
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := log.New(logFile)
	logger.SetLevel(cfg.GetLogLevel())
	logger.SetReportTimestamp(true)

	seed := randutil.Resolve(cfg.Game.Seed)
	g := game.New(cfg.Game.PlayerOne, cfg.Game.PlayerTwo,
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithRefillAttempts(cfg.Game.RefillAttempts),
	)
	logger.Info("Starting game", "id", g.ID(), "seed", seed, "mode", cfg.UI.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.UI.Mode == config.ModePlain {
		console := display.NewConsole(os.Stdin, os.Stdout)
		session := display.NewSession(g, console, display.NewRenderer(os.Stdout, cfg.ColorEnabled()), logger)
		defer session.Close()
		return console.Run(ctx, session)
	}

	tui := display.NewTUIInterface(logger)
	session := display.NewSession(g, tui, display.NewRenderer(os.Stdout, cfg.ColorEnabled()), logger)
	defer session.Close()
	if err := tui.Run(ctx, session); err != nil {
		return err
	}

	if g.Finished() {
		players := g.Players()
		fmt.Printf("%s %d, %s %d: %s\n",
			players[0].Name, players[0].Net(), players[1].Name, players[1].Net(), g.Winner())
	}
	return nil
}
