package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/setgame/internal/simulator"
)

type SimulateCmd struct {
	Games          int     `short:"n" default:"1000" help:"Number of games to simulate"`
	Workers        int     `short:"w" default:"0" help:"Concurrent workers (0 for one per CPU, up to 8)"`
	Seed           int64   `default:"0" help:"Base RNG seed (0 for random)"`
	MissRate       float64 `default:"0" help:"Chance that a declaration is wrong, in [0, 1)"`
	RefillAttempts int     `default:"1000" help:"Random redraws per refill before searching every trio"`
	Verbose        bool    `help:"Debug logging for every game"`
}

func (c *SimulateCmd) Run() error {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	sim := simulator.New(simulator.Config{
		Games:          c.Games,
		Workers:        c.Workers,
		Seed:           c.Seed,
		MissRate:       c.MissRate,
		RefillAttempts: c.RefillAttempts,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, sim.Seed())
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
