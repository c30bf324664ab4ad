package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/setgame/internal/card"
	"github.com/lox/setgame/internal/game"
	"github.com/lox/setgame/internal/randutil"
	"github.com/lox/setgame/internal/statistics"
)

// maxTurns caps declarations per game; a game of 27 SETs with a generous
// miss rate stays far below it
const maxTurns = 10000

// Config holds configuration for running simulations
type Config struct {
	Games          int
	Workers        int     // defaults to the CPU count, capped at 8
	Seed           int64   // game i is dealt from Seed+i; zero picks a random seed
	MissRate       float64 // chance that a declaration names a wrong triple
	RefillAttempts int     // defaults to game.DefaultRefillAttempts
	Logger         *log.Logger
}

// Simulator plays games of SET between two players who always find a SET
// on the field, apart from deliberate misses
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = min(runtime.NumCPU(), 8)
	}
	if config.RefillAttempts <= 0 {
		config.RefillAttempts = game.DefaultRefillAttempts
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Seed = randutil.Resolve(config.Seed)
	return &Simulator{config: config}
}

// Seed returns the base seed, useful for replaying a run that asked for a
// random one
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run plays every game across the workers and returns the aggregated results
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}
	if s.config.MissRate < 0 || s.config.MissRate >= 1 {
		return nil, fmt.Errorf("miss rate must be in [0, 1): %v", s.config.MissRate)
	}

	workers := min(s.config.Workers, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.Statistics, workers)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := &statistics.Statistics{}
			for i := w; i < s.config.Games; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := s.PlayGame(s.config.Seed + int64(i))
				if err != nil {
					return fmt.Errorf("game %d: %w", i+1, err)
				}
				local.Add(result)
			}
			results <- local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	stats := &statistics.Statistics{}
	for local := range results {
		stats.Merge(local)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// refillCounter tallies refill events for one game
type refillCounter struct {
	result *statistics.GameResult
}

func (r *refillCounter) OnEvent(event game.GameEvent) {
	e, ok := event.(game.FieldRefilledEvent)
	if !ok {
		return
	}
	r.result.Refills++
	r.result.RefillAttempts += e.Refill.Attempts
	r.result.MaxRefillAttempts = max(r.result.MaxRefillAttempts, e.Refill.Attempts)
	if e.Refill.Exhaustive {
		r.result.ExhaustiveRefills++
	}
	if e.Refill.Ragged {
		r.result.RaggedRefills++
	}
}

// PlayGame plays one game to the end, or until a ragged ending leaves no
// SET on the field
func (s *Simulator) PlayGame(seed int64) (statistics.GameResult, error) {
	result := statistics.GameResult{Seed: seed}

	bus := game.NewEventBus()
	bus.Subscribe(&refillCounter{result: &result})

	g := game.New("Player 1", "Player 2",
		game.WithSeed(seed),
		game.WithLogger(s.config.Logger),
		game.WithEventBus(bus),
		game.WithRefillAttempts(s.config.RefillAttempts),
		game.WithID(fmt.Sprintf("sim-%d", seed)),
	)

	// Players' choices come from their own stream so the deal for a seed
	// does not depend on the miss rate
	rng := randutil.New(^seed)

	for turn := 0; !g.Finished(); turn++ {
		if turn >= maxTurns {
			return result, fmt.Errorf("seed %d: no result after %d declarations", seed, maxTurns)
		}

		hint, ok := g.Hint()
		if !ok {
			result.Stalled = true
			break
		}

		player := rng.IntN(2)
		positions := hint
		if rng.Float64() < s.config.MissRate {
			positions[2] = wrongThird(hint, rng.IntN(game.Rows*game.Cols-3))
		}

		outcome, err := g.Declare(player, positions[0], positions[1], positions[2])
		if err != nil {
			return result, fmt.Errorf("seed %d: %w", seed, err)
		}
		if outcome.Accepted {
			result.Sets++
		} else {
			result.Penalties++
		}
	}

	result.Result = g.Winner()
	result.CardsLeft = card.DeckSize - g.Snapshot().UsedCards
	s.config.Logger.Debug("Simulated game",
		"seed", seed,
		"result", result.Result,
		"sets", result.Sets,
		"penalties", result.Penalties,
		"stalled", result.Stalled)
	return result, nil
}

// wrongThird returns the n-th position outside the hinted SET. Two cards
// determine the third card of a SET, so any other slot makes the triple
// invalid.
func wrongThird(hint [3]game.Pos, n int) game.Pos {
	for idx := 0; idx < game.Rows*game.Cols; idx++ {
		pos := game.PosFromIndex(idx)
		if pos == hint[0] || pos == hint[1] || pos == hint[2] {
			continue
		}
		if n == 0 {
			return pos
		}
		n--
	}
	return hint[0]
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, seed int64) {
	low, high := stats.ConfidenceInterval95()
	pct := func(n int) float64 { return float64(n) / float64(stats.Games) * 100 }

	fmt.Fprintf(w, "\n=== SIMULATION RESULTS (seed %d) ===\n", seed)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)

	fmt.Fprintf(w, "\n=== SETS PER GAME ===\n")
	fmt.Fprintf(w, "Mean: %.3f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.3f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.3f, %.3f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Penalties: %d (%.2f per game)\n", stats.Penalties, float64(stats.Penalties)/float64(stats.Games))
	fmt.Fprintf(w, "Cards left at the end: %.2f per game\n", stats.MeanCardsLeft())

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Player 1 wins: %d (%.1f%%)\n", stats.Player1Wins, pct(stats.Player1Wins))
	fmt.Fprintf(w, "Player 2 wins: %d (%.1f%%)\n", stats.Player2Wins, pct(stats.Player2Wins))
	fmt.Fprintf(w, "Draws: %d (%.1f%%)\n", stats.Draws, pct(stats.Draws))
	fmt.Fprintf(w, "Stalled (no SET after the supply ran out): %d (%.1f%%)\n", stats.Stalls, pct(stats.Stalls))

	fmt.Fprintf(w, "\n=== REFILLS ===\n")
	fmt.Fprintf(w, "Refills: %d, trios placed per refill: %.3f (max %d)\n",
		stats.Refills, stats.MeanRefillAttempts(), stats.MaxRefillAttempts)
	fmt.Fprintf(w, "Exhaustive searches: %d\n", stats.ExhaustiveRefills)
	fmt.Fprintf(w, "Ragged refills: %d\n", stats.RaggedRefills)
}
