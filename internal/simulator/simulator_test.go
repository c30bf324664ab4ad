package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/setgame/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNew(t *testing.T) {
	sim := New(Config{Games: 10, Seed: 12345})

	assert.Equal(t, 10, sim.config.Games)
	assert.Equal(t, int64(12345), sim.Seed())
	assert.Positive(t, sim.config.Workers)
	assert.LessOrEqual(t, sim.config.Workers, 8)
	assert.Equal(t, game.DefaultRefillAttempts, sim.config.RefillAttempts)
	assert.NotNil(t, sim.config.Logger)

	assert.NotZero(t, New(Config{Games: 1}).Seed(), "zero seed is replaced")
}

func TestPlayGame(t *testing.T) {
	sim := New(Config{Games: 1, Seed: 1, Logger: quietLogger()})

	for seed := int64(1); seed <= 20; seed++ {
		result, err := sim.PlayGame(seed)
		require.NoError(t, err)

		assert.Equal(t, seed, result.Seed)
		assert.Zero(t, result.Penalties)
		assert.Positive(t, result.Sets)
		assert.LessOrEqual(t, result.Sets, 27)

		if result.Stalled {
			assert.Positive(t, result.RaggedRefills)
			assert.Equal(t, result.Sets, result.Refills)
		} else {
			// Every accepted declaration but the last is followed by a refill
			assert.Equal(t, result.Sets-1, result.Refills)
		}
		assert.Equal(t, 81-3*result.Refills, result.CardsLeft)
		assert.GreaterOrEqual(t, result.RefillAttempts, result.Refills-result.RaggedRefills)
	}
}

func TestPlayGameDeterministic(t *testing.T) {
	sim := New(Config{Games: 1, Seed: 1, MissRate: 0.3, Logger: quietLogger()})

	a, err := sim.PlayGame(99)
	require.NoError(t, err)
	b, err := sim.PlayGame(99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlayGameWithMisses(t *testing.T) {
	clean := New(Config{Games: 1, Seed: 1, Logger: quietLogger()})
	sloppy := New(Config{Games: 1, Seed: 1, MissRate: 0.5, Logger: quietLogger()})

	penalties := 0
	for seed := int64(1); seed <= 10; seed++ {
		result, err := sloppy.PlayGame(seed)
		require.NoError(t, err)
		penalties += result.Penalties

		// Misses never touch the field, so the same SETs are found
		base, err := clean.PlayGame(seed)
		require.NoError(t, err)
		assert.Equal(t, base.Sets, result.Sets)
	}
	assert.Positive(t, penalties)
}

func TestPlayGameExhaustiveRefills(t *testing.T) {
	sim := New(Config{Games: 1, Seed: 1, RefillAttempts: 1, Logger: quietLogger()})

	exhaustive := 0
	for seed := int64(1); seed <= 10; seed++ {
		result, err := sim.PlayGame(seed)
		require.NoError(t, err)
		exhaustive += result.ExhaustiveRefills
		assert.LessOrEqual(t, result.ExhaustiveRefills, result.Refills)
	}
	assert.Positive(t, exhaustive, "one random draw is rarely enough for every refill")
}

func TestRun(t *testing.T) {
	config := Config{Games: 40, Workers: 4, Seed: 777, MissRate: 0.1, Logger: quietLogger()}

	stats, err := New(config).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, stats.Validate())

	assert.Equal(t, 40, stats.Games)
	assert.Equal(t, 40, stats.Player1Wins+stats.Player2Wins+stats.Draws)
	assert.Greater(t, stats.Mean(), 15.0)
	assert.LessOrEqual(t, stats.Mean(), 27.0)

	// Same seed, different worker count: same games
	config.Workers = 3
	again, err := New(config).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.SumSets, again.SumSets)
	assert.Equal(t, stats.Penalties, again.Penalties)
	assert.Equal(t, stats.Player1Wins, again.Player1Wins)
	assert.Equal(t, stats.Stalls, again.Stalls)
	assert.Equal(t, stats.RefillAttempts, again.RefillAttempts)
	assert.ElementsMatch(t, stats.Values, again.Values)
}

func TestRunErrors(t *testing.T) {
	t.Run("no games", func(t *testing.T) {
		_, err := New(Config{Seed: 1}).Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("miss rate out of range", func(t *testing.T) {
		_, err := New(Config{Games: 1, Seed: 1, MissRate: 1}).Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(Config{Games: 5, Seed: 1, Logger: quietLogger()}).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWrongThird(t *testing.T) {
	hint := [3]game.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 1, Col: 1}}

	seen := make(map[game.Pos]bool)
	for n := 0; n < game.Rows*game.Cols-3; n++ {
		pos := wrongThird(hint, n)
		assert.NotContains(t, hint, pos)
		seen[pos] = true
	}
	assert.Len(t, seen, game.Rows*game.Cols-3)
	assert.Equal(t, game.Pos{Row: 0, Col: 1}, wrongThird(hint, 0))
}

func TestPrintSummary(t *testing.T) {
	stats, err := New(Config{Games: 4, Workers: 2, Seed: 5, Logger: quietLogger()}).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats, 5)

	out := buf.String()
	assert.Contains(t, out, "=== SIMULATION RESULTS (seed 5) ===")
	assert.Contains(t, out, "Games played: 4")
	assert.Contains(t, out, "Ragged refills:")
}
