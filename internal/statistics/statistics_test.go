package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/setgame/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.MeanRefillAttempts())
	assert.Zero(t, stats.MeanCardsLeft())
	assert.Error(t, stats.Validate())
}

func TestStatistics_SingleGame(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{
		Seed:              12345,
		Result:            game.Player2Wins,
		Sets:              24,
		Penalties:         3,
		Refills:           23,
		RefillAttempts:    30,
		MaxRefillAttempts: 4,
		CardsLeft:         9,
	})

	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 24.0, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 24.0, stats.Median())
	assert.Equal(t, 1, stats.Player2Wins)
	assert.Equal(t, 3, stats.Penalties)
	assert.InDelta(t, 30.0/23.0, stats.MeanRefillAttempts(), 1e-9)
	assert.Equal(t, 9.0, stats.MeanCardsLeft())
	assert.NoError(t, stats.Validate())
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := &Statistics{}

	results := []GameResult{
		{Sets: 20, Result: game.Player1Wins, Refills: 19, RefillAttempts: 25, MaxRefillAttempts: 3},
		{Sets: 22, Result: game.Player2Wins, Refills: 21, RefillAttempts: 21, MaxRefillAttempts: 1},
		{Sets: 24, Result: game.Draw, Refills: 23, RefillAttempts: 40, MaxRefillAttempts: 9, ExhaustiveRefills: 1},
		{Sets: 21, Result: game.Player1Wins, Refills: 20, RefillAttempts: 19, RaggedRefills: 1, Stalled: true},
		{Sets: 23, Result: game.Player1Wins, Refills: 22, RefillAttempts: 22},
	}
	for _, r := range results {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 5, stats.Games)
	assert.Equal(t, 22.0, stats.Mean())
	assert.Equal(t, 22.0, stats.Median())
	// Sets are 20..24: squared deviations sum to 10
	assert.InDelta(t, 2.5, stats.Variance(), 1e-9)
	assert.Equal(t, 20.0, stats.Percentile(0))
	assert.Equal(t, 24.0, stats.Percentile(1))
	assert.Equal(t, 21.0, stats.Percentile(0.25))

	assert.Equal(t, 3, stats.Player1Wins)
	assert.Equal(t, 1, stats.Player2Wins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 1, stats.Stalls)
	assert.Equal(t, 9, stats.MaxRefillAttempts)
	assert.Equal(t, 1, stats.ExhaustiveRefills)
	assert.Equal(t, 1, stats.RaggedRefills)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
}

func TestStatistics_EvenMedian(t *testing.T) {
	stats := &Statistics{}
	for _, sets := range []int{25, 20, 21, 24} {
		stats.Add(GameResult{Sets: sets})
	}
	assert.Equal(t, 22.5, stats.Median())
}

func TestStatistics_Merge(t *testing.T) {
	all := &Statistics{}
	a := &Statistics{}
	b := &Statistics{}

	results := []GameResult{
		{Sets: 20, Result: game.Player1Wins, Penalties: 2, Refills: 19, RefillAttempts: 25, MaxRefillAttempts: 3, CardsLeft: 12},
		{Sets: 22, Result: game.Draw, Refills: 21, RefillAttempts: 21, MaxRefillAttempts: 7, CardsLeft: 9},
		{Sets: 24, Result: game.Player2Wins, Penalties: 1, Refills: 23, RefillAttempts: 40, ExhaustiveRefills: 1, CardsLeft: 6},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	assert.Equal(t, all.Games, a.Games)
	assert.Equal(t, all.SumSets, a.SumSets)
	assert.Equal(t, all.SumSet2, a.SumSet2)
	assert.ElementsMatch(t, all.Values, a.Values)
	assert.Equal(t, all.Penalties, a.Penalties)
	assert.Equal(t, all.MaxRefillAttempts, a.MaxRefillAttempts)
	assert.Equal(t, all.MeanCardsLeft(), a.MeanCardsLeft())
	assert.Equal(t, all.Median(), a.Median())
	assert.NoError(t, a.Validate())
}

func TestStatistics_Validate(t *testing.T) {
	valid := func() *Statistics {
		s := &Statistics{}
		s.Add(GameResult{Sets: 23, Result: game.Player1Wins, Refills: 22, RefillAttempts: 22})
		return s
	}

	tests := []struct {
		name    string
		corrupt func(*Statistics)
		wantErr string
	}{
		{"values mismatch", func(s *Statistics) { s.Values = nil }, "values array length"},
		{"results mismatch", func(s *Statistics) { s.Draws++ }, "results total"},
		{"too many stalls", func(s *Statistics) { s.Stalls = 2 }, "stalls"},
		{"too few attempts", func(s *Statistics) { s.RefillAttempts = 10 }, "refill attempts"},
		{"too many SETs", func(s *Statistics) { s.SumSets = 28 }, "capacity"},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.corrupt(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
