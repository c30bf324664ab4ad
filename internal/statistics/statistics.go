package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/setgame/internal/game"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed              int64       // RNG seed for this game (for replay)
	Result            game.Result // Final ranking
	Sets              int         // Accepted declarations
	Penalties         int         // Rejected declarations
	Refills           int         // Refills that dealt cards
	RefillAttempts    int         // Trios placed across all refills
	MaxRefillAttempts int         // Most trios placed in one refill
	ExhaustiveRefills int         // Refills that fell back to searching every trio
	RaggedRefills     int         // Refills that left slots empty
	Stalled           bool        // Ended with no SET on the field
	CardsLeft         int         // Cards not used when play stopped
}

// Statistics aggregates simulated games
type Statistics struct {
	Games   int
	SumSets int
	SumSet2 int   // Sum of squares for variance calculation
	Values  []int // Sets per game, for median/percentile calculation

	// Results
	Player1Wins int
	Player2Wins int
	Draws       int
	Stalls      int

	// Declarations
	Penalties int

	// Refill analytics
	Refills           int
	RefillAttempts    int
	MaxRefillAttempts int
	ExhaustiveRefills int
	RaggedRefills     int

	SumCardsLeft int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.SumSets += result.Sets
	s.SumSet2 += result.Sets * result.Sets
	s.Values = append(s.Values, result.Sets)

	switch result.Result {
	case game.Player1Wins:
		s.Player1Wins++
	case game.Player2Wins:
		s.Player2Wins++
	default:
		s.Draws++
	}
	if result.Stalled {
		s.Stalls++
	}

	s.Penalties += result.Penalties
	s.Refills += result.Refills
	s.RefillAttempts += result.RefillAttempts
	s.MaxRefillAttempts = max(s.MaxRefillAttempts, result.MaxRefillAttempts)
	s.ExhaustiveRefills += result.ExhaustiveRefills
	s.RaggedRefills += result.RaggedRefills
	s.SumCardsLeft += result.CardsLeft
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.SumSets += other.SumSets
	s.SumSet2 += other.SumSet2
	s.Values = append(s.Values, other.Values...)

	s.Player1Wins += other.Player1Wins
	s.Player2Wins += other.Player2Wins
	s.Draws += other.Draws
	s.Stalls += other.Stalls

	s.Penalties += other.Penalties
	s.Refills += other.Refills
	s.RefillAttempts += other.RefillAttempts
	s.MaxRefillAttempts = max(s.MaxRefillAttempts, other.MaxRefillAttempts)
	s.ExhaustiveRefills += other.ExhaustiveRefills
	s.RaggedRefills += other.RaggedRefills
	s.SumCardsLeft += other.SumCardsLeft
}

// Mean returns the average number of SETs found per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumSets) / float64(s.Games)
}

// Variance returns the sample variance of SETs per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (float64(s.SumSet2) - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of SETs per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median number of SETs per game
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

func (s *Statistics) sorted() []int {
	sorted := make([]int, len(s.Values))
	copy(sorted, s.Values)
	sort.Ints(sorted)
	return sorted
}

// MeanRefillAttempts returns the average number of trios placed per refill
func (s *Statistics) MeanRefillAttempts() float64 {
	if s.Refills == 0 {
		return 0
	}
	return float64(s.RefillAttempts) / float64(s.Refills)
}

// MeanCardsLeft returns the average number of cards not used per game
func (s *Statistics) MeanCardsLeft() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumCardsLeft) / float64(s.Games)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if results := s.Player1Wins + s.Player2Wins + s.Draws; results != s.Games {
		return fmt.Errorf("results total (%d) does not match games count (%d)", results, s.Games)
	}

	if s.Stalls > s.Games {
		return fmt.Errorf("stalls (%d) exceed games (%d)", s.Stalls, s.Games)
	}

	if s.RefillAttempts < s.Refills-s.RaggedRefills {
		return fmt.Errorf("refill attempts (%d) fewer than completed refills (%d)",
			s.RefillAttempts, s.Refills-s.RaggedRefills)
	}

	// 81 cards allow at most 27 SETs per game
	if s.SumSets > 27*s.Games {
		return fmt.Errorf("SETs found (%d) exceed the deck's capacity for %d games", s.SumSets, s.Games)
	}

	return nil
}
