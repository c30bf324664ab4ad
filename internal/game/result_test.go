package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetScoreChecker(t *testing.T) {
	tests := []struct {
		name     string
		p1       Player
		p2       Player
		expected Result
	}{
		{"higher score wins", Player{Score: 3}, Player{Score: 1}, Player1Wins},
		{"penalties count against", Player{Score: 3, Penalty: 3}, Player{Score: 1}, Player2Wins},
		{"equal net is a draw", Player{Score: 4, Penalty: 2}, Player{Score: 2}, Draw},
		{"fresh players draw", Player{}, Player{}, Draw},
		{"negative nets compare too", Player{Penalty: 1}, Player{Penalty: 2}, Player1Wins},
	}

	rc := NetScoreChecker{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Winner(rc, tt.p1, tt.p2))
			assert.Equal(t, tt.expected == Player1Wins, P1Wins(rc, tt.p1, tt.p2))
			assert.Equal(t, tt.expected == Player2Wins, P2Wins(rc, tt.p1, tt.p2))
			assert.Equal(t, tt.expected == Draw, IsDraw(rc, tt.p1, tt.p2))
		})
	}
}

func TestResultCheckerFunc(t *testing.T) {
	// Ignore penalties entirely
	scoreOnly := ResultCheckerFunc(func(a, b Player) bool { return a.Score > b.Score })

	p1 := Player{Score: 3, Penalty: 5}
	p2 := Player{Score: 2}
	assert.Equal(t, Player1Wins, Winner(scoreOnly, p1, p2))
	assert.Equal(t, Player2Wins, Winner(NetScoreChecker{}, p1, p2))
}

func TestWinnerChecksPlayerOneFirst(t *testing.T) {
	// A checker where everyone beats everyone still resolves to player 1
	always := ResultCheckerFunc(func(a, b Player) bool { return true })
	assert.Equal(t, Player1Wins, Winner(always, Player{}, Player{}))
	assert.False(t, IsDraw(always, Player{}, Player{}))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "player1", Player1Wins.String())
	assert.Equal(t, "player2", Player2Wins.String())
	assert.Equal(t, "draw", Draw.String())
}
