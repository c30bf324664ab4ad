package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/setgame/internal/game"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"", Command{Kind: None}},
		{"   ", Command{Kind: None}},
		{"field", Command{Kind: Field}},
		{"F", Command{Kind: Field}},
		{"players", Command{Kind: Players}},
		{"player", Command{Kind: Players}},
		{"hint", Command{Kind: Hint}},
		{"help", Command{Kind: Help}},
		{"?", Command{Kind: Help}},
		{"quit", Command{Kind: Quit}},
		{"exit", Command{Kind: Quit}},
		{"Q", Command{Kind: Quit}},
		{"field please", Command{Kind: Field}},
		{
			"set 0 0 0 1 1 2 3",
			Command{Kind: Declare, Player: 0, Positions: [3]game.Pos{{0, 0}, {1, 1}, {2, 3}}},
		},
		{
			"  SETCALL 1  2 0  2 1  2 2 ",
			Command{Kind: Declare, Player: 1, Positions: [3]game.Pos{{2, 0}, {2, 1}, {2, 2}}},
		},
		{
			// Out of range values are left for the game to reject
			"set 5 9 9 0 0 0 1",
			Command{Kind: Declare, Player: 5, Positions: [3]game.Pos{{9, 9}, {0, 0}, {0, 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"raise 10", ErrUnknownCommand},
		{"sets 0 0 0 0 1 0 2", ErrUnknownCommand},
		{"set", ErrUsage},
		{"set 0 0 0 0 1 0", ErrUsage},
		{"set 0 0 0 0 1 0 2 3", ErrUsage},
		{"set 0 a 0 0 1 0 2", ErrUsage},
		{"set x 0 0 0 1 0 2", ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "set", Declare.String())
	assert.Equal(t, "quit", Quit.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestUsageListsEveryVerb(t *testing.T) {
	for _, verb := range []string{"set", "field", "players", "hint", "help", "quit"} {
		assert.Contains(t, Usage, verb)
	}
}
