package display

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/setgame/internal/game"
)

// A field with a SET in the first row and plenty of deck left
var setInFirstRow = []string{
	"R1RE", "R1RL", "R1RF", "G2DL",
	"P3WF", "G1DE", "P2RL", "R3WF",
	"G3RE", "P1DF", "R2WL", "G2WE",
}

const setInFirstRowField = "  0    1    2    3\n" +
	"0 R1RE R1RL R1RF G2DL\n" +
	"1 P3WF G1DE P2RL R3WF\n" +
	"2 G3RE P1DF R2WL G2WE"

// Only the first row forms a SET; nothing else can once it is declared
var lastSET = []string{
	"R1RE", "R1RL", "R1RF", "R1DE",
	"R1DL", "R2RE", "R2RL", "R2DE",
	"R2DL", "G1RE", "G1RL", "G1DE",
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func plainRenderer() *Renderer {
	return NewRenderer(io.Discard, false)
}

func arrangedGame(t *testing.T, codes []string, opts ...game.Option) *game.Game {
	t.Helper()
	g := game.NewTestGame(opts...)
	require.NoError(t, game.ArrangeField(g, codes...))
	return g
}

// recordingOutput keeps everything a session reports
type recordingOutput struct {
	entries []string
	field   string
	players string
}

func (r *recordingOutput) AddLogEntry(entry string) {
	r.entries = append(r.entries, entry)
}

func (r *recordingOutput) SetStatus(field, players string) {
	r.field = field
	r.players = players
}
