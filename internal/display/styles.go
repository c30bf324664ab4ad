package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/setgame/internal/card"
	"github.com/lox/setgame/internal/game"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// cardColors maps each card colour to its foreground
var cardColors = map[card.Color]lipgloss.Color{
	card.Red:    lipgloss.Color("#FF6B6B"),
	card.Green:  lipgloss.Color("#04B575"),
	card.Purple: lipgloss.Color("#B48EFF"),
}

// Renderer draws cards, the field and the scoreboard. Output written without
// colour support (or with colour turned off) is plain text.
type Renderer struct {
	lg     *lipgloss.Renderer
	cards  map[card.Color]lipgloss.Style
	empty   lipgloss.Style
	header  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
}

// NewRenderer creates a renderer for output going to w
func NewRenderer(w io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if !color {
		lg.SetColorProfile(termenv.Ascii)
	}

	r := &Renderer{
		lg:     lg,
		cards:  make(map[card.Color]lipgloss.Style, len(cardColors)),
		empty:  lg.NewStyle().Foreground(lipgloss.Color("#626262")),
		header: lg.NewStyle().Foreground(lipgloss.Color("#626262")),

		success: lg.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		warning: lg.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
	}
	for c, fg := range cardColors {
		r.cards[c] = lg.NewStyle().Foreground(fg).Bold(true)
	}
	return r
}

// Card renders one card code in its colour
func (r *Renderer) Card(c *card.Card) string {
	if c.IsEmpty() {
		return r.empty.Render(c.String())
	}
	return r.cards[c.Color].Render(c.String())
}

// Field renders the snapshot's grid with row and column numbers
//
//	  0    1    2    3
//	0 R1RE G2DL P3WF ----
func (r *Renderer) Field(s game.Snapshot) string {
	var b strings.Builder
	b.WriteString(r.header.Render("  0    1    2    3"))
	for row := 0; row < game.Rows; row++ {
		b.WriteString("\n")
		b.WriteString(r.header.Render(fmt.Sprintf("%d", row)))
		for col := 0; col < game.Cols; col++ {
			b.WriteString(" ")
			b.WriteString(r.Card(&s.Field[game.Pos{Row: row, Col: col}.Index()]))
		}
	}
	return b.String()
}

// Success renders good news, such as the winner
func (r *Renderer) Success(text string) string {
	return r.success.Render(text)
}

// Warning renders neutral or cautionary messages
func (r *Renderer) Warning(text string) string {
	return r.warning.Render(text)
}

// Players renders one line per player, numbered as they are addressed in
// the set command
func (r *Renderer) Players(players [2]game.Player) string {
	lines := make([]string, len(players))
	for i, p := range players {
		lines[i] = fmt.Sprintf("%d %s", i, p)
	}
	return strings.Join(lines, "\n")
}
