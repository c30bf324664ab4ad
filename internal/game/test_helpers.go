package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/setgame/internal/card"
	"github.com/lox/setgame/internal/deck"
)

// QuietLogger returns a logger that discards everything below error level
func QuietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// NewTestGame creates a game between Alice and Bob with a fixed seed and a
// quiet logger. Later options override the defaults.
func NewTestGame(opts ...Option) *Game {
	defaults := []Option{
		WithSeed(42),
		WithLogger(QuietLogger()),
		WithID("0000000000testgame00000000"),
	}
	return New("Alice", "Bob", append(defaults, opts...)...)
}

// ArrangeField replaces the field with the cards named by codes (e.g.
// "R1RE"), filling slots in index order. Cards currently on the field go
// back to the deck as unused; "----" leaves a slot empty.
func ArrangeField(g *Game, codes ...string) error {
	if len(codes) > deck.FieldSize {
		return fmt.Errorf("field holds %d cards, got %d", deck.FieldSize, len(codes))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < deck.FieldSize; i++ {
		if c := g.field.clear(PosFromIndex(i)); !c.IsEmpty() {
			c.MarkStatus(card.Unused)
		}
	}

	byIndex := make(map[int]*card.Card, g.deck.Len())
	for i := 0; i < g.deck.Len(); i++ {
		c := g.deck.At(i)
		byIndex[c.Index()] = c
	}

	for i, code := range codes {
		if code == "----" {
			continue
		}
		want, err := card.Parse(code)
		if err != nil {
			return err
		}
		c := byIndex[want.Index()]
		if c.Status() != card.Unused {
			return fmt.Errorf("card %s is %s", code, c.Status())
		}
		g.field.Put(PosFromIndex(i), c)
	}
	return nil
}

// ConsumeUnused marks every card that is not on the field as used, leaving
// only the field in play
func ConsumeUnused(g *Game) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.deck.Consume(g.deck.Unused()...)
}
