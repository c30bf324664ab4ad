package deck

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/setgame/internal/card"
	"github.com/lox/setgame/internal/evaluator"
	"github.com/lox/setgame/internal/randutil"
)

// FieldSize is the number of cards kept face up during play
const FieldSize = 12

// Deck holds all 81 SET cards. Cards never leave the deck; their status
// records whether they are still available, on the field or consumed.
type Deck struct {
	cards []*card.Card
	used  int        // cards permanently removed by confirmed SETs
	rng   *rand.Rand // Random source for deterministic shuffling
}

// New creates a deck in build order (color, number, shape, shading with
// shading varying fastest). The deck is not shuffled.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.New(randutil.Seed())
	}

	d := &Deck{
		cards: make([]*card.Card, 0, card.DeckSize),
		rng:   rng,
	}

	for color := card.Red; color <= card.Purple; color++ {
		for number := card.One; number <= card.Three; number++ {
			for shape := card.Round; shape <= card.Wave; shape++ {
				for shading := card.Open; shading <= card.Filled; shading++ {
					d.cards = append(d.cards, card.New(color, number, shape, shading))
				}
			}
		}
	}

	return d
}

// Shuffle randomly permutes the cards that are still in play and then
// stable-sorts the whole deck by status, so unused cards come first in
// random order, field cards next and used cards last. Used cards keep
// their relative order.
func (d *Deck) Shuffle() {
	slices.SortStableFunc(d.cards, func(a, b *card.Card) int {
		return usedKey(a) - usedKey(b)
	})

	active := len(d.cards)
	for active > 0 && d.cards[active-1].Status() == card.Used {
		active--
	}
	d.rng.Shuffle(active, func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})

	slices.SortStableFunc(d.cards, card.Compare)
}

func usedKey(c *card.Card) int {
	if c.Status() == card.Used {
		return 1
	}
	return 0
}

// Draw returns the next n unused cards in deck order without changing
// their status. It returns nil if fewer than n unused cards remain.
func (d *Deck) Draw(n int) []*card.Card {
	drawn := make([]*card.Card, 0, n)
	for _, c := range d.cards {
		if len(drawn) == n {
			break
		}
		if c.Status() == card.Unused {
			drawn = append(drawn, c)
		}
	}
	if len(drawn) < n {
		return nil
	}
	return drawn
}

// Consume marks cards as used and advances the used counter
func (d *Deck) Consume(cards ...*card.Card) error {
	if d.used+len(cards) > card.DeckSize {
		return fmt.Errorf("cannot consume %d cards: %d of %d already used", len(cards), d.used, card.DeckSize)
	}
	for _, c := range cards {
		c.MarkStatus(card.Used)
	}
	d.used += len(cards)
	return nil
}

// ExistsSET reports whether a SET can still be formed from the cards that
// have not been used, ignoring any card listed in exclude
func (d *Deck) ExistsSET(exclude ...*card.Card) bool {
	if d.used == card.DeckSize {
		return false
	}
	return evaluator.ExistsSet(d.Remaining(exclude...))
}

// Remaining returns the cards that are unused or on the field, in deck
// order, leaving out any card listed in exclude
func (d *Deck) Remaining(exclude ...*card.Card) []*card.Card {
	remaining := make([]*card.Card, 0, len(d.cards)-d.used)
	for _, c := range d.cards {
		if c.Status() == card.Used || slices.Contains(exclude, c) {
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining
}

// Unused returns the cards that have not been dealt, in deck order
func (d *Deck) Unused() []*card.Card {
	var unused []*card.Card
	for _, c := range d.cards {
		if c.Status() == card.Unused {
			unused = append(unused, c)
		}
	}
	return unused
}

// HasUnusedRemaining reports whether enough cards are left beyond a full
// field to deal a replacement trio. This is deliberately conservative: it
// requires used+12 < 81 rather than three spare cards.
func (d *Deck) HasUnusedRemaining() bool {
	return d.used+FieldSize < card.DeckSize
}

// UsedCount returns how many cards have been consumed by confirmed SETs
func (d *Deck) UsedCount() int {
	return d.used
}

// Len returns the total number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// At returns the card at position i in the current deck order
func (d *Deck) At(i int) *card.Card {
	return d.cards[i]
}
