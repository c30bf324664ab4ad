// Package evaluator decides whether three cards form a SET and scans card
// collections for SETs.
package evaluator

import "github.com/lox/setgame/internal/card"

// IsSet reports whether a, b and c form a SET: for each of the four
// attributes the three values are either all equal or all different.
// Any empty placeholder makes the triple invalid.
func IsSet(a, b, c *card.Card) bool {
	if a.IsEmpty() || b.IsEmpty() || c.IsEmpty() {
		return false
	}

	return attributeOK(int(a.Color), int(b.Color), int(c.Color)) &&
		attributeOK(int(a.Number), int(b.Number), int(c.Number)) &&
		attributeOK(int(a.Shape), int(b.Shape), int(c.Shape)) &&
		attributeOK(int(a.Shading), int(b.Shading), int(c.Shading))
}

func attributeOK(x, y, z int) bool {
	allSame := x == y && y == z
	allDifferent := x != y && y != z && z != x
	return allSame || allDifferent
}

// Complete returns the attributes of the only card that makes a SET with a
// and b. Each value is the one that makes the attribute sum divisible by 3.
func Complete(a, b *card.Card) *card.Card {
	third := func(x, y int) int {
		return (card.Values - (x+y)%card.Values) % card.Values
	}
	return card.New(
		card.Color(third(int(a.Color), int(b.Color))),
		card.Number(third(int(a.Number), int(b.Number))),
		card.Shape(third(int(a.Shape), int(b.Shape))),
		card.Shading(third(int(a.Shading), int(b.Shading))),
	)
}

// FindSet returns the indices of the first SET in cards, scanning triples in
// lexicographic order
func FindSet(cards []*card.Card) (i, j, k int, ok bool) {
	n := len(cards)
	for i = 0; i < n-2; i++ {
		for j = i + 1; j < n-1; j++ {
			for k = j + 1; k < n; k++ {
				if IsSet(cards[i], cards[j], cards[k]) {
					return i, j, k, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

// ExistsSet reports whether any three cards in cards form a SET
func ExistsSet(cards []*card.Card) bool {
	_, _, _, ok := FindSet(cards)
	return ok
}

// CountSets returns the number of distinct SETs among cards
func CountSets(cards []*card.Card) int {
	count := 0
	n := len(cards)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				if IsSet(cards[i], cards[j], cards[k]) {
					count++
				}
			}
		}
	}
	return count
}
