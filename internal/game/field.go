package game

import (
	"fmt"
	"strings"

	"github.com/lox/setgame/internal/card"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/evaluator"
)

// Field dimensions
const (
	Rows = 3
	Cols = 4
)

// Pos addresses a field slot by row and column
type Pos struct {
	Row int
	Col int
}

// Index returns the linear slot index row*Cols + col
func (p Pos) Index() int {
	return p.Row*Cols + p.Col
}

// Valid reports whether p lies on the 3x4 grid
func (p Pos) Valid() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// PosFromIndex converts a linear slot index back into a position
func PosFromIndex(idx int) Pos {
	return Pos{Row: idx / Cols, Col: idx % Cols}
}

// Field is the 3x4 grid of face-up cards. Every slot owns a placeholder
// that is installed whenever its card is removed.
type Field struct {
	slots   [deck.FieldSize]*card.Card
	empties [deck.FieldSize]*card.Card
}

// NewField creates a field with every slot empty
func NewField() *Field {
	f := &Field{}
	for i := range f.slots {
		f.empties[i] = card.NewEmpty()
		f.slots[i] = f.empties[i]
	}
	return f
}

// Get returns the card in slot idx, which may be a placeholder
func (f *Field) Get(idx int) *card.Card {
	return f.slots[idx]
}

// At returns the card at pos
func (f *Field) At(pos Pos) *card.Card {
	return f.slots[pos.Index()]
}

// Put places c at pos and marks it as on the field
func (f *Field) Put(pos Pos, c *card.Card) {
	c.MarkStatus(card.OnField)
	f.slots[pos.Index()] = c
}

// Remove marks the card at pos as used and leaves the slot empty. It
// returns the removed card.
func (f *Field) Remove(pos Pos) *card.Card {
	c := f.clear(pos)
	c.MarkStatus(card.Used)
	return c
}

// clear empties the slot at pos without touching the card's status
func (f *Field) clear(pos Pos) *card.Card {
	idx := pos.Index()
	c := f.slots[idx]
	f.slots[idx] = f.empties[idx]
	return c
}

// IsEmpty reports whether the slot at pos holds a placeholder
func (f *Field) IsEmpty(pos Pos) bool {
	return f.slots[pos.Index()].IsEmpty()
}

// Occupied returns the number of slots holding a real card
func (f *Field) Occupied() int {
	n := 0
	for _, c := range f.slots {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// ExistsSET reports whether any three slots form a SET
func (f *Field) ExistsSET() bool {
	return evaluator.ExistsSet(f.slots[:])
}

// FindSET returns the positions of the first SET on the field
func (f *Field) FindSET() ([3]Pos, bool) {
	i, j, k, ok := evaluator.FindSet(f.slots[:])
	if !ok {
		return [3]Pos{}, false
	}
	return [3]Pos{PosFromIndex(i), PosFromIndex(j), PosFromIndex(k)}, true
}

// CountSETs returns the number of SETs visible on the field
func (f *Field) CountSETs() int {
	return evaluator.CountSets(f.slots[:])
}

// Cards returns a copy of the slots in index order
func (f *Field) Cards() []*card.Card {
	out := make([]*card.Card, len(f.slots))
	copy(out, f.slots[:])
	return out
}

// String renders the field as three rows of card codes
func (f *Field) String() string {
	var b strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if col > 0 {
				b.WriteString(" ")
			}
			b.WriteString(f.At(Pos{Row: row, Col: col}).String())
		}
		b.WriteString("\n")
	}
	return b.String()
}
