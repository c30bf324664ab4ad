package card

import "fmt"

// Color of the symbols on a card
type Color int

const (
	Red Color = iota
	Green
	Purple
)

// String returns the single-letter code for the color
func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Purple:
		return "P"
	default:
		return "-"
	}
}

// Number of symbols on a card
type Number int

const (
	One Number = iota
	Two
	Three
)

// String returns the symbol count as a digit
func (n Number) String() string {
	switch n {
	case One:
		return "1"
	case Two:
		return "2"
	case Three:
		return "3"
	default:
		return "-"
	}
}

// Shape of the symbols on a card
type Shape int

const (
	Round Shape = iota
	Diamond
	Wave
)

// String returns the single-letter code for the shape
func (s Shape) String() string {
	switch s {
	case Round:
		return "R"
	case Diamond:
		return "D"
	case Wave:
		return "W"
	default:
		return "-"
	}
}

// Shading of the symbols on a card
type Shading int

const (
	Open Shading = iota
	Lined
	Filled
)

// String returns the single-letter code for the shading
func (s Shading) String() string {
	switch s {
	case Open:
		return "E"
	case Lined:
		return "L"
	case Filled:
		return "F"
	default:
		return "-"
	}
}

// Status tracks where a card is in its lifecycle
type Status int

const (
	Unused Status = iota
	OnField
	Used
	// Empty is only ever carried by field sentinels
	Empty
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Unused:
		return "unused"
	case OnField:
		return "on-field"
	case Used:
		return "used"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Values is the number of values each attribute can take
const Values = 3

// DeckSize is the number of distinct cards
const DeckSize = Values * Values * Values * Values

// Card is a single SET card. The four attributes never change after
// construction; only the status moves through Unused -> OnField -> Used.
type Card struct {
	Color   Color
	Number  Number
	Shape   Shape
	Shading Shading

	status Status
	empty  bool
}

// New creates an unused card with the given attributes
func New(color Color, number Number, shape Shape, shading Shading) *Card {
	return &Card{
		Color:   color,
		Number:  number,
		Shape:   shape,
		Shading: shading,
		status:  Unused,
	}
}

// NewEmpty creates a placeholder for an unoccupied field slot
func NewEmpty() *Card {
	return &Card{
		Color:   -1,
		Number:  -1,
		Shape:   -1,
		Shading: -1,
		status:  Empty,
		empty:   true,
	}
}

// FromIndex creates the card whose base-3 digits (color first) spell i
func FromIndex(i int) *Card {
	return New(Color(i/27), Number(i%27/9), Shape(i%9/3), Shading(i%3))
}

// IsEmpty reports whether c is an empty-slot placeholder
func (c *Card) IsEmpty() bool {
	return c == nil || c.empty
}

// Status returns the current lifecycle status
func (c *Card) Status() Status {
	return c.status
}

// MarkStatus moves the card to a new lifecycle status. Placeholders keep
// their Empty status.
func (c *Card) MarkStatus(s Status) {
	if c.empty {
		return
	}
	c.status = s
}

// Index returns the position of the card in build order (0-80), or -1 for
// placeholders
func (c *Card) Index() int {
	if c.IsEmpty() {
		return -1
	}
	return int(c.Color)*27 + int(c.Number)*9 + int(c.Shape)*3 + int(c.Shading)
}

// Attributes returns the four attribute values in color, number, shape,
// shading order
func (c *Card) Attributes() [4]int {
	return [4]int{int(c.Color), int(c.Number), int(c.Shape), int(c.Shading)}
}

// String returns the four-letter code of the card (e.g. "R1RE")
func (c *Card) String() string {
	if c.IsEmpty() {
		return "----"
	}
	return c.Color.String() + c.Number.String() + c.Shape.String() + c.Shading.String()
}

// Compare orders cards by status. Placeholders sort after every real card.
func Compare(a, b *Card) int {
	return rank(a) - rank(b)
}

func rank(c *Card) int {
	if c.IsEmpty() {
		return int(Empty)
	}
	return int(c.status)
}

// Parse parses a four-letter card code such as "G2DF"
func Parse(s string) (*Card, error) {
	if len(s) != 4 {
		return nil, fmt.Errorf("invalid card string: %q", s)
	}

	var color Color
	switch s[0] {
	case 'R', 'r':
		color = Red
	case 'G', 'g':
		color = Green
	case 'P', 'p':
		color = Purple
	default:
		return nil, fmt.Errorf("invalid color: %c", s[0])
	}

	var number Number
	switch s[1] {
	case '1':
		number = One
	case '2':
		number = Two
	case '3':
		number = Three
	default:
		return nil, fmt.Errorf("invalid number: %c", s[1])
	}

	var shape Shape
	switch s[2] {
	case 'R', 'r':
		shape = Round
	case 'D', 'd':
		shape = Diamond
	case 'W', 'w':
		shape = Wave
	default:
		return nil, fmt.Errorf("invalid shape: %c", s[2])
	}

	var shading Shading
	switch s[3] {
	case 'E', 'e':
		shading = Open
	case 'L', 'l':
		shading = Lined
	case 'F', 'f':
		shading = Filled
	default:
		return nil, fmt.Errorf("invalid shading: %c", s[3])
	}

	return New(color, number, shape, shading), nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and fixed tables.
func MustParse(s string) *Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
