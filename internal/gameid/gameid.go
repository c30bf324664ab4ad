// Package gameid generates sortable game identifiers: UUIDv7 values
// written as 26 characters of Crockford base32, like TypeID suffixes.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

// The 128 UUID bits are left-padded with two zero bits to make 130 bits,
// which is exactly 26 five-bit characters.
const padBits = Length*5 - 128

// Generator creates game IDs from a configurable random source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new game ID from crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		// The reader ran dry; a random v4 keeps IDs unique if not sortable
		id = uuid.New()
	}
	return Encode(id)
}

// Encode writes id as 26 base32 characters
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for bit := 0; bit < 5; bit++ {
			v = v<<1 | bitAt(id, i*5+bit)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// bitAt returns bit n of the padded 130-bit value, most significant first
func bitAt(id uuid.UUID, n int) byte {
	n -= padBits
	if n < 0 {
		return 0
	}
	return (id[n/8] >> (7 - n%8)) & 1
}

// Decode parses an encoded game ID back into its UUID
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		for bit := 0; bit < 5; bit++ {
			n := i*5 + bit - padBits
			if n < 0 {
				continue
			}
			if (v>>(4-bit))&1 == 1 {
				id[n/8] |= 1 << (7 - n%8)
			}
		}
	}
	return id, nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The two padding bits are zero, so the first character is at most 7
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
