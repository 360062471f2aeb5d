// Package gameid generates sortable hand identifiers: a UUIDv7 encoded as
// 26 characters of Crockford base32.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an identifier.
const Length = 26

// RandSource supplies random bytes for the non-time part of an ID.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates hand IDs from a clock and an optional RandSource.
// With a nil RandSource it reads crypto/rand.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: randSource}
}

// Generate creates an ID using the real clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new ID. IDs from later milliseconds sort after
// earlier ones.
func (g *Generator) Generate() string {
	return encode(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	ms := g.clock.Now("gameid").UnixMilli()
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10
	return uuid
}

// encode writes the 128 bits as 26 five-bit groups, padding the final
// group with two zero bits.
func encode(data [16]byte) string {
	var b strings.Builder
	b.Grow(Length)

	var acc uint16
	bits := 0
	for _, by := range data {
		acc = acc<<8 | uint16(by)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
	}
	if bits > 0 {
		b.WriteByte(alphabet[(acc<<(5-bits))&0x1f])
	}
	return b.String()
}

// Validate checks that id is a well-formed identifier
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("hand ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %q at position %d", id[i], i)
		}
	}
	// The last character carries three data bits and two padding bits.
	if strings.IndexByte(alphabet, id[Length-1])&0x3 != 0 {
		return fmt.Errorf("hand ID has non-zero padding bits")
	}
	return nil
}
