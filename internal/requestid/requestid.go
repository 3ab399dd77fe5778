// Package requestid issues time-ordered identifiers for simulation
// requests that arrive without one.
package requestid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded identifier
const Length = 26

// RandSource allows deterministic identifiers in tests
type RandSource interface {
	IntN(n int) int
}

// Generator issues UUIDv7 identifiers encoded as base32
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil RandSource reads crypto/rand.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	return &Generator{clock: clock, rand: rand}
}

// Generate returns a new identifier. Identifiers from later milliseconds
// sort after earlier ones.
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var id [16]byte

	// 48-bit millisecond timestamp, then random bits with version and
	// variant overlaid
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint16(id[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(id[2:6], uint32(ms))

	if g.rand != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// encode writes the 128 bits as 26 base32 digits, most significant first,
// with two leading zero bits.
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	out := make([]byte, Length)
	for i := range out {
		shift := uint(5 * (Length - 1 - i))
		var v uint64
		if shift >= 64 {
			v = hi >> (shift - 64)
		} else {
			v = lo>>shift | hi<<(64-shift)
		}
		out[i] = alphabet[v&0x1f]
	}
	return string(out)
}

// Validate checks that id is a well formed identifier
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("request ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("request ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
