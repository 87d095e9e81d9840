package twist

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

const (
	checkpointVersion = 1

	// version byte, cursor, state vector, then the twist counter.
	checkpointWords = 1 + 4 + 4*stateSize
	checkpointSize  = checkpointWords + 8
)

// appendState appends the checkpoint encoding of the generator to mem.
func (g *Generator) appendState(mem []byte) []byte {
	le := binary.LittleEndian

	var buf [checkpointSize]byte
	buf[0] = checkpointVersion
	le.PutUint32(buf[1:5], uint32(g.left))
	for i, w := range &g.words {
		le.PutUint32(buf[5+4*i:], w)
	}
	le.PutUint64(buf[checkpointWords:], g.twists)

	return append(mem, buf[:]...)
}

// MarshalBinary encodes the position of the generator so that a stream can be
// resumed later with UnmarshalBinary. The Lenient setting is not encoded.
func (g *Generator) MarshalBinary() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g.appendState(make([]byte, 0, checkpointSize)), nil
}

// UnmarshalBinary restores a generator from data produced by MarshalBinary.
// The generator is left untouched if an error is returned.
func (g *Generator) UnmarshalBinary(data []byte) error {
	le := binary.LittleEndian

	if len(data) < checkpointSize {
		return Error.New("buffer too short: %d < %d", len(data), checkpointSize)
	}
	if data[0] != checkpointVersion {
		return Error.New("unknown checkpoint version: %d", data[0])
	}

	left := le.Uint32(data[1:5])
	if left > stateSize {
		return Error.New("cursor out of range: %d", left)
	}

	for i := range &g.words {
		g.words[i] = le.Uint32(data[5+4*i:])
	}
	g.left = int(left)
	g.twists = le.Uint64(data[checkpointWords:])
	g.seeded = true

	return nil
}

// Fingerprint returns a hash of the state vector and cursor. Two seeded
// generators with equal fingerprints produce the same stream from here on.
func (g *Generator) Fingerprint() uint64 {
	var scratch [checkpointSize]byte
	buf := g.appendState(scratch[:0])
	return xxh3.Hash(buf[:checkpointWords])
}
