// Package siphash implements the modified siphash-2-4 keyed hash used to
// derive Cuckoo Cycle graph edges. It differs from standard siphash-2-4 in
// two ways: the key is 256 bits wide, and the internal state is seeded from
// the four key words directly, without XORing the usual constants.
package siphash

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// KeySize is the byte length accepted by NewFromBytes.
const KeySize = 32

// SipHash hashes 64-bit words under a fixed 256-bit key.
type SipHash struct {
	v [4]uint64
}

// New returns a hasher seeded with the four key words.
func New(key [4]uint64) *SipHash {
	return &SipHash{v: key}
}

// NewFromBytes decodes a 32-byte little-endian key into its four words.
func NewFromBytes(key []byte) (*SipHash, error) {
	if len(key) != KeySize {
		return nil, errors.New("length of siphash key is not correct")
	}
	var v [4]uint64
	for i := range v {
		v[i] = binary.LittleEndian.Uint64(key[8*i:])
	}
	return &SipHash{v: v}, nil
}

// Hash computes the 64-bit digest of a single word. It is a pure function
// of the key and the word.
func (s *SipHash) Hash(word uint64) uint64 {
	v0, v1, v2, v3 := s.v[0], s.v[1], s.v[2], s.v[3]

	// Compression.
	v3 ^= word
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0 ^= word

	// Finalization.
	v2 ^= 0xff
	for i := 0; i < 4; i++ {
		v0, v1, v2, v3 = round(v0, v1, v2, v3)
	}

	return v0 ^ v1 ^ v2 ^ v3
}

// One sip round with the standard 13/16/32/17/21/32 rotation schedule.
func round(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 = v0 + v1
	v2 = v2 + v3
	v1 = rotl(v1, 13)
	v3 = rotl(v3, 16)
	v1 ^= v0
	v3 ^= v2
	v0 = rotl(v0, 32)
	v2 = v2 + v1
	v0 = v0 + v3
	v1 = rotl(v1, 17)
	v3 = rotl(v3, 21)
	v1 ^= v2
	v3 ^= v0
	v2 = rotl(v2, 32)
	return v0, v1, v2, v3
}

func rotl(val uint64, shift uint8) uint64 {
	return (val << shift) | (val >> (64 - shift))
}
