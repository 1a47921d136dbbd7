package dice

import (
	"crypto/rand"
	"encoding/binary"
	randv2 "math/rand/v2"
)

// Source is the randomness provider for dice rolls. Any math/rand/v2 Source
// satisfies it.
type Source interface {
	// Uint64 returns a uniformly distributed 64-bit value.
	Uint64() uint64
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: safe for concurrent use.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Uint64 returns a cryptographically secure random uint64.
//
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NewSeededSource returns a reproducible PCG Source. Two sources built from
// the same seed yield the same sequence.
//
// The returned Source is not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return randv2.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// unit maps the top 53 bits of src into [0, 1).
func unit(src Source) float64 {
	return float64(src.Uint64()>>11) / (1 << 53)
}
