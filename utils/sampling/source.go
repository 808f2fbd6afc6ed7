// Package sampling implements a deterministic source of randomness
// expanded from a 32-byte seed with the BLAKE2b XOF.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/blake2b"
)

// Source is a deterministic stream of pseudo-random bytes expanded
// from a seed. Two sources instantiated with the same seed produce
// the same stream. A Source is not safe for concurrent use; fork
// per-goroutine sources with [Source.NewSource].
type Source struct {
	seed [32]byte
	xof  blake2b.XOF
}

// NewSeed returns a fresh 32-byte seed read from crypto/rand.
func NewSeed() (seed [32]byte) {
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Errorf("crypto/rand: %w", err))
	}
	return
}

// NewSource instantiates a new [Source] from a seed.
func NewSource(seed [32]byte) *Source {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed[:])
	if err != nil {
		panic(fmt.Errorf("blake2b.NewXOF: %w", err))
	}
	return &Source{seed: seed, xof: xof}
}

// NewSource returns a new [Source] whose seed is drawn from the
// receiver's stream. The fork can be used concurrently with the
// receiver once created.
func (s *Source) NewSource() *Source {
	var seed [32]byte
	s.Read(seed[:])
	return NewSource(seed)
}

// Seed returns the seed the receiver was instantiated with.
func (s *Source) Seed() [32]byte {
	return s.seed
}

// Reset rewinds the receiver to the beginning of its stream.
func (s *Source) Reset() {
	s.xof.Reset()
}

// Read fills p with pseudo-random bytes.
func (s *Source) Read(p []byte) {
	if _, err := s.xof.Read(p); err != nil {
		panic(fmt.Errorf("blake2b.XOF.Read: %w", err))
	}
}

// Uint64 returns a pseudo-random uint64.
func (s *Source) Uint64() uint64 {
	var b [8]byte
	s.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Uint64N returns a pseudo-random uint64 in [0, n) using rejection
// sampling on the smallest covering power-of-two mask.
func (s *Source) Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("invalid n: must be non-zero")
	}
	if n&(n-1) == 0 {
		return s.Uint64() & (n - 1)
	}
	mask := uint64(1)<<bits.Len64(n-1) - 1
	c := s.Uint64() & mask
	for c >= n {
		c = s.Uint64() & mask
	}
	return c
}

// Float64 returns a pseudo-random float64 in [min, max).
func (s *Source) Float64(min, max float64) float64 {
	f := float64(s.Uint64()>>11) / (1 << 53)
	return min + f*(max-min)
}

// Complex128 returns a pseudo-random complex128 with real and
// imaginary parts in [min, max).
func (s *Source) Complex128(min, max float64) complex128 {
	return complex(s.Float64(min, max), s.Float64(min, max))
}
