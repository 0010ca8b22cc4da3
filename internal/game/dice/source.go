package dice

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand/v2"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure random float in [0, 1).
func (c *cryptoSource) Float64() float64 {
	return float64(c.Intn(1<<53)) / (1 << 53)
}

// SeededSource is a deterministic Source that counts the draws made from it.
//
// Invariant: two SeededSources built from the same seed produce the same
// sequence when the same calls are made in the same order.
type SeededSource struct {
	seed int64
	rng  *mrand.Rand
	pos  int64
}

// NewSeededSource returns a deterministic Source for seed.
//
// Postcondition: Position() == 0.
func NewSeededSource(seed int64) *SeededSource {
	s := uint64(seed)
	return &SeededSource{
		seed: seed,
		rng:  mrand.New(mrand.NewPCG(s, s^0x9e3779b97f4a7c15)),
	}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (s *SeededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.pos++
	return s.rng.IntN(n)
}

// Float64 returns a pseudo-random float in [0, 1).
func (s *SeededSource) Float64() float64 {
	s.pos++
	return s.rng.Float64()
}

// Seed returns the seed the source was built from.
func (s *SeededSource) Seed() int64 { return s.seed }

// Position returns the number of draws made since creation.
func (s *SeededSource) Position() int64 { return s.pos }

// RandomSeed draws a non-zero seed from crypto/rand.
//
// Postcondition: Returns a value != 0.
func RandomSeed() int64 {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic("dice: crypto/rand failure: " + err.Error())
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1); seed != 0 {
			return seed
		}
	}
}
