package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource abstract

type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// lockedRNG wraps a PCG generator so one engine can serve many users at once.
type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRNG) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewSeed reads 64 bits from crypto/rand for seeding a PRNG.
func NewSeed() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2's runtime-seeded source
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}

// DefaultRNG is a PCG generator with a fresh non-deterministic seed.
func DefaultRNG() RandomSource { return NewSeededRNG(NewSeed()) }

// Replicable RNG (e.g. tests, Monte Carlo)
func NewSeededRNG(seed uint64) RandomSource {
	return &lockedRNG{r: rand.New(rand.NewPCG(seed, 0))}
}
