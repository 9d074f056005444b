package iss

import (
	"math/rand/v2"
	"strings"

	"github.com/spaolacci/murmur3"
)

// SeedForDOT derives a reproducible seed from a DOT number: MurmurHash3
// x86_32 (seed 0) of the trimmed string, masked to 31 bits.
func SeedForDOT(dot string) int64 {
	return int64(murmur3.Sum32([]byte(strings.TrimSpace(dot))) & 0x7fffffff)
}

// Rand is the randomness the scorers draw from
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG generator for the seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// randInt returns a uniform integer in [lo, hi]
func randInt(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
