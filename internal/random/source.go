package random

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Salt for the second PCG word so that both halves of the state depend on the
// full seed string.
const secondWordSalt = "\x00loreforge/pcg-inc"

// Float is a zero-argument float stream in [0, 1).
type Float func() float64

// Source is a seeded pseudo-random stream.
type Source struct {
	seed  string
	pcg   *rand.PCG
	draws uint64
}

// New returns a Source fully determined by seed.
func New(seed string) *Source {
	hi := xxhash.Sum64String(seed)
	lo := xxhash.Sum64String(seed + secondWordSalt)
	return &Source{seed: seed, pcg: rand.NewPCG(hi, lo)}
}

// Seed returns the seed this source was built from.
func (s *Source) Seed() string {
	return s.seed
}

// Draws reports how many 64-bit values have been consumed.
func (s *Source) Draws() uint64 {
	return s.draws
}

// Float returns the next value in [0, 1).
//
// The top 53 bits of one PCG output are used, so every Float consumes exactly
// one draw regardless of Go release.
func (s *Source) Float() float64 {
	s.draws++
	return float64(s.pcg.Uint64()>>11) / (1 << 53)
}

// Func exposes the source as a plain Float function.
func (s *Source) Func() Float {
	return s.Float
}

// IntN returns a uniform index in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(s.Float() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float() < p
}
