// Package randutil builds the single seedable random source shared by a
// session's deck and its AI seats.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG seeds are derived from it so that all call sites get reproducible
// sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Split derives an independent generator from rng, for workers that must
// not share a source.
func Split(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(mix(rng.Uint64()), mix(rng.Uint64())))
}

// Seed returns seed unless it is zero, in which case a time based seed is used.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
