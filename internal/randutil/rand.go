package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Two PCG seeds are derived from one so that a single configured number is
// enough to replay a whole game.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns a fresh non-zero seed derived from the wall clock
func Seed() int64 {
	s := int64(mix(uint64(time.Now().UnixNano())) >> 1)
	if s == 0 {
		return 1
	}
	return s
}

// Resolve returns seed unchanged unless it is zero, in which case a fresh
// seed is generated. Zero means "random" in configuration and flags.
func Resolve(seed int64) int64 {
	if seed == 0 {
		return Seed()
	}
	return seed
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
