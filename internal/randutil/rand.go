// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Split derives n independent seeds from seed, one per worker. The same
// seed and n always produce the same slice.
func Split(seed int64, n int) []int64 {
	seeds := make([]int64, n)
	u := uint64(seed)
	for i := range seeds {
		u += goldenRatio64
		seeds[i] = int64(mix(u))
	}
	return seeds
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
