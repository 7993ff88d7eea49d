package shuffle

import "math/rand/v2"

// streamSalt selects the PCG stream for a given seed.
const streamSalt = 0x9e3779b97f4a7c15

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^streamSalt))
}

// ChunkSeed derives the generator seed for one uniqueness worker from the
// base seed and the worker's chunk index. Distinct chunks get uncorrelated
// streams while staying reproducible for a fixed base seed.
func ChunkSeed(base uint64, index int) uint64 {
	return splitmix64(base + uint64(index+1)*streamSalt)
}

// FreshSeed returns a non-deterministic, non-zero seed. A configured seed of
// zero means "use FreshSeed".
func FreshSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

func splitmix64(x uint64) uint64 {
	z := x + streamSalt
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
