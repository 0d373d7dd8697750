package review

import (
	"math/rand/v2"
	"sync"
)

// Rand is the source of every random draw the engine makes.
// Implementations must be safe for concurrent use.
type Rand interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int

	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// pcgIncrement is the stream selector paired with the seed in NewRand.
const pcgIncrement = 0x9e3779b97f4a7c15

// lockedRand serializes access to a *rand.Rand, which is not goroutine safe.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a Rand seeded deterministically from seed.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, pcgIncrement))}
}

// SystemRand returns a Rand seeded from the runtime's random source.
func SystemRand() Rand {
	return NewRand(rand.Uint64())
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

type zeroRand struct{}

// ZeroRand returns a Rand whose every draw is zero.
//
// Under ZeroRand no complexity filler is added, every random penalty is zero,
// both complexity metrics are 1, and a requested security scan always fires on line 0.
func ZeroRand() Rand {
	return zeroRand{}
}

func (zeroRand) IntN(int) int     { return 0 }
func (zeroRand) Float64() float64 { return 0 }

// drawN guards IntN against non-positive bounds.
func drawN(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntN(n)
}
