package engine

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// RandomSource yields uniform integers in [0, n). Implementations need not be safe for concurrent use;
// each engine owns its source.
type RandomSource interface {
	Int64N(n int64) int64
}

// cryptoSource draws from crypto/rand, falling back to math/rand/v2 if the system reader fails.
type cryptoSource struct{}

func (cryptoSource) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(n))
	if err != nil {
		return rand.Int64N(n)
	}
	return v.Int64()
}

// DefaultSource is the production entropy source.
func DefaultSource() RandomSource { return cryptoSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a reproducible source (PCG) for tests and simulations.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return s.r.Int64N(n)
}

// FixedSource replays the given values (modulo n) in order and then repeats the last one.
// It pins the random draw in tests.
type FixedSource struct {
	Values []int64
	next   int
}

func (f *FixedSource) Int64N(n int64) int64 {
	if len(f.Values) == 0 || n <= 0 {
		return 0
	}
	i := f.next
	if i >= len(f.Values) {
		i = len(f.Values) - 1
	} else {
		f.next++
	}
	return f.Values[i] % n
}
