package generator

import (
	"math/rand"
	"time"
)

// RandomSource provides uniform samples in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Range returns a uniform sample in [a, b). When a == b it returns a.
func Range(r RandomSource, a, b float64) float64 {
	return a + (b-a)*r.Float64()
}

// Pick returns a uniform index in [0, n). n must be positive.
func Pick(r RandomSource, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance runs one Bernoulli trial with probability p.
func Chance(r RandomSource, p float64) bool {
	return r.Float64() < p
}

// NewSeededSource returns a reproducible source.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// NewSource returns a source seeded from the clock.
func NewSource() RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}
