package solver

import (
	"math/rand/v2"

	"wordle-bot/internal/wordle"
)

const (
	DefaultSampleFloor   = 250
	DefaultSampleDivisor = 5
)

// Sampler bounds the reference distribution used to estimate pattern
// probabilities, keeping scoring roughly linear in the number of guesses
type Sampler struct {
	Floor   int
	Divisor int
}

// SampleSize returns min(n, max(Floor, n/Divisor))
func (s Sampler) SampleSize(n int) int {
	size := max(s.Floor, n/s.Divisor)
	return min(n, size)
}

// Sample draws SampleSize(len(live)) words uniformly without replacement.
// When no reduction is needed live itself is returned.
func (s Sampler) Sample(live []wordle.Word, rng *rand.Rand) []wordle.Word {
	n := len(live)
	k := s.SampleSize(n)
	if k >= n {
		return live
	}
	buf := make([]wordle.Word, n)
	copy(buf, live)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k]
}
