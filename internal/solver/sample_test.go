package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_SampleSize(t *testing.T) {
	s := Sampler{Floor: DefaultSampleFloor, Divisor: DefaultSampleDivisor}
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{100, 100},
		{250, 250},
		{251, 250},
		{1250, 250},
		{1259, 251},
		{2000, 400},
		{14855, 2971},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.SampleSize(tt.n), "n=%d", tt.n)
		assert.Equal(t, min(tt.n, max(250, tt.n/5)), s.SampleSize(tt.n))
	}
}

func TestSampler_Sample(t *testing.T) {
	s := Sampler{Floor: DefaultSampleFloor, Divisor: DefaultSampleDivisor}
	rng := rand.New(rand.NewPCG(1, 2))

	for _, n := range []int{10, 250, 251, 1000, 3000} {
		live := syntheticWords(n)
		sample := s.Sample(live, rng)
		require.Len(t, sample, min(n, max(250, n/5)), "n=%d", n)

		members := make(map[string]bool, n)
		for _, w := range live {
			members[w.String()] = true
		}
		seen := make(map[string]bool, len(sample))
		for _, w := range sample {
			assert.True(t, members[w.String()], "sampled word %s not in store", w)
			assert.False(t, seen[w.String()], "word %s sampled twice", w)
			seen[w.String()] = true
		}
	}
}

func TestSampler_SampleLeavesInputIntact(t *testing.T) {
	s := Sampler{Floor: 10, Divisor: 5}
	live := syntheticWords(100)
	before := wordStrings(live)

	_ = s.Sample(live, rand.New(rand.NewPCG(3, 4)))
	assert.Equal(t, before, wordStrings(live))
}
