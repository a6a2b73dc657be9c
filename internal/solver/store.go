package solver

import (
	"wordle-bot/internal/wordle"

	"github.com/bits-and-blooms/bitset"
)

// CandidateStore is the set of dictionary words still consistent with every
// feedback applied so far. It only shrinks.
type CandidateStore struct {
	words []wordle.Word
	alive *bitset.BitSet
}

// NewCandidateStore creates a store holding the whole dictionary. The slice
// is shared and never written.
func NewCandidateStore(dictionary []wordle.Word) *CandidateStore {
	n := uint(len(dictionary))
	alive := bitset.New(n)
	alive.FlipRange(0, n)
	return &CandidateStore{
		words: dictionary,
		alive: alive,
	}
}

// Len returns the number of live candidates
func (s *CandidateStore) Len() int {
	return int(s.alive.Count())
}

// Apply removes every candidate that does not match f
func (s *CandidateStore) Apply(f wordle.Feedback) {
	for i, ok := s.alive.NextSet(0); ok; i, ok = s.alive.NextSet(i + 1) {
		if !f.Matches(s.words[i]) {
			s.alive.Clear(i)
		}
	}
}

// ApplyHistory folds Apply over history in order
func (s *CandidateStore) ApplyHistory(history []wordle.Feedback) {
	for _, f := range history {
		s.Apply(f)
		if s.alive.None() {
			return
		}
	}
}

// Words returns the live candidates in dictionary order
func (s *CandidateStore) Words() []wordle.Word {
	out := make([]wordle.Word, 0, s.Len())
	for i, ok := s.alive.NextSet(0); ok; i, ok = s.alive.NextSet(i + 1) {
		out = append(out, s.words[i])
	}
	return out
}
