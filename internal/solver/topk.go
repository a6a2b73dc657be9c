package solver

import (
	"bytes"
	"container/heap"

	"wordle-bot/internal/wordle"
)

// DefaultTopK is the number of guesses returned per solve
const DefaultTopK = 5

// Candidate is a guess word with its information gain in bits
type Candidate struct {
	Word  wordle.Word
	Score float64
}

// ranksBelow is the single ordering used for eviction and draining. Equal
// scores fall back to the word so the alphabetically earlier one ranks higher.
func ranksBelow(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return bytes.Compare(a.Word[:], b.Word[:]) > 0
}

// candidateHeap is a min-heap: the root is the lowest-ranked candidate
type candidateHeap []Candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return ranksBelow(h[i], h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	*h = append(*h, x.(Candidate))
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// TopK keeps the k highest-ranked candidates offered to it
type TopK struct {
	k int
	h candidateHeap
}

func NewTopK(k int) *TopK {
	return &TopK{
		k: k,
		h: make(candidateHeap, 0, k+1),
	}
}

func (t *TopK) Len() int {
	return t.h.Len()
}

// Offer inserts c, evicting the lowest-ranked candidate on overflow
func (t *TopK) Offer(c Candidate) {
	heap.Push(&t.h, c)
	if t.h.Len() > t.k {
		heap.Pop(&t.h)
	}
}

// DrainDescending empties the set and returns it highest score first
func (t *TopK) DrainDescending() []Candidate {
	out := make([]Candidate, t.h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.h).(Candidate)
	}
	return out
}
