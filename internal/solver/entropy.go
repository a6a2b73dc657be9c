package solver

import (
	"math"

	"wordle-bot/internal/wordle"
)

// Score returns the expected information gain in bits of playing guess when
// the answer is drawn uniformly from reference, scaled by weight
func Score(guess wordle.Word, reference []wordle.Word, weight float64) float64 {
	if len(reference) == 0 {
		return 0
	}
	total := float64(len(reference))
	var bits float64
	for _, p := range wordle.AllPatterns(guess) {
		remaining := 0
		for _, w := range reference {
			if p.Matches(w) {
				remaining++
			}
		}
		if remaining == 0 {
			continue
		}
		px := float64(remaining) / total
		bits += px * -math.Log2(px) * weight
	}
	return bits
}
