package solver

import (
	"testing"

	"wordle-bot/internal/wordle"

	"github.com/stretchr/testify/require"
)

var testDictionary = []string{
	"tares", "lares", "rales", "rates", "teras", "crane", "slate", "trace",
	"tight", "thumb", "tonic", "tulip", "think", "tough", "toxin", "thong",
	"tying", "trick", "track", "trust", "stick", "tenth", "class", "glass",
	"clasp", "sassy", "lucky", "pouty", "plumb", "moody", "whisk", "fjord",
	"nymph", "bound", "chimp", "dough", "flock", "quick", "vivid", "zonal",
}

func mustWords(t testing.TB, words []string) []wordle.Word {
	t.Helper()
	out, err := wordle.ParseWords(words)
	require.NoError(t, err)
	return out
}

func mustFeedback(t testing.TB, word, code string) wordle.Feedback {
	t.Helper()
	f, err := wordle.ParseFeedback(word, code)
	require.NoError(t, err)
	return f
}

func wordStrings(words []wordle.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}

// syntheticWords returns n distinct words "aaaaa", "aaaab", ...
func syntheticWords(n int) []wordle.Word {
	out := make([]wordle.Word, n)
	for i := range out {
		v := i
		for j := wordle.WordLength - 1; j >= 0; j-- {
			out[i][j] = byte('a' + v%26)
			v /= 26
		}
	}
	return out
}

func weightOf(v float64) *float64 {
	return &v
}
