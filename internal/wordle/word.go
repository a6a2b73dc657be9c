package wordle

import (
	"fmt"
	"strings"
)

// WordLength is the fixed number of letters in every puzzle word
const WordLength = 5

// Word is an immutable 5-letter word over a-z
type Word [WordLength]byte

// ParseWord lowercases s and validates it as a Word
func ParseWord(s string) (Word, error) {
	var w Word
	if len(s) != WordLength {
		return w, fmt.Errorf("%w: %q has length %d", ErrInvalidWord, s, len(s))
	}
	s = strings.ToLower(s)
	for i := 0; i < WordLength; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, fmt.Errorf("%w: %q contains %q", ErrInvalidWord, s, c)
		}
		w[i] = c
	}
	return w, nil
}

// MustParseWord is ParseWord for static tables; it panics on invalid input
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string {
	return string(w[:])
}

// Count returns the number of occurrences of letter c
func (w Word) Count(c byte) int {
	n := 0
	for _, v := range w {
		if v == c {
			n++
		}
	}
	return n
}

func (w Word) Contains(c byte) bool {
	for _, v := range w {
		if v == c {
			return true
		}
	}
	return false
}

// ParseWords parses every entry, stopping at the first invalid one
func ParseWords(words []string) ([]Word, error) {
	out := make([]Word, 0, len(words))
	for _, s := range words {
		w, err := ParseWord(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
