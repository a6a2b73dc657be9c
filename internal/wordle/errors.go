package wordle

import "errors"

var (
	// ErrMalformedFeedback is returned when a guess/outcome pair has the wrong
	// shape or contains symbols outside the outcome alphabet
	ErrMalformedFeedback = errors.New("malformed feedback")

	// ErrInvalidWord indicates a word that is not exactly 5 letters a-z
	ErrInvalidWord = errors.New("invalid word")
)
