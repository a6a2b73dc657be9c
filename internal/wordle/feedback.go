package wordle

import (
	"fmt"
	"strings"
)

// Outcome classifies one guessed letter
type Outcome uint8

const (
	// Absent means every occurrence of the letter in the answer is already
	// accounted for by Correct/Present marks of the same letter in the guess.
	// With no such marks the letter does not occur at all.
	Absent Outcome = iota
	Present
	Correct
)

// NumPatterns is the number of distinct outcome sequences for one guess (3^5)
const NumPatterns = 243

// Wire codes used by the request contract
const (
	CodeCorrect = 'G'
	CodePresent = 'y'
	CodeAbsent  = 'g'
)

// patternOrder fixes the enumeration order used by AllPatterns
var patternOrder = [3]Outcome{Present, Absent, Correct}

func (o Outcome) Valid() bool {
	return o <= Correct
}

func (o Outcome) Code() byte {
	switch o {
	case Correct:
		return CodeCorrect
	case Present:
		return CodePresent
	default:
		return CodeAbsent
	}
}

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "Correct"
	case Present:
		return "Present"
	case Absent:
		return "Absent"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// ParseOutcome maps a wire code to an Outcome
func ParseOutcome(c byte) (Outcome, error) {
	switch c {
	case CodeCorrect:
		return Correct, nil
	case CodePresent:
		return Present, nil
	case CodeAbsent:
		return Absent, nil
	}
	return 0, fmt.Errorf("%w: invalid outcome symbol %q", ErrMalformedFeedback, c)
}

// Feedback is one guessed word together with its per-letter outcomes
type Feedback struct {
	word     Word
	outcomes [WordLength]Outcome
	// confirmed[i] counts positions holding word[i] marked Correct or Present
	confirmed [WordLength]uint8
}

// NewFeedback validates and builds a Feedback record
func NewFeedback(word string, outcomes []Outcome) (Feedback, error) {
	if len(word) != WordLength {
		return Feedback{}, fmt.Errorf("%w: word %q has length %d", ErrMalformedFeedback, word, len(word))
	}
	if len(outcomes) != WordLength {
		return Feedback{}, fmt.Errorf("%w: %d outcomes for word %q", ErrMalformedFeedback, len(outcomes), word)
	}
	w, err := ParseWord(word)
	if err != nil {
		return Feedback{}, fmt.Errorf("%w: %w", ErrMalformedFeedback, err)
	}
	var o [WordLength]Outcome
	for i, v := range outcomes {
		if !v.Valid() {
			return Feedback{}, fmt.Errorf("%w: invalid outcome %d at position %d", ErrMalformedFeedback, v, i)
		}
		o[i] = v
	}
	return newFeedback(w, o), nil
}

// ParseFeedback builds a Feedback from a word and its 5-character wire code
func ParseFeedback(word, code string) (Feedback, error) {
	if len(code) != WordLength {
		return Feedback{}, fmt.Errorf("%w: hint %q has length %d", ErrMalformedFeedback, code, len(code))
	}
	outcomes := make([]Outcome, WordLength)
	for i := 0; i < WordLength; i++ {
		o, err := ParseOutcome(code[i])
		if err != nil {
			return Feedback{}, err
		}
		outcomes[i] = o
	}
	return NewFeedback(word, outcomes)
}

func newFeedback(w Word, o [WordLength]Outcome) Feedback {
	f := Feedback{word: w, outcomes: o}
	for i := range w {
		for j := range w {
			if w[j] == w[i] && o[j] != Absent {
				f.confirmed[i]++
			}
		}
	}
	return f
}

func (f Feedback) Word() Word {
	return f.word
}

// Code renders the outcomes in wire form, e.g. "Ggygg"
func (f Feedback) Code() string {
	var b strings.Builder
	for _, o := range f.outcomes {
		b.WriteByte(o.Code())
	}
	return b.String()
}

func (f Feedback) String() string {
	return f.word.String() + ":" + f.Code()
}

// IsSolved reports whether every letter is Correct
func (f Feedback) IsSolved() bool {
	for _, o := range f.outcomes {
		if o != Correct {
			return false
		}
	}
	return true
}

// Matches reports whether candidate could be the answer given this feedback
func (f Feedback) Matches(candidate Word) bool {
	for i, o := range f.outcomes {
		g := f.word[i]
		switch o {
		case Correct:
			if candidate[i] != g {
				return false
			}
		case Present:
			if candidate[i] == g || !candidate.Contains(g) {
				return false
			}
		default:
			if candidate.Count(g) != int(f.confirmed[i]) {
				return false
			}
		}
	}
	return true
}

// AllPatterns returns every possible outcome sequence for word, 243 in total
func AllPatterns(word Word) []Feedback {
	patterns := make([]Feedback, 0, NumPatterns)
	for n := 0; n < NumPatterns; n++ {
		var o [WordLength]Outcome
		v := n
		for i := WordLength - 1; i >= 0; i-- {
			o[i] = patternOrder[v%3]
			v /= 3
		}
		patterns = append(patterns, newFeedback(word, o))
	}
	return patterns
}

// Evaluate computes the feedback the puzzle gives when guess is played
// against target. Correct letters are marked first, then Present marks
// consume the remaining target letters left to right.
func Evaluate(guess, target Word) Feedback {
	var o [WordLength]Outcome
	var remaining [26]uint8
	for i := range guess {
		if guess[i] == target[i] {
			o[i] = Correct
		} else {
			remaining[target[i]-'a']++
		}
	}
	for i, c := range guess {
		if o[i] == Correct {
			continue
		}
		if remaining[c-'a'] > 0 {
			o[i] = Present
			remaining[c-'a']--
		}
	}
	return newFeedback(guess, o)
}
