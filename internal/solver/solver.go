package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"wordle-bot/internal/wordle"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyDictionary is returned when a Solver is built without words
var ErrEmptyDictionary = errors.New("dictionary is empty")

// ErrInvalidMissingWeight is returned for a negative or non-finite MissingWeight
var ErrInvalidMissingWeight = errors.New("missing weight must be finite and non-negative")

// DefaultOpeningGuesses is the precomputed ranking returned before any
// feedback exists. Scoring the unconstrained dictionary always yields it.
var DefaultOpeningGuesses = []string{"tares", "lares", "rales", "rates", "teras"}

// DefaultMissingWeight is the multiplier for words absent from the weight
// resource, and for every word when there is no resource
const DefaultMissingWeight = 1.0

// Options tunes a Solver. Zero values and nil take the defaults.
type Options struct {
	OpeningGuesses []string
	TopK           int
	SampleFloor    int
	SampleDivisor  int
	Workers        int

	// MissingWeight applies to words without a weight entry. nil selects
	// DefaultMissingWeight; an explicit 0 excludes unweighted words.
	MissingWeight *float64

	// NewRand returns the random source for one solve. It must be safe to
	// call concurrently.
	NewRand func() *rand.Rand
}

func (o Options) withDefaults() Options {
	if len(o.OpeningGuesses) == 0 {
		o.OpeningGuesses = DefaultOpeningGuesses
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.SampleFloor <= 0 {
		o.SampleFloor = DefaultSampleFloor
	}
	if o.SampleDivisor <= 0 {
		o.SampleDivisor = DefaultSampleDivisor
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MissingWeight == nil {
		w := DefaultMissingWeight
		o.MissingWeight = &w
	}
	if o.NewRand == nil {
		o.NewRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return o
}

// Solver ranks next guesses for a feedback history. It holds only read-only
// state and is safe for concurrent use; every Solve builds its own store.
type Solver struct {
	dictionary    []wordle.Word
	weights       WeightSource
	missingWeight float64
	opening       []string
	sampler       Sampler
	opts          Options
	logger        *zap.Logger
}

// New creates a Solver over dictionary. weights may be nil.
func New(dictionary []wordle.Word, weights WeightSource, opts Options, logger *zap.Logger) (*Solver, error) {
	if len(dictionary) == 0 {
		return nil, ErrEmptyDictionary
	}
	opts = opts.withDefaults()
	if w := *opts.MissingWeight; w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMissingWeight, w)
	}

	opening := make([]string, 0, len(opts.OpeningGuesses))
	for _, s := range opts.OpeningGuesses {
		w, err := wordle.ParseWord(s)
		if err != nil {
			return nil, fmt.Errorf("invalid opening guess: %w", err)
		}
		opening = append(opening, w.String())
	}

	return &Solver{
		dictionary:    dictionary,
		weights:       weights,
		missingWeight: *opts.MissingWeight,
		opening:       opening,
		sampler:       Sampler{Floor: opts.SampleFloor, Divisor: opts.SampleDivisor},
		opts:          opts,
		logger:        logger,
	}, nil
}

// DictionarySize returns the number of words the solver replays history against
func (s *Solver) DictionarySize() int {
	return len(s.dictionary)
}

// Solve returns up to TopK guesses, highest expected information gain first
func (s *Solver) Solve(ctx context.Context, history []wordle.Feedback) ([]string, error) {
	if len(history) == 0 {
		return slices.Clone(s.opening), nil
	}

	start := time.Now()
	store := NewCandidateStore(s.dictionary)
	store.ApplyHistory(history)
	live := store.Words()
	reference := s.sampler.Sample(live, s.opts.NewRand())

	scored, err := s.scoreAll(ctx, live, reference)
	if err != nil {
		return nil, err
	}

	top := NewTopK(s.opts.TopK)
	for _, c := range scored {
		top.Offer(c)
	}
	ranked := top.DrainDescending()
	guesses := make([]string, len(ranked))
	for i, c := range ranked {
		guesses[i] = c.Word.String()
	}

	s.logger.Debug("Solved feedback history",
		zap.Int("history_len", len(history)),
		zap.Int("candidates", len(live)),
		zap.Int("reference_size", len(reference)),
		zap.Strings("guesses", guesses),
		zap.Duration("elapsed", time.Since(start)))

	return guesses, nil
}

// scoreAll scores every live candidate against reference on a bounded pool.
// Workers write disjoint ranges of the result slice.
func (s *Solver) scoreAll(ctx context.Context, live, reference []wordle.Word) ([]Candidate, error) {
	scored := make([]Candidate, len(live))
	if len(live) == 0 {
		return scored, nil
	}

	chunk := max(1, len(live)/(s.opts.Workers*4))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for lo := 0; lo < len(live); lo += chunk {
		hi := min(lo+chunk, len(live))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				w := live[i]
				scored[i] = Candidate{
					Word:  w,
					Score: Score(w, reference, s.weight(w)),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func (s *Solver) weight(w wordle.Word) float64 {
	if s.weights == nil {
		return s.missingWeight
	}
	if v, ok := s.weights.Weight(w.String()); ok {
		return v
	}
	return s.missingWeight
}
