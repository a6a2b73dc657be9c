package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wordle-bot/internal/wordle"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTurns matches the puzzle's six attempts
const DefaultMaxTurns = 6

// Solver ranks next guesses for a feedback history
type Solver interface {
	Solve(ctx context.Context, history []wordle.Feedback) ([]string, error)
}

// GameResult records one simulated game
type GameResult struct {
	Target  string   `json:"target"`
	Guesses []string `json:"guesses"`
	Codes   []string `json:"codes"`
	Solved  bool     `json:"solved"`
	Turns   int      `json:"turns"`
}

// Summary aggregates a batch of games
type Summary struct {
	Games    int         `json:"games"`
	Solved   int         `json:"solved"`
	Failed   int         `json:"failed"`
	AvgTurns float64     `json:"avg_turns"` // over solved games
	MaxTurns int         `json:"max_turns"`
	Turns    map[int]int `json:"turns_histogram"`
}

// Simulator plays the solver's top guess against known targets
type Simulator struct {
	solver   Solver
	maxTurns int
	logger   *zap.Logger
}

func NewSimulator(solver Solver, maxTurns int, logger *zap.Logger) *Simulator {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Simulator{
		solver:   solver,
		maxTurns: maxTurns,
		logger:   logger,
	}
}

// Play runs one game. It stops early when the solver has no candidates left,
// which happens when target is not in the dictionary.
func (s *Simulator) Play(ctx context.Context, target wordle.Word) (GameResult, error) {
	result := GameResult{Target: target.String()}
	var history []wordle.Feedback

	for turn := 1; turn <= s.maxTurns; turn++ {
		guesses, err := s.solver.Solve(ctx, history)
		if err != nil {
			return result, fmt.Errorf("turn %d for %s: %w", turn, target, err)
		}
		if len(guesses) == 0 {
			s.logger.Debug("No candidates left", zap.String("target", result.Target), zap.Int("turn", turn))
			break
		}
		guess, err := wordle.ParseWord(guesses[0])
		if err != nil {
			return result, fmt.Errorf("solver returned %q: %w", guesses[0], err)
		}

		f := wordle.Evaluate(guess, target)
		history = append(history, f)
		result.Guesses = append(result.Guesses, guess.String())
		result.Codes = append(result.Codes, f.Code())
		result.Turns = turn
		if f.IsSolved() {
			result.Solved = true
			break
		}
	}
	return result, nil
}

// Run plays every target on a bounded pool of workers. onDone, when set, is
// called once per finished game from the worker goroutine.
func (s *Simulator) Run(ctx context.Context, targets []wordle.Word, workers int, onDone func(GameResult)) ([]GameResult, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]GameResult, len(targets))
	var mu sync.Mutex
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, target := range targets {
		g.Go(func() error {
			res, err := s.Play(gctx, target)
			if err != nil {
				return err
			}
			results[i] = res
			if onDone != nil {
				mu.Lock()
				onDone(res)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Simulation finished",
		zap.Int("games", len(targets)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

// Summarize computes aggregate statistics over results
func Summarize(results []GameResult) Summary {
	sum := Summary{
		Games: len(results),
		Turns: make(map[int]int),
	}
	total := 0
	for _, r := range results {
		if !r.Solved {
			sum.Failed++
			continue
		}
		sum.Solved++
		sum.Turns[r.Turns]++
		total += r.Turns
		sum.MaxTurns = max(sum.MaxTurns, r.Turns)
	}
	if sum.Solved > 0 {
		sum.AvgTurns = float64(total) / float64(sum.Solved)
	}
	return sum
}
