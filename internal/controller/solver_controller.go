package controller

import (
	"context"
	"errors"
	"net/http"

	"wordle-bot/internal/wordle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Ranker produces the next-guess ranking for a feedback history
type Ranker interface {
	Solve(ctx context.Context, history []wordle.Feedback) ([]string, error)
}

type SolverController struct {
	ranker Ranker
	logger *zap.Logger
}

func NewSolverController(ranker Ranker, logger *zap.Logger) *SolverController {
	return &SolverController{
		ranker: ranker,
		logger: logger,
	}
}

// HintInput is one played guess and the feedback code the puzzle returned
type HintInput struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

type BestGuessesResponse struct {
	Guesses []string `json:"guesses"`
}

// ParseHistory converts wire hints into feedback records, failing on the
// first malformed entry
func ParseHistory(hints []HintInput) ([]wordle.Feedback, error) {
	history := make([]wordle.Feedback, 0, len(hints))
	for _, h := range hints {
		f, err := wordle.ParseFeedback(h.Word, h.Hint)
		if err != nil {
			return nil, err
		}
		history = append(history, f)
	}
	return history, nil
}

// BestGuesses handles POST /best_guesses
func (sc *SolverController) BestGuesses(c *gin.Context) {
	var request []HintInput
	if err := c.ShouldBindJSON(&request); err != nil {
		sc.logger.Warn("Invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	history, err := ParseHistory(request)
	if err != nil {
		sc.logger.Warn("Malformed feedback", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Malformed feedback",
			"details": err.Error(),
		})
		return
	}

	guesses, err := sc.ranker.Solve(c.Request.Context(), history)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sc.logger.Info("Request canceled by client", zap.Int("history_len", len(history)))
			c.Abort()
			return
		}
		sc.logger.Error("Failed to rank guesses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to rank guesses",
			"details": err.Error(),
		})
		return
	}
	if guesses == nil {
		guesses = []string{}
	}

	sc.logger.Info("Ranked guesses",
		zap.Int("history_len", len(history)),
		zap.Strings("guesses", guesses))

	c.JSON(http.StatusOK, BestGuessesResponse{Guesses: guesses})
}
