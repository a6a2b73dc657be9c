package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"wordle-bot/internal/solver"
	"wordle-bot/internal/wordle"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// ErrResourceUnavailable is returned when the dictionary or weight resource
// is missing, unreadable or holds no usable data
var ErrResourceUnavailable = errors.New("resource unavailable")

// Loader supplies the raw dictionary and optional weight resource
type Loader interface {
	// LoadWords returns the raw word entries in resource order
	LoadWords(ctx context.Context) ([]string, error)

	// LoadWeights returns nil without error when no weight resource is configured
	LoadWeights(ctx context.Context) (map[string]float64, error)
}

// Dictionary is the validated, read-only data handed to the solver
type Dictionary struct {
	Words   []wordle.Word
	Weights solver.WeightTable
}

// Load reads both resources through loader and validates them
func Load(ctx context.Context, loader Loader, logger *zap.Logger) (*Dictionary, error) {
	raw, err := loader.LoadWords(ctx)
	if err != nil {
		return nil, err
	}
	words, rejected := Normalize(raw)
	if rejected > 0 {
		logger.Warn("Dropped malformed dictionary entries",
			zap.Int("rejected", rejected),
			zap.Int("accepted", len(words)))
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: dictionary has no valid words", ErrResourceUnavailable)
	}

	weights, err := loader.LoadWeights(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("Dictionary loaded",
		zap.Int("words", len(words)),
		zap.Int("weights", len(weights)))

	return &Dictionary{
		Words:   words,
		Weights: weights,
	}, nil
}

// Normalize lowercases and validates entries, dropping malformed ones and
// duplicates while keeping the first-seen order
func Normalize(raw []string) ([]wordle.Word, int) {
	words := make([]wordle.Word, 0, len(raw))
	seen := make(map[wordle.Word]bool, len(raw))
	rejected := 0
	for _, s := range raw {
		w, err := wordle.ParseWord(strings.TrimSpace(s))
		if err != nil {
			rejected++
			continue
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words, rejected
}

// ParseWeights decodes a word-to-weight mapping. YAML and JSON are both
// accepted. Weights must be finite and non-negative, and no two keys may
// name the same word once normalized.
func ParseWeights(data []byte) (map[string]float64, error) {
	var raw map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	var keys yaml.MapSlice
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}

	weights := make(map[string]float64, len(raw))
	for _, item := range keys {
		k := fmt.Sprint(item.Key)
		v := raw[k]
		if err := validWeight(k, v); err != nil {
			return nil, err
		}
		w := NormalizeKey(k)
		if _, dup := weights[w]; dup {
			return nil, fmt.Errorf("duplicate weight for word %q", w)
		}
		weights[w] = v
	}
	return weights, nil
}

// NormalizeKey maps a weight key onto the form Normalize gives words
func NormalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func validWeight(word string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid weight %v for word %q", v, word)
	}
	return nil
}

// FileLoader reads a one-word-per-line dictionary and an optional weight file
type FileLoader struct {
	wordsPath   string
	weightsPath string
}

func NewFileLoader(wordsPath, weightsPath string) *FileLoader {
	return &FileLoader{
		wordsPath:   wordsPath,
		weightsPath: weightsPath,
	}
}

// LoadWords skips blank lines and lines starting with '#'
func (l *FileLoader) LoadWords(ctx context.Context) ([]string, error) {
	f, err := os.Open(l.wordsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open dictionary: %w", ErrResourceUnavailable, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read dictionary: %w", ErrResourceUnavailable, err)
	}
	return words, nil
}

func (l *FileLoader) LoadWeights(ctx context.Context) (map[string]float64, error) {
	if l.weightsPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.weightsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read weights: %w", ErrResourceUnavailable, err)
	}
	weights, err := ParseWeights(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	return weights, nil
}
