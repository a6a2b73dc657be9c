package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"wordle-bot/internal/dictionary"

	"go.uber.org/zap"
)

var (
	// Regex to match characters that are not alphanumeric or underscore
	invalidTableNameChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	edgeUnderscores       = regexp.MustCompile(`^_+|_+$`)
	repeatedUnderscores   = regexp.MustCompile(`_+`)
)

// sanitizeTableName converts a dictionary name to a valid SQL table name
func sanitizeTableName(name string) string {
	sanitized := invalidTableNameChars.ReplaceAllString(name, "_")
	sanitized = edgeUnderscores.ReplaceAllString(sanitized, "")
	return repeatedUnderscores.ReplaceAllString(sanitized, "_")
}

// WordRepository stores a dictionary and its optional weights in one table.
// It implements dictionary.Loader.
type WordRepository struct {
	db     *sql.DB
	name   string
	logger *zap.Logger
}

var _ dictionary.Loader = (*WordRepository)(nil)

func NewWordRepository(db *sql.DB, name string, logger *zap.Logger) *WordRepository {
	return &WordRepository{
		db:     db,
		name:   name,
		logger: logger,
	}
}

// tableName returns the sanitized table name with backticks for SQL safety
func (r *WordRepository) tableName() string {
	return fmt.Sprintf("`%s_words`", sanitizeTableName(r.name))
}

// EnsureTable creates the words table if it doesn't exist
func (r *WordRepository) EnsureTable(ctx context.Context) error {
	tableName := r.tableName()
	r.logger.Info("Ensuring words table exists", zap.String("table", tableName))

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INT AUTO_INCREMENT PRIMARY KEY,
			word CHAR(5) NOT NULL,
			weight DOUBLE NULL,
			UNIQUE KEY unique_word (word)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin
	`, tableName)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// LoadWords returns every word in insertion order
func (r *WordRepository) LoadWords(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT word FROM %s ORDER BY id", r.tableName())
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query words: %w", dictionary.ErrResourceUnavailable, err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("%w: failed to scan word: %w", dictionary.ErrResourceUnavailable, err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", dictionary.ErrResourceUnavailable, err)
	}
	return words, nil
}

// LoadWeights returns the rows with a non-NULL weight, or nil when there are none
func (r *WordRepository) LoadWeights(ctx context.Context) (map[string]float64, error) {
	query := fmt.Sprintf("SELECT word, weight FROM %s WHERE weight IS NOT NULL ORDER BY id", r.tableName())
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query weights: %w", dictionary.ErrResourceUnavailable, err)
	}
	defer rows.Close()

	var weights map[string]float64
	for rows.Next() {
		var w string
		var v float64
		if err := rows.Scan(&w, &v); err != nil {
			return nil, fmt.Errorf("%w: failed to scan weight: %w", dictionary.ErrResourceUnavailable, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: negative weight %v for word %q", dictionary.ErrResourceUnavailable, v, w)
		}
		if weights == nil {
			weights = make(map[string]float64)
		}
		key := dictionary.NormalizeKey(w)
		if _, dup := weights[key]; dup {
			return nil, fmt.Errorf("%w: duplicate weight for word %q", dictionary.ErrResourceUnavailable, key)
		}
		weights[key] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", dictionary.ErrResourceUnavailable, err)
	}
	return weights, nil
}

// Import upserts a validated dictionary in one transaction
func (r *WordRepository) Import(ctx context.Context, dict *dictionary.Dictionary) (int64, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (word, weight) VALUES (?, ?) ON DUPLICATE KEY UPDATE weight = VALUES(weight)",
		r.tableName()))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var imported int64
	for _, w := range dict.Words {
		var weight sql.NullFloat64
		if v, ok := dict.Weights.Weight(w.String()); ok {
			weight = sql.NullFloat64{Float64: v, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, w.String(), weight); err != nil {
			return imported, fmt.Errorf("failed to insert word %s: %w", w, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	r.logger.Info("Imported dictionary",
		zap.String("table", r.tableName()),
		zap.Int64("words", imported))
	return imported, nil
}
