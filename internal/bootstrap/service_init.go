package bootstrap

import (
	"context"
	"fmt"

	"wordle-bot/internal/config"
	"wordle-bot/internal/db"
	"wordle-bot/internal/dictionary"
	"wordle-bot/internal/solver"

	"go.uber.org/zap"
)

// ServiceContainer holds the process-wide resources shared by every request
type ServiceContainer struct {
	// Database connection, nil unless MySQL is configured and enabled
	MySQLConn *db.MySQLConnection
	WordRepo  *db.WordRepository

	Dictionary *dictionary.Dictionary
	Solver     *solver.Solver

	logger *zap.Logger
}

// ServiceInitOptions configures which services to initialize
type ServiceInitOptions struct {
	EnableMySQL  bool
	RequireMySQL bool // If true, fail if MySQL is not available

	// SkipSolver leaves Dictionary and Solver nil, for commands that only
	// touch storage
	SkipSolver bool
}

// NewServiceContainer initializes all requested services based on options
func NewServiceContainer(ctx context.Context, cfg *config.Config, opts ServiceInitOptions, logger *zap.Logger) (*ServiceContainer, error) {
	container := &ServiceContainer{
		logger: logger,
	}

	if cfg.Dictionary.Source == config.SourceMySQL {
		opts.EnableMySQL = true
		opts.RequireMySQL = true
	}

	if opts.EnableMySQL && cfg.MySQL.Host != "" {
		conn, err := initMySQL(ctx, cfg, logger)
		if err != nil {
			if opts.RequireMySQL {
				return nil, fmt.Errorf("MySQL initialization failed (required): %w", err)
			}
			logger.Warn("MySQL initialization failed, continuing without it", zap.Error(err))
		} else {
			container.MySQLConn = conn
			container.WordRepo = db.NewWordRepository(conn.GetDB(), cfg.Dictionary.Name, logger)
		}
	} else if opts.RequireMySQL {
		return nil, fmt.Errorf("MySQL configuration is required but not provided")
	}

	if opts.SkipSolver {
		return container, nil
	}

	loader, err := container.loader(cfg)
	if err != nil {
		container.Close()
		return nil, err
	}

	container.Dictionary, err = dictionary.Load(ctx, loader, logger)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("dictionary initialization failed: %w", err)
	}

	var weights solver.WeightSource
	if container.Dictionary.Weights != nil {
		weights = container.Dictionary.Weights
	}
	container.Solver, err = solver.New(container.Dictionary.Words, weights, SolverOptions(cfg.Solver), logger)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("solver initialization failed: %w", err)
	}

	logger.Info("Solver initialized",
		zap.String("source", cfg.Dictionary.Source),
		zap.Int("words", container.Solver.DictionarySize()),
		zap.Int("weights", len(container.Dictionary.Weights)))

	return container, nil
}

func (sc *ServiceContainer) loader(cfg *config.Config) (dictionary.Loader, error) {
	switch cfg.Dictionary.Source {
	case config.SourceMySQL:
		if sc.WordRepo == nil {
			return nil, fmt.Errorf("dictionary source is mysql but no connection is available")
		}
		return sc.WordRepo, nil
	default:
		return dictionary.NewFileLoader(cfg.Dictionary.WordsPath, cfg.Dictionary.WeightsPath), nil
	}
}

// Close cleans up all resources
func (sc *ServiceContainer) Close() {
	if sc.MySQLConn != nil {
		if err := sc.MySQLConn.Close(); err != nil {
			sc.logger.Warn("Failed to close MySQL connection", zap.Error(err))
			return
		}
		sc.logger.Info("MySQL connection closed")
	}
}

// SolverOptions maps the solver config section onto engine options. Zero
// values fall through to the engine defaults.
func SolverOptions(cfg config.SolverConfig) solver.Options {
	return solver.Options{
		OpeningGuesses: cfg.OpeningGuesses,
		TopK:           cfg.TopK,
		SampleFloor:    cfg.SampleFloor,
		SampleDivisor:  cfg.SampleDivisor,
		Workers:        cfg.Workers,
		MissingWeight:  cfg.MissingWeight,
	}
}

func initMySQL(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.MySQLConnection, error) {
	conn, err := db.NewMySQLConnection(ctx, cfg.MySQL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MySQL connection: %w", err)
	}
	logger.Info("MySQL connection established",
		zap.String("host", cfg.MySQL.Host),
		zap.String("database", cfg.MySQL.Database))
	return conn, nil
}

// GetServerModeOptions returns ServiceInitOptions for serve, solve and eval
func GetServerModeOptions(cfg *config.Config) ServiceInitOptions {
	return ServiceInitOptions{
		EnableMySQL:  cfg.Dictionary.Source == config.SourceMySQL,
		RequireMySQL: cfg.Dictionary.Source == config.SourceMySQL,
	}
}

// GetImportOptions returns ServiceInitOptions for loading words into MySQL
func GetImportOptions() ServiceInitOptions {
	return ServiceInitOptions{
		EnableMySQL:  true,
		RequireMySQL: true,
		SkipSolver:   true,
	}
}
