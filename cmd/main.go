package main

import (
	"errors"
	"fmt"
	"os"

	"wordle-bot/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/app.yaml"

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wordle-bot",
	Short: "Entropy-ranked next guesses for five-letter word puzzles",
	Long: `wordle-bot narrows a dictionary to the words consistent with the
feedback played so far and ranks next guesses by expected information gain.

Feedback codes use one symbol per letter:
  G  correct letter, correct position
  y  letter present elsewhere
  g  letter absent`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		logger, err = buildLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to app configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, solveCmd, evalCmd, migrateWeightsCmd, importWordsCmd)
}

// loadConfig falls back to built-in defaults when the default path is absent.
// An explicitly requested file must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

func buildLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	cfgZap := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	cfgZap.Level = level
	if verbose {
		cfgZap.Level.SetLevel(zapcore.DebugLevel)
	}
	cfgZap.OutputPaths = lc.OutputPaths
	return cfgZap.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
