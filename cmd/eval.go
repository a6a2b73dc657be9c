package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"wordle-bot/internal/bootstrap"
	"wordle-bot/internal/dictionary"
	"wordle-bot/internal/service"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	evalTargets  string
	evalOutput   string
	evalLimit    int
	evalMaxTurns int
	evalWorkers  int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Simulate games against target words and report turn statistics",
	Long: `Plays the top-ranked guess each turn against every target word and
writes per-game results and a summary as JSON. Targets default to the loaded
dictionary.`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalTargets, "targets", "", "File with one target word per line (default: the dictionary)")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "eval_results.json", "Output file for evaluation results")
	evalCmd.Flags().IntVar(&evalLimit, "limit", 0, "Play at most this many targets (0 = all)")
	evalCmd.Flags().IntVar(&evalMaxTurns, "max-turns", service.DefaultMaxTurns, "Turns allowed per game")
	evalCmd.Flags().IntVar(&evalWorkers, "workers", runtime.GOMAXPROCS(0), "Games played concurrently")
}

// EvalResult is the document written to --output
type EvalResult struct {
	Games   []service.GameResult `json:"games"`
	Summary service.Summary      `json:"summary"`
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger.Info("Starting evaluation",
		zap.String("targets", evalTargets),
		zap.String("output_file", evalOutput))

	container, err := bootstrap.NewServiceContainer(ctx, cfg, bootstrap.GetServerModeOptions(cfg), logger)
	if err != nil {
		logger.Error("Failed to initialize services", zap.Error(err))
		return err
	}
	defer container.Close()

	targets := container.Dictionary.Words
	if evalTargets != "" {
		raw, err := dictionary.NewFileLoader(evalTargets, "").LoadWords(ctx)
		if err != nil {
			return err
		}
		var rejected int
		targets, rejected = dictionary.Normalize(raw)
		if rejected > 0 {
			logger.Warn("Dropped malformed targets", zap.Int("rejected", rejected))
		}
	}
	if evalLimit > 0 && evalLimit < len(targets) {
		targets = targets[:evalLimit]
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets to evaluate")
	}

	sim := service.NewSimulator(container.Solver, evalMaxTurns, logger)
	bar := progressbar.Default(int64(len(targets)), "playing")
	games, err := sim.Run(ctx, targets, evalWorkers, func(service.GameResult) {
		_ = bar.Add(1)
	})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	result := EvalResult{Games: games, Summary: service.Summarize(games)}
	outputData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(evalOutput, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("Evaluation complete",
		zap.String("output_file", evalOutput),
		zap.Int("games", len(games)))

	printSummary(cmd.OutOrStdout(), result.Summary, evalMaxTurns)
	return nil
}

// printSummary prints a human-readable summary to console
func printSummary(w io.Writer, sum service.Summary, maxTurns int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== EVALUATION SUMMARY ===")
	fmt.Fprintf(w, "Games:          %d\n", sum.Games)
	fmt.Fprintf(w, "Solved:         %d\n", sum.Solved)
	fmt.Fprintf(w, "Failed:         %d\n", sum.Failed)
	fmt.Fprintf(w, "Average turns:  %.3f\n", sum.AvgTurns)
	fmt.Fprintf(w, "Worst solve:    %d\n", sum.MaxTurns)
	fmt.Fprintln(w)
	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Fprintf(w, "  %d: %d\n", turn, sum.Turns[turn])
	}
}
