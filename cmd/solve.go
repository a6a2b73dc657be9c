package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"wordle-bot/internal/bootstrap"
	"wordle-bot/internal/controller"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var solveJSON bool

var solveCmd = &cobra.Command{
	Use:   "solve [word:code ...]",
	Short: "Rank next guesses for a feedback history",
	Long: `Prints up to five next guesses, best first. Each argument is one played
guess and its feedback code, e.g.

  wordle-bot solve tares:Ggggg touch:Gyggg

With no arguments the opening guesses are printed.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the response body of the HTTP API instead of one word per line")
}

// parseHintArgs splits word:code arguments into wire hints
func parseHintArgs(args []string) ([]controller.HintInput, error) {
	hints := make([]controller.HintInput, 0, len(args))
	for _, arg := range args {
		word, code, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("argument %q is not of the form word:code", arg)
		}
		hints = append(hints, controller.HintInput{Word: word, Hint: code})
	}
	return hints, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	hints, err := parseHintArgs(args)
	if err != nil {
		return err
	}
	history, err := controller.ParseHistory(hints)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	container, err := bootstrap.NewServiceContainer(ctx, cfg, bootstrap.GetServerModeOptions(cfg), logger)
	if err != nil {
		logger.Error("Failed to initialize services", zap.Error(err))
		return err
	}
	defer container.Close()

	guesses, err := container.Solver.Solve(ctx, history)
	if err != nil {
		return err
	}
	return printGuesses(cmd.OutOrStdout(), guesses, solveJSON)
}

func printGuesses(w io.Writer, guesses []string, asJSON bool) error {
	if asJSON {
		if guesses == nil {
			guesses = []string{}
		}
		return json.NewEncoder(w).Encode(controller.BestGuessesResponse{Guesses: guesses})
	}
	for _, g := range guesses {
		if _, err := fmt.Fprintln(w, g); err != nil {
			return err
		}
	}
	return nil
}
