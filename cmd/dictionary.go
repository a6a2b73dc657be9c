package main

import (
	"fmt"
	"io"
	"os"

	"wordle-bot/internal/bootstrap"
	"wordle-bot/internal/dictionary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateWeightsCmd = &cobra.Command{
	Use:   "migrate-weights <legacy-file> [output]",
	Short: "Convert the legacy frequency file into a YAML weight mapping",
	Long: `Reads the legacy frequency file, an object literal whose keys are not
quoted, and writes it as a word: weight YAML mapping usable as
dictionary.weights_path. Writes to stdout when no output path is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMigrateWeights,
}

var (
	importWordsPath   string
	importWeightsPath string
)

var importWordsCmd = &cobra.Command{
	Use:   "import-words",
	Short: "Load a dictionary file and its weights into MySQL",
	Long: `Validates a one-word-per-line dictionary file and an optional weight file,
then upserts them into the <dictionary.name>_words table so the server can run
with dictionary.source: mysql.`,
	Args: cobra.NoArgs,
	RunE: runImportWords,
}

func init() {
	importWordsCmd.Flags().StringVar(&importWordsPath, "words", "", "Dictionary file (default: dictionary.words_path)")
	importWordsCmd.Flags().StringVar(&importWeightsPath, "weights", "", "Weight file (default: dictionary.weights_path)")
}

func runMigrateWeights(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open legacy weights: %w", err)
	}
	defer in.Close()

	var out io.Writer = cmd.OutOrStdout()
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	n, err := dictionary.MigrateLegacyWeights(in, out)
	if err != nil {
		return err
	}
	logger.Info("Migrated legacy weights",
		zap.String("source", args[0]),
		zap.Int("entries", n))
	return nil
}

func runImportWords(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	wordsPath := importWordsPath
	if wordsPath == "" {
		wordsPath = cfg.Dictionary.WordsPath
	}
	weightsPath := importWeightsPath
	if weightsPath == "" {
		weightsPath = cfg.Dictionary.WeightsPath
	}
	if wordsPath == "" {
		return fmt.Errorf("no dictionary file given: set --words or dictionary.words_path")
	}

	dict, err := dictionary.Load(ctx, dictionary.NewFileLoader(wordsPath, weightsPath), logger)
	if err != nil {
		return err
	}

	container, err := bootstrap.NewServiceContainer(ctx, cfg, bootstrap.GetImportOptions(), logger)
	if err != nil {
		logger.Error("Failed to initialize services", zap.Error(err))
		return err
	}
	defer container.Close()

	n, err := container.WordRepo.Import(ctx, dict)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d words into %s\n", n, cfg.Dictionary.Name)
	return nil
}
