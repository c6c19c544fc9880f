package cmd

import (
	"github.com/cardscan-io/cardscan/internal/config"
	"github.com/cardscan-io/cardscan/internal/evalcmd"
	"github.com/cardscan-io/cardscan/internal/parser"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var (
		datasetPath  string
		outputDir    string
		providerName string
		model        string
		sampleSize   int
		concurrency  int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate extraction accuracy against a labeled dataset",
		Long: `Runs card text from a labeled dataset through the extraction pipeline
and scores the results field by field against the ground truth.

The dataset is a JSONL or Parquet file of records with the card's OCR
text and its hand-verified fields. A YAML report is written per run.`,
		Example: `  # Evaluate the configured provider against a dataset
  cardscan eval --dataset testdata/cards.jsonl

  # Evaluate a specific provider and model on a sample
  cardscan eval --dataset cards.parquet --provider ollama --sample 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if providerName == "" {
				providerName = cfg.Provider
			}

			provider, defaultModel, err := newProvider(providerName, cfg)
			if err != nil {
				return err
			}
			if model == "" {
				model = defaultModel
			}

			extractor := parser.NewService(provider, model)

			return evalcmd.Run(cmd.Context(), extractor, evalcmd.Options{
				DatasetPath: datasetPath,
				OutputDir:   outputDir,
				Provider:    providerName,
				Model:       model,
				Temperature: 0.1,
				SampleSize:  sampleSize,
				Concurrency: concurrency,
			})
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to labeled dataset (.jsonl or .parquet)")
	cmd.Flags().StringVar(&outputDir, "output", "evals", "Directory for YAML reports")
	cmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (gemini, ollama, openai)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to the provider's configured model)")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Evaluate only the first N records (0 = all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 3, "Number of concurrent extractions")

	if err := cmd.MarkFlagRequired("dataset"); err != nil {
		panic(err)
	}

	return cmd
}
