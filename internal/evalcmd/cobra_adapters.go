package evalcmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dvorakchen/number-extracter/internal/extract"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command for evaluating extraction against a labeled dataset
func NewRunCmd() *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate track number extraction against labeled images",
		Long: `Run the extractor over every image of a labeled dataset and compare the
extracted track numbers with the labels.

The dataset is a JSONL or parquet file with id, image_path and track_number columns.
Leave track_number empty for images that carry no track number. Relative image
paths are resolved against --images (defaults to the dataset's directory).`,
		Example: `  # Evaluate 10 records with Ollama
  number-extracter eval run --dataset ./labels.jsonl --sample 10

  # Evaluate everything with OpenAI and keep a JSON copy of the results
  number-extracter eval run --dataset ./labels.parquet --sample -1 --provider openai --output-json results.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(cfg.datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", cfg.datasetPath)
			}
			if cfg.imagesDir == "" {
				cfg.imagesDir = filepath.Dir(cfg.datasetPath)
			}

			return executeRun(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cfg.datasetPath, "dataset", "", "Path to labeled dataset (.jsonl or .parquet)")
	cmd.Flags().StringVar(&cfg.imagesDir, "images", "", "Directory relative image paths are resolved against")
	cmd.Flags().IntVar(&cfg.sampleSize, "sample", 10, "Number of records to evaluate (-1 for all)")
	cmd.Flags().StringVar(&cfg.provider, "provider", "", "OCR provider (ollama, openai, or gemini)")
	cmd.Flags().StringVar(&cfg.model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&cfg.keyword, "keyword", extract.DefaultKeyword, "Keyword that precedes the track number")
	cmd.Flags().IntVar(&cfg.length, "length", extract.DefaultLength, "Number of digits in a track number")
	cmd.Flags().IntVar(&cfg.concurrency, "concurrency", extract.DefaultConcurrency, "Images evaluated in parallel")
	cmd.Flags().StringVar(&cfg.outputDir, "output-dir", "evals", "Directory for YAML results")
	cmd.Flags().StringVar(&cfg.outputJSON, "output-json", "", "Also save aggregate results as JSON to this path")

	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var datasetPath string
	var imagesDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect dataset records and check their images exist",
		Long: `Inspect records from a parquet or jsonl dataset file.

Each record is printed with its label and whether its image file can be found,
which helps catch broken paths before spending provider calls on a run.`,
		Example: `  # Inspect first 5 records
  number-extracter eval inspect --dataset ./labels.jsonl --limit 5

  # Inspect all records (no limit)
  number-extracter eval inspect --dataset ./labels.parquet --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Create a context that gets canceled on an interrupt signal (Ctrl+C)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if imagesDir == "" {
				imagesDir = filepath.Dir(datasetPath)
			}
			return executeInspect(ctx, datasetPath, imagesDir, limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().StringVar(&imagesDir, "images", "", "Directory relative image paths are resolved against")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
