package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dvorakchen/number-extracter/internal/export"
	"github.com/dvorakchen/number-extracter/internal/images"
	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var output string
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract [files or directories...]",
		Short: "Extract track numbers from label images on disk",
		Long: `Runs OCR over the given images (directories are expanded to the jpg, png and gif
files they contain) and prints one line per image. With --output the successful
results are also written to an xlsx, yaml or parquet file, chosen by extension.`,
		Example: `  # Print track numbers for a folder of photos
  number-extracter extract ./labels

  # Write a spreadsheet with the label image next to each track number
  number-extracter extract ./labels --output numbers.xlsx --provider openai`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var format export.Format
			if output != "" {
				f, err := export.ParseFormat(output)
				if err != nil {
					return err
				}
				format = f
			}

			extractor, _, err := opts.build()
			if err != nil {
				return err
			}

			files, err := images.LoadPaths(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no supported images found")
			}

			result := extractor.Extract(cmd.Context(), models.SelectImages(files))

			out := cmd.OutOrStdout()
			for _, s := range result.Success {
				fmt.Fprintf(out, "%s\t%s\n", s.File.Name, s.TrackNumber)
			}
			for _, f := range result.Fail {
				fmt.Fprintf(out, "%s\tFAILED\n", f.File.Name)
			}
			fmt.Fprintf(out, "\n%d extracted, %d failed\n", len(result.Success), len(result.Fail))

			if output == "" {
				return nil
			}

			if err := writeExport(output, format, result); err != nil {
				return err
			}
			slog.Info("Results saved", "output", output, "format", format, "rows", len(result.Success))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write results to this file (.xlsx, .yaml or .parquet)")
	opts.register(cmd)

	return cmd
}

// writeExport writes into a temp file next to path and renames it into place,
// so a failed export never leaves a partial file behind.
func writeExport(path string, format export.Format, result models.ImageResult) error {
	fh, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmp := fh.Name()

	if err := fh.Chmod(0644); err != nil {
		fh.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := export.Write(fh, format, result); err != nil {
		fh.Close()
		os.Remove(tmp)
		return err
	}
	if err := fh.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}
