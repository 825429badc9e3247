package cmd

import (
	"github.com/dvorakchen/number-extracter/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Track number extraction evaluation tools",
		Long: `Evaluation tools for measuring how accurately track numbers are extracted.

A dataset is a JSONL or parquet file of labeled images (id, image_path, track_number).
Runs compare extracted numbers against the labels and save YAML results.`,
	}

	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewInspectCmd())

	return cmd
}
