package cmd

import (
	"io"
	"os"

	"github.com/dvorakchen/number-extracter/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var logLevel string
	var logClose io.Closer

	cmd := &cobra.Command{
		Use:   "number-extracter",
		Short: "Extract parcel track numbers from label photos",
		Long: `number-extracter reads photos of parcel shipping labels, recognizes their text with a
vision-capable LLM and pulls out the track number printed after "Sendungsnummer".

Results can be reviewed in the web interface and exported to xlsx, yaml or parquet.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			opts := logging.OptionsFromEnv()
			if logLevel != "" {
				opts.Level = logLevel
			}
			closer, err := logging.Setup(opts)
			if err != nil {
				return err
			}
			logClose = closer
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logClose != nil {
				_ = logClose.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $LOG_LEVEL")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newEvalCmd())

	cmd.SetErr(os.Stderr)
	return cmd
}
