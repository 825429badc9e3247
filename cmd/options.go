package cmd

import (
	"os"
	"strconv"

	"github.com/dvorakchen/number-extracter/internal/extract"
	"github.com/dvorakchen/number-extracter/internal/ocr"
	"github.com/spf13/cobra"
)

// extractOptions are the flags shared by every command that runs extraction
type extractOptions struct {
	provider    string
	model       string
	keyword     string
	length      int
	concurrency int
}

func (o *extractOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.provider, "provider", "", "OCR provider (ollama, openai, or gemini); defaults to $OCR_PROVIDER or ollama")
	cmd.Flags().StringVar(&o.model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().StringVar(&o.keyword, "keyword", "", "Keyword that precedes the track number; defaults to $TRACK_KEYWORD or "+extract.DefaultKeyword)
	cmd.Flags().IntVar(&o.length, "length", extract.DefaultLength, "Number of digits in a track number")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 0, "Images processed in parallel; defaults to $EXTRACT_CONCURRENCY or 4")
}

// build resolves env fallbacks after .env has been loaded by the root command
func (o *extractOptions) build() (*extract.Extractor, *ocr.Service, error) {
	if o.keyword == "" {
		o.keyword = envOr("TRACK_KEYWORD", extract.DefaultKeyword)
	}
	if o.length < 1 {
		o.length = extract.DefaultLength
	}
	if o.concurrency < 1 {
		o.concurrency = envInt("EXTRACT_CONCURRENCY", extract.DefaultConcurrency)
	}

	svc, err := ocr.NewService(o.provider, o.model)
	if err != nil {
		return nil, nil, err
	}
	rule := extract.Rule{Keyword: o.keyword, Length: o.length}
	return extract.NewExtractor(svc, rule, o.concurrency), svc, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}
