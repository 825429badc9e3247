package evalcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dvorakchen/number-extracter/internal/eval/dataset"
	"github.com/dvorakchen/number-extracter/internal/eval/metrics"
	"github.com/dvorakchen/number-extracter/internal/eval/results"
	"github.com/dvorakchen/number-extracter/internal/extract"
	"github.com/dvorakchen/number-extracter/internal/images"
	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/ocr"
)

type runConfig struct {
	datasetPath string
	imagesDir   string
	sampleSize  int
	provider    string
	model       string
	keyword     string
	length      int
	concurrency int
	outputDir   string
	outputJSON  string
}

func executeRun(ctx context.Context, cfg runConfig, out io.Writer) error {
	slog.Info("Starting evaluation run", "dataset", cfg.datasetPath, "provider", cfg.provider, "model", cfg.model)

	loader := dataset.NewLoader(cfg.datasetPath)
	records, err := loader.LoadSample(cfg.sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "records", len(records))

	svc, err := ocr.NewService(cfg.provider, cfg.model)
	if err != nil {
		return err
	}

	rule := extract.Rule{Keyword: cfg.keyword, Length: cfg.length}
	extractor := extract.NewExtractor(svc, rule, 1)

	evalResults := evaluate(ctx, extractor, records, cfg.imagesDir, cfg.concurrency)

	agg := metrics.AggregateEvaluationResults(evalResults, svc.Provider, svc.Model)
	agg.PrintSummary(out)

	path, err := results.SaveToYAML(cfg.outputDir, cfg.keyword, cfg.datasetPath, agg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nEvaluation results saved to: %s\n", path)

	if cfg.outputJSON != "" {
		if err := agg.SaveToJSON(cfg.outputJSON); err != nil {
			return err
		}
		fmt.Fprintf(out, "JSON results saved to: %s\n", cfg.outputJSON)
	}

	return nil
}

// evaluate runs every record with bounded concurrency; results keep dataset order
func evaluate(ctx context.Context, extractor *extract.Extractor, records []dataset.LabeledImage, imagesDir string, concurrency int) []metrics.EvaluationResult {
	if concurrency < 1 {
		concurrency = 1
	}

	evalResults := make([]metrics.EvaluationResult, len(records))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, record := range records {
		wg.Add(1)
		go func(idx int, record dataset.LabeledImage) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing record", "id", record.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			evalResults[idx] = processItem(ctx, extractor, record, imagesDir)
		}(i, record)
	}

	wg.Wait()
	return evalResults
}

func processItem(ctx context.Context, extractor *extract.Extractor, record dataset.LabeledImage, imagesDir string) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ID:        record.ID,
		ImagePath: record.ResolveImagePath(imagesDir),
		Expected:  record.TrackNumber,
	}

	files, err := images.LoadPaths([]string{result.ImagePath})
	if err != nil || len(files) != 1 {
		result.Outcome = metrics.OutcomeError
		result.Error = fmt.Sprintf("failed to load image: %v", err)
		return result
	}

	start := time.Now()
	actual, _, err := extractor.ExtractOne(ctx, models.NewSelectedImage(files[0]))
	result.ProcessingTime = time.Since(start)

	if err != nil && !errors.Is(err, extract.ErrNoTrackNumber) {
		slog.Warn("Record could not be evaluated", "id", record.ID, "err", err)
		result.Outcome = metrics.OutcomeError
		result.Error = err.Error()
		return result
	}

	result.Actual = actual
	result.Outcome = metrics.Classify(result.Expected, result.Actual)

	return result
}
