package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/ocr"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// Extractor runs OCR and the track-number rule over a batch of images
type Extractor struct {
	recognizer  ocr.Recognizer
	rule        Rule
	concurrency int
}

// NewExtractor creates an extractor. A concurrency below 1 uses DefaultConcurrency.
func NewExtractor(recognizer ocr.Recognizer, rule Rule, concurrency int) *Extractor {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Extractor{recognizer: recognizer, rule: rule, concurrency: concurrency}
}

// outcome is the per-image slot filled by a worker
type outcome struct {
	success *models.SuccessResp
	fail    *models.FailResp
}

// Extract processes every image and returns successes and failures in input order
func (e *Extractor) Extract(ctx context.Context, images []models.SelectedImage) models.ImageResult {
	start := time.Now()
	outcomes := make([]outcome, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, img := range images {
		g.Go(func() error {
			trackNumber, rect, err := e.ExtractOne(gctx, img)
			if err != nil {
				slog.Warn("Track number extraction failed", "id", img.ID, "file", img.File.Name, "err", err)
				fail := models.NewFailResp(img.ID, img.File)
				outcomes[i] = outcome{fail: &fail}
				return nil
			}
			slog.Info("Track number extracted", "id", img.ID, "file", img.File.Name, "track_number", trackNumber)
			success := models.NewSuccessResp(img.ID, trackNumber, img.File, rect)
			outcomes[i] = outcome{success: &success}
			return nil
		})
	}
	_ = g.Wait()

	result := models.NewImageResult([]models.SuccessResp{}, []models.FailResp{})
	for _, o := range outcomes {
		switch {
		case o.success != nil:
			result.Success = append(result.Success, *o.success)
		case o.fail != nil:
			result.Fail = append(result.Fail, *o.fail)
		}
	}

	slog.Info("Batch extracted",
		"images", len(images),
		"success", len(result.Success),
		"fail", len(result.Fail),
		"duration", time.Since(start))
	return result
}

// ExtractOne runs decode, OCR and the rule on a single image. ErrNoTrackNumber
// means the image was read but holds no track number; any other error means it
// could not be read.
func (e *Extractor) ExtractOne(ctx context.Context, img models.SelectedImage) (string, models.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return "", models.Rectangle{}, err
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(img.File.Data)); err != nil {
		return "", models.Rectangle{}, fmt.Errorf("failed to decode image: %w", err)
	}

	lines, err := e.recognizer.Recognize(ctx, img.Binary())
	if err != nil {
		return "", models.Rectangle{}, err
	}

	return e.rule.Find(lines)
}
