package evalcmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dvorakchen/number-extracter/internal/eval/dataset"
)

func executeInspect(ctx context.Context, datasetPath, imagesDir string, limit int, out io.Writer) error {
	loader := dataset.NewLoader(datasetPath)

	records, err := loader.LoadSample(limit)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	fmt.Fprintf(out, "Loaded %d records from %s\n", len(records), datasetPath)
	fmt.Fprintln(out, strings.Repeat("=", 80))

	missing := 0
	unlabeled := 0
	for i, record := range records {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		default:
		}

		path := record.ResolveImagePath(imagesDir)
		status := "ok"
		if _, err := os.Stat(path); err != nil {
			status = "MISSING"
			missing++
		}

		label := record.TrackNumber
		if !record.HasTrackNumber() {
			label = "(none)"
			unlabeled++
		}

		fmt.Fprintf(out, "%4d  %-20s %-16s %-8s %s\n", i+1, record.ID, label, status, path)
	}

	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintf(out, "Images missing: %d\n", missing)
	fmt.Fprintf(out, "Records without track number: %d\n", unlabeled)

	return nil
}
