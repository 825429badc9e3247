package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Outcome classifies one evaluated image
type Outcome string

const (
	OutcomeExact        Outcome = "exact"    // extracted number equals the label
	OutcomeMismatch     Outcome = "mismatch" // a number was extracted but differs
	OutcomeMissed       Outcome = "missed"   // a number was expected but none extracted
	OutcomeSpurious     Outcome = "spurious" // no number expected but one extracted
	OutcomeTrueNegative Outcome = "true_negative"
	OutcomeError        Outcome = "error" // the image could not be evaluated
)

// EvaluationResult represents the result for a single labeled image
type EvaluationResult struct {
	ID             string        `json:"id"`
	ImagePath      string        `json:"image_path"`
	Expected       string        `json:"expected"`
	Actual         string        `json:"actual"`
	Outcome        Outcome       `json:"outcome"`
	ProcessingTime time.Duration `json:"processing_time"`
	Error          string        `json:"error,omitempty"`
}

// Classify compares an extracted number with the label
func Classify(expected, actual string) Outcome {
	switch {
	case expected == "" && actual == "":
		return OutcomeTrueNegative
	case expected == "":
		return OutcomeSpurious
	case actual == "":
		return OutcomeMissed
	case expected == actual:
		return OutcomeExact
	default:
		return OutcomeMismatch
	}
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int
	ErrorCount   int
	Counts       map[Outcome]int

	// Accuracy is the share of evaluated images with a correct answer
	// (exact or true negative)
	Accuracy float64
	// Precision is exact / all extracted numbers
	Precision float64
	// Recall is exact / all labeled numbers
	Recall float64

	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	Results []EvaluationResult

	EvaluationDate time.Time
	Provider       string
	Model          string
}

// AggregateEvaluationResults aggregates multiple evaluation results
func AggregateEvaluationResults(results []EvaluationResult, provider, model string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Counts:         make(map[Outcome]int),
		Results:        results,
		EvaluationDate: time.Now(),
		Provider:       provider,
		Model:          model,
	}

	var totalDuration time.Duration
	for _, result := range results {
		totalDuration += result.ProcessingTime
		agg.Counts[result.Outcome]++
		if result.Outcome == OutcomeError {
			agg.ErrorCount++
		}
	}

	exact := agg.Counts[OutcomeExact]
	evaluated := agg.TotalRecords - agg.ErrorCount
	extracted := exact + agg.Counts[OutcomeMismatch] + agg.Counts[OutcomeSpurious]
	labeled := exact + agg.Counts[OutcomeMismatch] + agg.Counts[OutcomeMissed]

	agg.Accuracy = ratio(exact+agg.Counts[OutcomeTrueNegative], evaluated)
	agg.Precision = ratio(exact, extracted)
	agg.Recall = ratio(exact, labeled)

	agg.TotalProcessingTime = totalDuration
	if agg.TotalRecords > 0 {
		agg.AverageProcessingTime = totalDuration / time.Duration(agg.TotalRecords)
	}

	return agg
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0.0
	}
	return float64(n) / float64(d)
}

// PrintSummary prints a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "TRACK NUMBER EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider: %s\n", a.Provider)
	fmt.Fprintf(w, "Model: %s\n", a.Model)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OUTCOMES")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Total Records: %d\n", a.TotalRecords)
	for _, o := range []Outcome{OutcomeExact, OutcomeMismatch, OutcomeMissed, OutcomeSpurious, OutcomeTrueNegative, OutcomeError} {
		fmt.Fprintf(w, "  %-14s %d\n", o+":", a.Counts[o])
	}
	fmt.Fprintf(w, "Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Fprintf(w, "Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SCORES")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Accuracy:  %.2f%%\n", a.Accuracy*100)
	fmt.Fprintf(w, "Precision: %.2f%%\n", a.Precision*100)
	fmt.Fprintf(w, "Recall:    %.2f%%\n", a.Recall*100)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// SaveToJSON saves the aggregate results to a JSON file
func (a *AggregateResults) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(a); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}

	return nil
}
