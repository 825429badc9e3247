package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dvorakchen/number-extracter/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Keyword     string `yaml:"keyword"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalScores holds the aggregate scores
type EvalScores struct {
	Accuracy  float64 `yaml:"accuracy"`
	Precision float64 `yaml:"precision"`
	Recall    float64 `yaml:"recall"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier string `yaml:"identifier"`
	ImagePath  string `yaml:"imagepath"`
	Expected   string `yaml:"expected"`
	Actual     string `yaml:"actual"`
	Outcome    string `yaml:"outcome"`
	Error      string `yaml:"error,omitempty"`
}

// EvalSpec represents the complete evaluation specification
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Scores  EvalScores   `yaml:"scores"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a YAML file in dir and returns its path
func SaveToYAML(dir, keyword, datasetPath string, agg *metrics.AggregateResults) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", dir, err)
	}

	timestamp := agg.EvaluationDate.Format("2006-01-02_15-04-05")
	if agg.EvaluationDate.IsZero() {
		timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	spec := EvalSpec{
		Config: EvalConfig{
			Provider:    agg.Provider,
			Model:       agg.Model,
			Keyword:     keyword,
			DatasetPath: datasetPath,
			SampleSize:  agg.TotalRecords,
			Timestamp:   timestamp,
		},
		Scores: EvalScores{
			Accuracy:  agg.Accuracy,
			Precision: agg.Precision,
			Recall:    agg.Recall,
		},
		Results: make([]EvalResult, 0, len(agg.Results)),
	}

	for _, r := range agg.Results {
		spec.Results = append(spec.Results, EvalResult{
			Identifier: r.ID,
			ImagePath:  r.ImagePath,
			Expected:   r.Expected,
			Actual:     r.Actual,
			Outcome:    string(r.Outcome),
			Error:      r.Error,
		})
	}

	// model names like "mistral-small3.2:24b" are not valid on every filesystem
	model := strings.NewReplacer(":", "_", "/", "_").Replace(agg.Model)
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", model, timestamp))

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
