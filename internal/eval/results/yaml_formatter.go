package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cardscan-io/cardscan/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig records the run parameters alongside the results.
type EvalConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	DatasetPath string  `yaml:"datasetpath"`
	SampleSize  int     `yaml:"samplesize"`
	Timestamp   string  `yaml:"timestamp"`
}

// EvalResult is one card's outcome in the report.
type EvalResult struct {
	Identifier      string             `yaml:"identifier"`
	CardText        string             `yaml:"cardtext"`
	RawResponse     string             `yaml:"rawresponse,omitempty"`
	OverallScore    float64            `yaml:"overallscore"`
	FieldsMatched   int                `yaml:"fieldsmatched"`
	FieldsMissing   int                `yaml:"fieldsmissing"`
	FieldsIncorrect int                `yaml:"fieldsincorrect"`
	FieldScores     map[string]float64 `yaml:"fieldscores"`
}

// EvalReport is the complete YAML document for one run.
type EvalReport struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML writes evaluation results to a timestamped file under outputDir.
// Failed extractions are excluded; they show up in the printed summary only.
func SaveToYAML(outputDir, provider, model, datasetPath string, temperature float64, sampleSize int, results []metrics.EvaluationResult) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	report := EvalReport{
		Config: EvalConfig{
			Provider:    provider,
			Model:       model,
			Temperature: temperature,
			DatasetPath: datasetPath,
			SampleSize:  sampleSize,
			Timestamp:   timestamp,
		},
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		if r.Error != "" {
			continue
		}

		result := EvalResult{
			Identifier:  r.ID,
			CardText:    r.CardText,
			RawResponse: r.RawResponse,
		}

		if r.Comparison != nil {
			result.OverallScore = r.Comparison.OverallScore
			result.FieldsMatched = r.Comparison.FieldsMatched
			result.FieldsMissing = r.Comparison.FieldsMissing
			result.FieldsIncorrect = r.Comparison.FieldsIncorrect

			result.FieldScores = make(map[string]float64)
			for name, match := range r.Comparison.Fields {
				result.FieldScores[name] = match.Score
			}
		}

		report.Results = append(report.Results, result)
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("%s-%s.yaml", model, timestamp))

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
