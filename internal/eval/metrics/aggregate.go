package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/cardscan-io/cardscan/internal/models"
)

// EvaluationResult is the outcome of extracting one labeled card.
type EvaluationResult struct {
	ID             string
	CardText       string
	Extracted      *models.BusinessCard
	RawResponse    string
	Comparison     *CardComparison
	ProcessingTime time.Duration
	Error          string // set when extraction failed
}

// AggregateResults summarizes an evaluation run.
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	// Per-field average scores keyed by field name.
	FieldAverages map[string]float64

	OverallAccuracy float64

	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	Results []EvaluationResult

	EvaluationDate time.Time
	Provider       string
	Model          string
	SampleSize     int
}

// Aggregate rolls individual results up into run-level statistics.
func Aggregate(results []EvaluationResult, provider, model string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		FieldAverages:  make(map[string]float64),
		EvaluationDate: time.Now(),
		Provider:       provider,
		Model:          model,
		SampleSize:     len(results),
	}

	fieldTotals := make(map[string]float64)
	fieldCounts := make(map[string]int)
	totalOverallScore := 0.0
	var totalDuration time.Duration
	var successDuration time.Duration

	for _, result := range results {
		totalDuration += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += result.ProcessingTime

		if result.Comparison == nil {
			continue
		}

		for name, match := range result.Comparison.Fields {
			fieldTotals[name] += match.Score
			fieldCounts[name]++
		}
		totalOverallScore += result.Comparison.OverallScore
	}

	for name, total := range fieldTotals {
		agg.FieldAverages[name] = total / float64(fieldCounts[name])
	}

	if agg.SuccessCount > 0 {
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}
	agg.TotalProcessingTime = totalDuration

	return agg
}

// PrintSummary writes a human-readable summary to stdout.
func (a *AggregateResults) PrintSummary() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("CARD EXTRACTION EVALUATION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Provider: %s\n", a.Provider)
	fmt.Printf("Model: %s\n", a.Model)
	fmt.Printf("Sample Size: %d records\n", a.SampleSize)
	fmt.Println()

	fmt.Println("PROCESSING STATISTICS")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Total Records: %d\n", a.TotalRecords)
	if a.TotalRecords > 0 {
		fmt.Printf("Successful: %d (%.1f%%)\n", a.SuccessCount, float64(a.SuccessCount)/float64(a.TotalRecords)*100)
		fmt.Printf("Failed: %d (%.1f%%)\n", a.FailureCount, float64(a.FailureCount)/float64(a.TotalRecords)*100)
	}
	fmt.Printf("Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Printf("Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Println()

	fmt.Println("FIELD-LEVEL ACCURACY")
	fmt.Println(strings.Repeat("-", 70))
	for _, name := range fieldOrder {
		if avg, ok := a.FieldAverages[name]; ok {
			fmt.Printf("  %-18s %.2f%%\n", name+":", avg*100)
		}
	}
	fmt.Println()

	fmt.Println("OVERALL SCORE")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Println(strings.Repeat("=", 70))
}

var fieldOrder = []string{
	"first_name",
	"last_name",
	"company_name",
	"position",
	"department",
	"email",
	"mobile",
	"telephone",
	"website",
	"address",
	"extension",
}
