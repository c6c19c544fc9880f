package evalcmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cardscan-io/cardscan/internal/eval/dataset"
	"github.com/cardscan-io/cardscan/internal/eval/metrics"
	"github.com/cardscan-io/cardscan/internal/eval/results"
	"github.com/cardscan-io/cardscan/internal/models"
)

// CardExtractor runs card text through structured extraction. Satisfied by
// parser.Service.
type CardExtractor interface {
	Extract(ctx context.Context, text string) (*models.BusinessCard, error)
}

// Options configures an evaluation run.
type Options struct {
	DatasetPath string
	OutputDir   string
	Provider    string
	Model       string
	Temperature float64
	SampleSize  int // 0 means the whole dataset
	Concurrency int
}

// Run evaluates the extractor against a labeled dataset, prints a summary,
// and writes a YAML report.
func Run(ctx context.Context, extractor CardExtractor, opts Options) error {
	slog.Info("Starting evaluation run", "dataset", opts.DatasetPath, "provider", opts.Provider, "model", opts.Model)

	records, err := dataset.NewLoader(opts.DatasetPath).LoadSample(opts.SampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("dataset %s contains no records", opts.DatasetPath)
	}

	slog.Info("Dataset loaded", "records", len(records))

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.EvaluationResult, len(records))

	for i, record := range records {
		wg.Add(1)
		go func(idx int, record dataset.Record) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Info("Processing record", "id", record.ID, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			resultsChan <- processRecord(ctx, extractor, record)
		}(i, record)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	evalResults := make([]metrics.EvaluationResult, 0, len(records))
	for result := range resultsChan {
		evalResults = append(evalResults, result)
	}

	agg := metrics.Aggregate(evalResults, opts.Provider, opts.Model)
	agg.PrintSummary()

	path, err := results.SaveToYAML(opts.OutputDir, opts.Provider, opts.Model, opts.DatasetPath, opts.Temperature, len(records), evalResults)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	fmt.Printf("\nResults saved to: %s\n", path)

	return nil
}

func processRecord(ctx context.Context, extractor CardExtractor, record dataset.Record) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ID:       record.ID,
		CardText: record.CardText,
	}

	start := time.Now()
	card, err := extractor.Extract(ctx, record.CardText)
	result.ProcessingTime = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Extracted = card
	result.Comparison = metrics.CompareCards(record.Expected.Card(), card)

	return result
}
