package evalcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cardscan-io/cardscan/internal/models"
)

type fakeExtractor struct {
	card *models.BusinessCard
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) (*models.BusinessCard, error) {
	return f.card, f.err
}

func writeJSONLDataset(t *testing.T) string {
	t.Helper()
	content := `{"id":"card-001","card_text":"John Smith\nAcme Inc\nCEO","expected":{"first_name":"John","last_name":"Smith","company_name":"Acme Inc","position":"CEO"}}
{"id":"card-002","card_text":"Jane Doe\nGlobex\nCTO","expected":{"first_name":"Jane","last_name":"Doe","company_name":"Globex","position":"CTO"}}
`
	path := filepath.Join(t.TempDir(), "cards.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestRunWritesReport(t *testing.T) {
	outputDir := t.TempDir()
	extractor := &fakeExtractor{card: &models.BusinessCard{
		FirstName:   "John",
		LastName:    "Smith",
		CompanyName: "Acme Inc",
		Position:    "CEO",
	}}

	err := Run(context.Background(), extractor, Options{
		DatasetPath: writeJSONLDataset(t),
		OutputDir:   outputDir,
		Provider:    "gemini",
		Model:       "gemini-2.5-pro",
		Temperature: 0.1,
		Concurrency: 2,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".yaml") {
		t.Fatalf("expected one YAML report, got %v", entries)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	report := string(data)
	if !strings.Contains(report, "provider: gemini") {
		t.Errorf("report missing provider: %s", report)
	}
	if !strings.Contains(report, "card-001") || !strings.Contains(report, "card-002") {
		t.Errorf("report missing record identifiers: %s", report)
	}
}

func TestRunExtractorFailures(t *testing.T) {
	// All extractions fail; the run still completes and writes a report with
	// the failures excluded.
	outputDir := t.TempDir()
	extractor := &fakeExtractor{err: errors.New("provider timeout")}

	err := Run(context.Background(), extractor, Options{
		DatasetPath: writeJSONLDataset(t),
		OutputDir:   outputDir,
		Provider:    "ollama",
		Model:       "mistral-small3.2:24b",
		Concurrency: 1,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one report, got %d", len(entries))
	}

	data, _ := os.ReadFile(filepath.Join(outputDir, entries[0].Name()))
	if strings.Contains(string(data), "card-001") {
		t.Errorf("failed records should be excluded from the report: %s", data)
	}
}

func TestRunSampleLimit(t *testing.T) {
	outputDir := t.TempDir()
	extractor := &fakeExtractor{card: &models.BusinessCard{FirstName: "A", LastName: "B", CompanyName: "C", Position: "D"}}

	err := Run(context.Background(), extractor, Options{
		DatasetPath: writeJSONLDataset(t),
		OutputDir:   outputDir,
		Provider:    "gemini",
		Model:       "gemini-2.5-pro",
		SampleSize:  1,
		Concurrency: 1,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	entries, _ := os.ReadDir(outputDir)
	data, _ := os.ReadFile(filepath.Join(outputDir, entries[0].Name()))
	if strings.Contains(string(data), "card-002") {
		t.Errorf("sample limit ignored: %s", data)
	}
}

func TestRunMissingDataset(t *testing.T) {
	err := Run(context.Background(), &fakeExtractor{}, Options{
		DatasetPath: filepath.Join(t.TempDir(), "missing.jsonl"),
		OutputDir:   t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing dataset")
	}
}
