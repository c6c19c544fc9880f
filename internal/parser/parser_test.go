package parser

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cardscan-io/cardscan/internal/providers"
)

type fakeProvider struct {
	response string
	err      error
	prompt   string
}

func (f *fakeProvider) Complete(ctx context.Context, config providers.Config) (string, error) {
	f.prompt = config.Prompt
	return f.response, f.err
}

func TestExtractCoercesScalarsToLists(t *testing.T) {
	provider := &fakeProvider{response: `{
		"first_name": "John",
		"last_name": "Smith",
		"company_name": "Acme Inc",
		"position": "CEO",
		"email": "john@acme.com",
		"mobile": "+1 555 123 4567",
		"website": "www.acme.com"
	}`}
	svc := NewService(provider, "test-model")

	card, err := svc.Extract(context.Background(), "John Smith\nAcme Inc\nCEO")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !reflect.DeepEqual(card.Email, []string{"john@acme.com"}) {
		t.Fatalf("email not coerced to list: %#v", card.Email)
	}
	if !reflect.DeepEqual(card.Mobile, []string{"+15551234567"}) {
		t.Fatalf("mobile not normalized: %#v", card.Mobile)
	}
	if !reflect.DeepEqual(card.Website, []string{"https://www.acme.com"}) {
		t.Fatalf("website scheme not backfilled: %#v", card.Website)
	}
}

func TestExtractStripsMarkdownFences(t *testing.T) {
	provider := &fakeProvider{response: "```json\n{\"first_name\":\"Jane\",\"last_name\":\"Doe\",\"company_name\":\"Initech\",\"position\":\"CTO\"}\n```"}
	svc := NewService(provider, "test-model")

	card, err := svc.Extract(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if card.FirstName != "Jane" || card.Position != "CTO" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestExtractRejectsProse(t *testing.T) {
	provider := &fakeProvider{response: "I could not find any business card data in this text, sorry."}
	svc := NewService(provider, "test-model")

	card, err := svc.Extract(context.Background(), "gibberish")
	if !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}
	if card != nil {
		t.Fatalf("expected nil card, got %+v", card)
	}
}

func TestExtractRejectsInvalidEmail(t *testing.T) {
	provider := &fakeProvider{response: `{"first_name":"A","last_name":"B","company_name":"C","position":"D","email":["not-an-email"]}`}
	svc := NewService(provider, "test-model")

	if card, err := svc.Extract(context.Background(), "text"); err == nil || card != nil {
		t.Fatalf("expected validation failure, got card=%+v err=%v", card, err)
	}
}

func TestExtractRejectsMissingRequiredField(t *testing.T) {
	provider := &fakeProvider{response: `{"first_name":"A","company_name":"C","position":"D"}`}
	svc := NewService(provider, "test-model")

	if card, err := svc.Extract(context.Background(), "text"); err == nil || card != nil {
		t.Fatalf("expected validation failure, got card=%+v err=%v", card, err)
	}
}

func TestExtractEmptyRequiredFieldsAllowed(t *testing.T) {
	provider := &fakeProvider{response: `{"first_name":"","last_name":"","company_name":"Acme Inc","position":""}`}
	svc := NewService(provider, "test-model")

	card, err := svc.Extract(context.Background(), "just a logo")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if card.FirstName != "" || card.CompanyName != "Acme Inc" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestExtractDropsUnknownKeysAndNullOptionals(t *testing.T) {
	provider := &fakeProvider{response: `{
		"first_name": "John",
		"last_name": "Smith",
		"company_name": "Acme Inc",
		"position": "CEO",
		"department": null,
		"fax": "555-0000",
		"confidence": 0.9
	}`}
	svc := NewService(provider, "test-model")

	card, err := svc.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if card.Department != "" {
		t.Fatalf("null department should stay empty, got %q", card.Department)
	}
}

func TestExtractProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	svc := NewService(provider, "test-model")

	if card, err := svc.Extract(context.Background(), "text"); err == nil || card != nil {
		t.Fatalf("expected provider error to surface, got card=%+v err=%v", card, err)
	}
}

func TestExtractEmbedsTextInPrompt(t *testing.T) {
	provider := &fakeProvider{response: `{"first_name":"A","last_name":"B","company_name":"C","position":"D"}`}
	svc := NewService(provider, "test-model")

	text := "John Smith\nAcme Inc\n\n--- CARD SEPARATOR ---\n\njohn@acme.com"
	if _, err := svc.Extract(context.Background(), text); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(provider.prompt, text) {
		t.Fatal("prompt does not embed the card text")
	}
	if !strings.Contains(provider.prompt, "JSON Only") {
		t.Fatal("prompt missing JSON-only instruction")
	}
}
