package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cardscan-io/cardscan/internal/models"
	"github.com/cardscan-io/cardscan/internal/storage"
)

func newExportRequest(sessionID string) *http.Request {
	form := url.Values{}
	if sessionID != "" {
		form.Set("session_id", sessionID)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/export-csv", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestExportCSVUnknownSession(t *testing.T) {
	h := New(testConfig(t), storage.New(), &fakeExtractor{}, &fakeParser{})

	rec := httptest.NewRecorder()
	h.HandleExportCSV(rec, newExportRequest("nobody"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExportCSVRequiresSessionID(t *testing.T) {
	h := New(testConfig(t), storage.New(), &fakeExtractor{}, &fakeParser{})

	rec := httptest.NewRecorder()
	h.HandleExportCSV(rec, newExportRequest(""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExportCSVReturnsAttachmentAndClearsSession(t *testing.T) {
	store := storage.New()
	store.Append("s1", &models.BusinessCard{
		FirstName:   "John",
		LastName:    "Smith",
		CompanyName: "Acme Inc",
		Position:    "CEO",
		Email:       []string{"john@acme.com"},
	})
	h := New(testConfig(t), store, &fakeExtractor{}, &fakeParser{})

	rec := httptest.NewRecorder()
	h.HandleExportCSV(rec, newExportRequest("s1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("Content-Type = %q", got)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, `attachment; filename="business_cards_`) {
		t.Fatalf("Content-Disposition = %q", disposition)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, `"first_name"`) {
		t.Fatalf("missing header row: %q", body)
	}
	if !strings.Contains(body, `"John"`) || !strings.Contains(body, `"Acme Inc"`) {
		t.Fatalf("missing card row: %q", body)
	}

	// One-shot: the same session must be gone afterwards.
	rec = httptest.NewRecorder()
	h.HandleExportCSV(rec, newExportRequest("s1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second export should 404, got %d", rec.Code)
	}
}

func TestExportCSVMethodNotAllowed(t *testing.T) {
	h := New(testConfig(t), storage.New(), &fakeExtractor{}, &fakeParser{})

	rec := httptest.NewRecorder()
	h.HandleExportCSV(rec, httptest.NewRequest(http.MethodGet, "/api/export-csv", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
