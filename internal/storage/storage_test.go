package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cardscan-io/cardscan/internal/models"
)

func sampleCard(first string) *models.BusinessCard {
	return &models.BusinessCard{
		FirstName:   first,
		LastName:    "Smith",
		CompanyName: "Acme, Inc",
		Position:    "CEO",
		Email:       []string{first + "@acme.com"},
		Mobile:      []string{"+15551234567"},
	}
}

func TestExportCSVUnknownSession(t *testing.T) {
	store := New()
	if _, err := store.ExportCSV("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestExportCSVContent(t *testing.T) {
	store := New()
	store.Append("s1", sampleCard("John"))
	store.Append("s1", sampleCard("Jane"))

	data, err := store.ExportCSV("s1")
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != `"first_name","middle_name","last_name","company_name","position","department","mobile","telephone","email","website","address","extension","notes"` {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"John"`) || !strings.Contains(lines[1], `"Acme, Inc"`) {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
	// Every field fully quoted, including empties.
	if !strings.Contains(lines[1], `"",`) {
		t.Fatalf("empty fields should still be quoted: %s", lines[1])
	}
	if !strings.Contains(lines[2], "jane@acme.com") {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	store := New()
	card := sampleCard("John")
	card.Notes = `He said "hello"`
	store.Append("s1", card)

	data, err := store.ExportCSV("s1")
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if !strings.Contains(string(data), `"He said ""hello"""`) {
		t.Fatalf("quotes not doubled: %s", data)
	}
}

func TestExportCSVIsOneShot(t *testing.T) {
	store := New()
	store.Append("s1", sampleCard("John"))

	if _, err := store.ExportCSV("s1"); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if store.Count("s1") != 0 {
		t.Fatal("export should clear the session")
	}
	if _, err := store.ExportCSV("s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second export should report not found, got %v", err)
	}
}

func TestConcurrentAppendsAcrossSessions(t *testing.T) {
	store := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", n%4)
			for j := 0; j < 50; j++ {
				store.Append(session, sampleCard("John"))
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for i := 0; i < 4; i++ {
		total += store.Count(fmt.Sprintf("s%d", i))
	}
	if total != 400 {
		t.Fatalf("expected 400 stored cards, got %d", total)
	}
}

func TestConcurrentExportAndAppendSameSession(t *testing.T) {
	store := New()
	store.Append("s1", sampleCard("John"))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			store.Append("s1", sampleCard("Jane"))
		}
	}()
	exported := 0
	go func() {
		defer wg.Done()
		if data, err := store.ExportCSV("s1"); err == nil {
			exported = strings.Count(string(data), "\r\n") - 1
		}
	}()
	wg.Wait()

	// Whatever the interleaving, no card is lost or double-counted.
	if got := exported + store.Count("s1"); got != 101 {
		t.Fatalf("expected 101 cards across export and store, got %d", got)
	}
}
