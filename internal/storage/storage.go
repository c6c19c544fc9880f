// Package storage keeps per-session card lists in process memory. Session
// identifiers are caller-supplied and unauthenticated; two callers picking
// the same identifier share (and jointly export) one session. Growth is
// unbounded: records leave the store only through CSV export.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cardscan-io/cardscan/internal/models"
)

// ErrSessionNotFound is returned when an export targets a session with no
// stored records.
var ErrSessionNotFound = errors.New("no records for session")

// Store is an in-memory mapping from session identifier to the ordered list
// of cards scanned under it.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]*models.BusinessCard
}

// New creates an empty session store.
func New() *Store {
	return &Store{
		sessions: make(map[string][]*models.BusinessCard),
	}
}

// Append adds a card to the session's list, creating the session on first
// use. Records are append-only until the session is exported.
func (s *Store) Append(sessionID string, card *models.BusinessCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], card)
}

// Count returns the number of cards currently stored for the session.
func (s *Store) Count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID])
}

// ExportCSV serializes every card in the session as CSV and removes the
// session from the store. The read and the delete happen under one lock, so
// a concurrent append either lands before the export and is included, or
// after it and seeds a fresh session. Export is one-shot: a second call for
// the same session returns ErrSessionNotFound.
func (s *Store) ExportCSV(sessionID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.sessions[sessionID]
	if len(cards) == 0 {
		return nil, ErrSessionNotFound
	}

	var b strings.Builder
	writeRow(&b, models.FieldNames())
	for _, card := range cards {
		writeRow(&b, rowValues(card))
	}

	delete(s.sessions, sessionID)
	return []byte(b.String()), nil
}

// writeRow emits one CSV row with every field quoted, regardless of content.
func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

// rowValues flattens a card into column values matching models.FieldNames.
func rowValues(card *models.BusinessCard) []string {
	return []string{
		card.FirstName,
		card.MiddleName,
		card.LastName,
		card.CompanyName,
		card.Position,
		card.Department,
		joinList(card.Mobile),
		joinList(card.Telephone),
		joinList(card.Email),
		joinList(card.Website),
		card.Address,
		card.Extension,
		card.Notes,
	}
}

func joinList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return fmt.Sprint(values)
}
