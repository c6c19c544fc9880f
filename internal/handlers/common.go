package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cardscan-io/cardscan/internal/config"
	"github.com/cardscan-io/cardscan/internal/models"
	"github.com/cardscan-io/cardscan/internal/storage"
)

// TextExtractor is the OCR side of the pipeline as the handlers see it.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// CardParser is the LLM side of the pipeline as the handlers see it.
type CardParser interface {
	Extract(ctx context.Context, text string) (*models.BusinessCard, error)
}

// Handler owns the HTTP surface and sequences the extraction pipeline.
type Handler struct {
	cfg       *config.Config
	store     *storage.Store
	extractor TextExtractor
	parser    CardParser
}

// New wires a handler from its collaborators. The session store is injected
// rather than ambient so tests and future callers control its lifecycle.
func New(cfg *config.Config, store *storage.Store, extractor TextExtractor, parser CardParser) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		parser:    parser,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
