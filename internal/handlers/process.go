package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cardscan-io/cardscan/internal/models"
	"github.com/cardscan-io/cardscan/internal/vcard"
	"github.com/google/uuid"
)

// cardSeparator is inserted between the text of the front and back images so
// the LLM sees where one side ends and the other begins.
const cardSeparator = "\n\n--- CARD SEPARATOR ---\n\n"

// HandleProcessCards accepts 1 or 2 card images plus a session identifier,
// runs OCR and structured extraction, stores the record under the session,
// and returns the composed response. Session identifiers are caller-supplied
// and trusted as-is.
func (h *Handler) HandleProcessCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(h.cfg.MaxFileSize); err != nil {
		h.writeError(w, "Failed to parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		h.writeError(w, "session_id is required", http.StatusBadRequest)
		return
	}
	includeVCard := formBool(r, "include_vcard", true)
	includeRawText := formBool(r, "include_raw_text", true)

	files := r.MultipartForm.File["files"]
	if len(files) < 1 || len(files) > 2 {
		h.writeError(w, "You must upload 1 or 2 images.", http.StatusBadRequest)
		return
	}

	// Validate every extension up front so a bad second file never triggers
	// OCR work for the first.
	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !h.cfg.ExtensionAllowed(ext) {
			h.writeError(w, fmt.Sprintf("Unsupported file type: %s.", header.Filename), http.StatusBadRequest)
			return
		}
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0755); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var textParts []string
	for _, header := range files {
		text, err := h.extractFromUpload(r, header)
		if err != nil {
			if code, ok := clientError(err); ok {
				h.writeError(w, err.Error(), code)
				return
			}
			slog.Error("Text extraction failed for image", "filename", header.Filename, "err", err)
			continue
		}
		if text != "" {
			textParts = append(textParts, text)
		}
	}

	if len(textParts) == 0 {
		h.writeJSON(w, models.ScanResponse{
			Success:      false,
			ErrorMessage: "Failed to extract any text from the image(s).",
		})
		return
	}

	combined := strings.Join(textParts, cardSeparator)

	card, err := h.parser.Extract(r.Context(), combined)
	if err != nil || card == nil {
		slog.Error("Structured extraction failed", "session_id", sessionID, "err", err)
		h.writeJSON(w, models.ScanResponse{
			Success:      false,
			RawText:      combined,
			ErrorMessage: "Failed to parse business card data from the combined text.",
		})
		return
	}

	h.store.Append(sessionID, card)
	slog.Info("Stored card for session", "session_id", sessionID, "total_cards", h.store.Count(sessionID))

	response := models.ScanResponse{
		Success:        true,
		StructuredData: card,
	}
	if includeRawText {
		response.RawText = combined
	}
	if includeVCard {
		response.VCard = vcard.Render(card)
	}
	h.writeJSON(w, response)
}

// extractFromUpload persists one upload to a temporary path, runs text
// extraction, and removes the temporary file regardless of the outcome.
func (h *Handler) extractFromUpload(r *http.Request, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	tmpPath := filepath.Join(h.cfg.UploadDir, uuid.NewString()+ext)

	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpPath)

	written, err := io.Copy(out, io.LimitReader(file, h.cfg.MaxFileSize))
	closeErr := out.Close()
	if err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to save upload: %w", closeErr)
	}
	if written >= h.cfg.MaxFileSize {
		return "", errFileTooLarge
	}

	return h.extractor.ExtractText(r.Context(), tmpPath)
}

var errFileTooLarge = fmt.Errorf("File too large (max upload size exceeded)")

// clientError maps upload-validation failures to HTTP status codes;
// everything else is treated as an extraction fault and recovered.
func clientError(err error) (int, bool) {
	if err == errFileTooLarge {
		return http.StatusBadRequest, true
	}
	return 0, false
}

func formBool(r *http.Request, key string, fallback bool) bool {
	value := r.FormValue(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
