package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cardscan-io/cardscan/internal/storage"
	"github.com/google/uuid"
)

// HandleExportCSV returns every card stored under the given session as a CSV
// attachment and clears the session. Export is destructive and one-shot; a
// session with no data yields 404, not an empty file.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		h.writeError(w, "session_id is required", http.StatusBadRequest)
		return
	}

	data, err := h.store.ExportCSV(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.writeError(w, "No data available for export for this session.", http.StatusNotFound)
			return
		}
		h.writeError(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Cleared session data after export", "session_id", sessionID)

	filename := fmt.Sprintf("business_cards_%s.csv", strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write CSV response", "err", err)
	}
}
