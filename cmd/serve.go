package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cardscan-io/cardscan/internal/config"
	"github.com/cardscan-io/cardscan/internal/handlers"
	"github.com/cardscan-io/cardscan/internal/ocr"
	"github.com/cardscan-io/cardscan/internal/parser"
	"github.com/cardscan-io/cardscan/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the card scanning web service",
		Long: `Starts the Cardscan HTTP service on the specified port.

The service accepts business card images, extracts contact fields with
OCR plus an LLM, and serves per-session vCard and CSV exports.`,
		Example: `  # Start server on the configured port
  cardscan serve

  # Start server on a custom port
  cardscan serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			provider, model, err := newProvider(cfg.Provider, cfg)
			if err != nil {
				return err
			}
			slog.Info("Using extraction provider", "provider", cfg.Provider, "model", model)

			extractor := ocr.NewService(ocr.NewTesseractEngine(cfg.TesseractLangs...))
			cardParser := parser.NewService(provider, model)
			handler := handlers.New(cfg, storage.New(), extractor, cardParser)

			mux := http.NewServeMux()
			mux.HandleFunc("/api/process-cards", handler.HandleProcessCards)
			mux.HandleFunc("/api/export-csv", handler.HandleExportCSV)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Cardscan service available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}
