package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cardscan",
		Short: "Business card scanning service with LLM-powered field extraction",
		Long: `Cardscan turns photos of business cards into structured contact data.

Card images are run through OCR, the recognized text is handed to an LLM
for field extraction, and the results can be downloaded as vCards or a
session-level CSV export.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
