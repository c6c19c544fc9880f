package cmd

import (
	"fmt"

	"github.com/cardscan-io/cardscan/internal/config"
	"github.com/cardscan-io/cardscan/internal/gemini"
	"github.com/cardscan-io/cardscan/internal/ollama"
	"github.com/cardscan-io/cardscan/internal/openai"
	"github.com/cardscan-io/cardscan/internal/providers"
)

// newProvider resolves a provider name to its client and default model.
func newProvider(name string, cfg *config.Config) (providers.Provider, string, error) {
	switch name {
	case "gemini":
		return gemini.New(), cfg.GeminiModel, nil
	case "ollama":
		return ollama.New(), cfg.OllamaModel, nil
	case "openai":
		return openai.New(), cfg.OpenAIModel, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q (supported: gemini, ollama, openai)", name)
	}
}
