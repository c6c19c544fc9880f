// Package providers defines the LLM collaborator contract: a prompt goes in,
// a text completion comes out. Implementations live in sibling packages so
// the extraction pipeline can be exercised with fakes.
package providers

import (
	"context"
)

// Config carries the per-call knobs for an LLM provider.
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider is the interface every LLM backend implements. The returned
// completion is expected to be JSON, possibly wrapped in Markdown fences;
// cleaning it up is the caller's concern.
type Provider interface {
	Complete(ctx context.Context, config Config) (string, error)
}
