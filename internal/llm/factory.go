package llm

import (
	"fmt"
	"strings"

	"github.com/credo-scan/credo/internal/config"
)

// NewProvider creates an LLM provider from configuration. A missing
// credential returns nil rather than an error: the analyzer treats a
// nil provider as the deterministic mock path.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.APIKey == "" {
			return nil, nil
		}
		return NewOpenAIProvider(cfg), nil

	case "":
		// LLM disabled by configuration.
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}
