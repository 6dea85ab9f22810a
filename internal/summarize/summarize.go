// Package summarize provides the text-generation strategies that can replace the default file list.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/codex-k8s/commitsum/internal/config"
	"github.com/codex-k8s/commitsum/internal/summary"
)

// Credentials holds the API keys for the generation providers.
type Credentials struct {
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKey     string
}

// New creates the strategy selected by cfg.Kind.
func New(ctx context.Context, cfg config.SummarizerConfig, creds Credentials) (summary.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", config.SummarizerFiles:
		return summary.FileList{}, nil
	case config.SummarizerOpenAI:
		return NewOpenAI(cfg, creds.OpenAIKey, creds.OpenAIBaseURL)
	case config.SummarizerGemini:
		return NewGemini(ctx, cfg, creds.GeminiKey)
	default:
		return nil, fmt.Errorf("unknown summarizer kind: %s", cfg.Kind)
	}
}
