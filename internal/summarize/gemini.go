package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/codex-k8s/commitsum/internal/config"
	"github.com/codex-k8s/commitsum/internal/prompt"
	"github.com/codex-k8s/commitsum/internal/summary"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Gemini summarizes commits with the Google Gemini API.
type Gemini struct {
	client         *genai.Client
	model          *genai.GenerativeModel
	maxInputLength int
}

// NewGemini creates a Gemini strategy. Close releases the underlying client.
func NewGemini(ctx context.Context, cfg config.SummarizerConfig, apiKey string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	name := cfg.Model
	if strings.TrimSpace(name) == "" {
		name = defaultGeminiModel
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetMaxOutputTokens(int32(cfg.MaxTokens))

	return &Gemini{
		client:         client,
		model:          model,
		maxInputLength: cfg.MaxInputLength,
	}, nil
}

// Summarize renders the commit prompt and returns the first candidate text.
func (g *Gemini) Summarize(ctx context.Context, dc summary.DiffContext) (string, error) {
	text, err := prompt.RenderCommitSummary(dc, g.maxInputLength)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return responseText(resp), nil
}

// Close releases the underlying genai client.
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}
