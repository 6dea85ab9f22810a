package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/codex-k8s/commitsum/internal/config"
	"github.com/codex-k8s/commitsum/internal/prompt"
	"github.com/codex-k8s/commitsum/internal/summary"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAI summarizes commits with the OpenAI chat completions API.
type OpenAI struct {
	client         *openai.Client
	model          string
	temperature    float32
	maxTokens      int
	maxInputLength int
}

// NewOpenAI creates an OpenAI strategy. baseURL overrides the API endpoint when set.
func NewOpenAI(cfg config.SummarizerConfig, apiKey, baseURL string) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}

	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		client:         openai.NewClientWithConfig(clientCfg),
		model:          model,
		temperature:    float32(cfg.Temperature),
		maxTokens:      cfg.MaxTokens,
		maxInputLength: cfg.MaxInputLength,
	}, nil
}

func (o *OpenAI) Summarize(ctx context.Context, dc summary.DiffContext) (string, error) {
	text, err := prompt.RenderCommitSummary(dc, o.maxInputLength)
	if err != nil {
		return "", err
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
