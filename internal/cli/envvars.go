package cli

import (
	"strings"

	envparse "github.com/caarlos0/env/v11"

	"github.com/codex-k8s/commitsum/internal/env"
)

// baseEnv defines root CLI defaults sourced from COMMITSUM_* env vars.
type baseEnv struct {
	// ConfigPath is the config file path from COMMITSUM_CONFIG.
	ConfigPath string `env:"COMMITSUM_CONFIG"`
	// LogLevel is the logging level from COMMITSUM_LOG_LEVEL.
	LogLevel string `env:"COMMITSUM_LOG_LEVEL"`
	// NoColor disables colored logs when NO_COLOR is non-empty.
	NoColor string `env:"NO_COLOR"`
}

// runEnv captures GitHub Actions and provider inputs for the run command.
type runEnv struct {
	// Token is the GitHub token from GITHUB_TOKEN.
	Token string `env:"GITHUB_TOKEN"`
	// EventPath is the event payload file from GITHUB_EVENT_PATH.
	EventPath string `env:"GITHUB_EVENT_PATH"`
	// APIURL is the REST endpoint from GITHUB_API_URL.
	APIURL string `env:"GITHUB_API_URL"`
	// OutputPath is the step output file from GITHUB_OUTPUT.
	OutputPath string `env:"GITHUB_OUTPUT"`
	// Repo is an owner/name override from COMMITSUM_REPO.
	Repo string `env:"COMMITSUM_REPO"`
	// PR is a pull request number override from COMMITSUM_PR_NUMBER.
	PR int `env:"COMMITSUM_PR_NUMBER"`
	// DryRun disables posting from COMMITSUM_DRY_RUN.
	DryRun bool `env:"COMMITSUM_DRY_RUN"`
	// Summarizer selects the strategy from COMMITSUM_SUMMARIZER.
	Summarizer string `env:"COMMITSUM_SUMMARIZER"`
	// Model overrides the provider model from COMMITSUM_MODEL.
	Model string `env:"COMMITSUM_MODEL"`
	// SlackWebhookURL enables notifications from COMMITSUM_SLACK_WEBHOOK_URL.
	SlackWebhookURL string `env:"COMMITSUM_SLACK_WEBHOOK_URL"`
	// OpenAIKey is the OpenAI API key from OPENAI_API_KEY.
	OpenAIKey string `env:"OPENAI_API_KEY"`
	// OpenAIBaseURL overrides the OpenAI endpoint from OPENAI_BASE_URL.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	// GeminiKey is the Gemini API key from GEMINI_API_KEY.
	GeminiKey string `env:"GEMINI_API_KEY"`
	// GoogleKey is the fallback Gemini key from GOOGLE_API_KEY.
	GoogleKey string `env:"GOOGLE_API_KEY"`
}

// parseEnv fills target via caarlos0/env from vars, or from the process environment when vars is nil.
func parseEnv(target any, vars env.Vars) error {
	if vars == nil {
		return envparse.Parse(target)
	}
	return envparse.ParseWithOptions(target, envparse.Options{Environment: vars})
}

// varPresent reports whether a non-empty variable exists in vars.
func varPresent(vars env.Vars, key string) bool {
	val, ok := vars[key]
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
