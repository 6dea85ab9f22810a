// Package config contains the loader and typed model for commitsum.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/commitsum/internal/env"
	"github.com/codex-k8s/commitsum/internal/summary"
)

// Summarizer kinds accepted in configuration.
const (
	SummarizerFiles  = "files"
	SummarizerOpenAI = "openai"
	SummarizerGemini = "gemini"
)

// Generation defaults applied when the configuration leaves a field unset.
const (
	DefaultTemperature    = 0.9
	DefaultMaxTokens      = 1024
	DefaultMaxInputLength = 20000
)

// Config is the effective run configuration after rendering commitsum.yaml.
type Config struct {
	// EnvFiles lists .env files to load before rendering, relative to the config file.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Summarizer selects and tunes the summary strategy.
	Summarizer SummarizerConfig `yaml:"summarizer,omitempty"`
	// ContextRadius is the number of patch lines kept around the anchor line.
	ContextRadius int `yaml:"contextRadius,omitempty"`
	// DryRun evaluates commits without posting comments.
	DryRun bool `yaml:"dryRun,omitempty"`
	// Slack configures the optional run notification.
	Slack SlackConfig `yaml:"slack,omitempty"`
}

// SummarizerConfig describes the text that follows the comment marker.
type SummarizerConfig struct {
	// Kind is one of "files", "openai" or "gemini".
	Kind string `yaml:"kind,omitempty"`
	// Model is the provider model identifier; empty selects the provider default.
	Model string `yaml:"model,omitempty"`
	// Temperature is the sampling temperature.
	Temperature float64 `yaml:"temperature"`
	// MaxTokens caps the generated output length.
	MaxTokens int `yaml:"maxTokens,omitempty"`
	// MaxInputLength caps the prompt length in characters.
	MaxInputLength int `yaml:"maxInputLength,omitempty"`
}

// SlackConfig holds the incoming webhook used for run notifications.
type SlackConfig struct {
	WebhookURL string `yaml:"webhookURL,omitempty"`
}

// LoadOptions controls how the configuration file is located and rendered.
type LoadOptions struct {
	// Optional makes a missing file yield defaults instead of an error.
	Optional bool
	// Vars are the variables visible to envOr in the template.
	Vars env.Vars
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Summarizer: SummarizerConfig{
			Kind:           SummarizerFiles,
			Temperature:    DefaultTemperature,
			MaxTokens:      DefaultMaxTokens,
			MaxInputLength: DefaultMaxInputLength,
		},
		ContextRadius: summary.DefaultContextRadius,
	}
}

// Load reads, templates and parses the configuration file at path. It returns
// the parsed config and the variables after merging the file's envFiles.
func Load(path string, opts LoadOptions) (Config, env.Vars, error) {
	cfg := Default()
	vars := env.Merge(opts.Vars)

	if strings.TrimSpace(path) == "" {
		return cfg, vars, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return cfg, vars, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		if opts.Optional && errors.Is(err, os.ErrNotExist) {
			return cfg, vars, nil
		}
		return cfg, vars, fmt.Errorf("read config %q: %w", absPath, err)
	}

	var header struct {
		EnvFiles []string `yaml:"envFiles"`
	}
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return cfg, vars, fmt.Errorf("parse top-level config fields: %w", err)
	}

	fileVars, err := env.LoadEnvFiles(filepath.Dir(absPath), header.EnvFiles)
	if err != nil {
		return cfg, vars, err
	}
	vars = env.Merge(fileVars, vars)

	rendered, err := RenderTemplate(filepath.Base(absPath), raw, nil, vars)
	if err != nil {
		return cfg, vars, err
	}

	if err := yaml.Unmarshal(rendered, &cfg); err != nil {
		return cfg, vars, fmt.Errorf("parse rendered config %q: %w", absPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, vars, fmt.Errorf("invalid config %q: %w", absPath, err)
	}

	return cfg, vars, nil
}

// Validate checks value ranges and the summarizer kind.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Summarizer.Kind)) {
	case SummarizerFiles, SummarizerOpenAI, SummarizerGemini:
	default:
		return fmt.Errorf("unknown summarizer kind %q", c.Summarizer.Kind)
	}
	if c.ContextRadius < 0 {
		return fmt.Errorf("contextRadius must not be negative")
	}
	if c.Summarizer.Temperature < 0 || c.Summarizer.Temperature > 2 {
		return fmt.Errorf("summarizer.temperature must be within [0, 2]")
	}
	if c.Summarizer.MaxTokens <= 0 {
		return fmt.Errorf("summarizer.maxTokens must be positive")
	}
	if c.Summarizer.MaxInputLength <= 0 {
		return fmt.Errorf("summarizer.maxInputLength must be positive")
	}
	return nil
}

// RenderTemplate renders text with the shared template helpers. data is the template dot.
func RenderTemplate(name string, raw []byte, data any, vars env.Vars) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(buildFuncMap(vars)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func buildFuncMap(vars env.Vars) template.FuncMap {
	return template.FuncMap{
		"default":  funcDef,
		"toLower":  strings.ToLower,
		"truncSHA": funcTruncSHA,
		"envOr":    funcEnvOr(vars),
		"join":     strings.Join,
	}
}

// funcDef returns def when value is empty or whitespace, otherwise value.
func funcDef(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// funcTruncSHA truncates an SHA-like string to a shorter length for display.
func funcTruncSHA(s string) string {
	const max = 12
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// funcEnvOr returns a function that looks up a key in vars and falls back to def.
func funcEnvOr(vars env.Vars) func(key, def string) string {
	return func(key, def string) string {
		if v, ok := vars[key]; ok && v != "" {
			return v
		}
		return def
	}
}
