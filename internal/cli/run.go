package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/commitsum/internal/actionctx"
	"github.com/codex-k8s/commitsum/internal/config"
	"github.com/codex-k8s/commitsum/internal/env"
	"github.com/codex-k8s/commitsum/internal/ghoutput"
	"github.com/codex-k8s/commitsum/internal/githubapi"
	"github.com/codex-k8s/commitsum/internal/notify"
	"github.com/codex-k8s/commitsum/internal/summarize"
	"github.com/codex-k8s/commitsum/internal/summary"
)

// runFlags holds the "run" command flags.
type runFlags struct {
	repo       string
	pr         int
	token      string
	apiURL     string
	dryRun     bool
	summarizer string
	model      string
}

// runSettings is the fully resolved input of a run.
type runSettings struct {
	cfg    config.Config
	env    runEnv
	ref    summary.PullRequestRef
	token  string
	apiURL string
}

// newRunCommand creates "run" which summarizes the commits of the current pull request.
func newRunCommand(opts *Options) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Post a summary review comment for each pull request commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			settings, err := resolveRunSettings(cmd, opts, flags)
			if err != nil {
				return err
			}
			return runSummary(cmd.Context(), logger, settings)
		},
	}

	cmd.Flags().StringVar(&flags.repo, "repo", "", "Repository owner/name (defaults to the event payload)")
	cmd.Flags().IntVar(&flags.pr, "pr", 0, "Pull request number (defaults to the event payload)")
	cmd.Flags().StringVar(&flags.token, "token", "", "GitHub token (defaults to GITHUB_TOKEN env)")
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "GitHub REST API URL (defaults to GITHUB_API_URL env)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Evaluate commits without posting comments")
	cmd.Flags().StringVar(&flags.summarizer, "summarizer", "", "Summary strategy (files, openai, gemini)")
	cmd.Flags().StringVar(&flags.model, "model", "", "Model identifier for the openai/gemini summarizers")

	return cmd
}

// resolveRunSettings merges flags, environment, .env files and the config file
// with precedence flag > env > file > default.
func resolveRunSettings(cmd *cobra.Command, opts *Options, flags runFlags) (runSettings, error) {
	var s runSettings

	osVars := env.FromOS()
	fileVars, err := env.LoadEnvFiles(".", opts.EnvFiles)
	if err != nil {
		return s, err
	}
	vars := env.Merge(fileVars, osVars)

	explicitConfig := cmd.Flags().Changed("config") || varPresent(vars, "COMMITSUM_CONFIG")
	cfg, vars, err := config.Load(opts.ConfigPath, config.LoadOptions{
		Optional: !explicitConfig,
		Vars:     vars,
	})
	if err != nil {
		return s, err
	}

	if err := parseEnv(&s.env, vars); err != nil {
		return s, fmt.Errorf("parse environment: %w", err)
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	} else if varPresent(vars, "COMMITSUM_DRY_RUN") {
		cfg.DryRun = s.env.DryRun
	}
	if kind := firstNonEmpty(flags.summarizer, s.env.Summarizer); kind != "" {
		cfg.Summarizer.Kind = kind
	}
	if model := firstNonEmpty(flags.model, s.env.Model); model != "" {
		cfg.Summarizer.Model = model
	}
	if url := s.env.SlackWebhookURL; url != "" {
		cfg.Slack.WebhookURL = url
	}
	if err := cfg.Validate(); err != nil {
		return s, err
	}
	s.cfg = cfg

	s.ref, err = actionctx.Resolve(actionctx.Sources{
		EventPath: s.env.EventPath,
		Repo:      firstNonEmpty(flags.repo, s.env.Repo),
		PR:        firstPositive(flags.pr, s.env.PR),
	})
	if err != nil {
		return s, err
	}

	s.token = firstNonEmpty(flags.token, s.env.Token)
	if s.token == "" {
		return s, fmt.Errorf("run requires --token or GITHUB_TOKEN env")
	}
	s.apiURL = firstNonEmpty(flags.apiURL, s.env.APIURL)

	return s, nil
}

func runSummary(ctx context.Context, logger *slog.Logger, s runSettings) error {
	client, err := githubapi.NewClient(logger, s.token, s.apiURL)
	if err != nil {
		return err
	}

	strategy, err := summarize.New(ctx, s.cfg.Summarizer, summarize.Credentials{
		OpenAIKey:     s.env.OpenAIKey,
		OpenAIBaseURL: s.env.OpenAIBaseURL,
		GeminiKey:     firstNonEmpty(s.env.GeminiKey, s.env.GoogleKey),
	})
	if err != nil {
		return fmt.Errorf("init summarizer %q: %w", s.cfg.Summarizer.Kind, err)
	}
	if closer, ok := strategy.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	logger.Info("summarizing pull request commits",
		"pr", s.ref.String(),
		"summarizer", s.cfg.Summarizer.Kind,
		"dry_run", s.cfg.DryRun,
	)

	summarizer := summary.New(client, strategy, summary.Options{
		ContextRadius: s.cfg.ContextRadius,
		DryRun:        s.cfg.DryRun,
	}, logger)

	report, err := summarizer.Run(ctx, s.ref)
	if err != nil {
		return err
	}

	posted := report.Posted()
	logger.Info("commit summaries finished",
		"pr", s.ref.String(),
		"posted", len(posted),
		"skipped", report.Skipped(),
	)

	if err := ghoutput.WriteFile(s.env.OutputPath, map[string]string{
		"posted":         strconv.Itoa(len(posted)),
		"skipped":        strconv.Itoa(report.Skipped()),
		"commented-shas": strings.Join(posted, ","),
	}); err != nil {
		return fmt.Errorf("write step outputs: %w", err)
	}

	if err := notify.NewSlack(s.cfg.Slack.WebhookURL).Notify(ctx, report); err != nil {
		logger.Warn("slack notification failed", "error", err)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
