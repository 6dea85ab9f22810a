// Package notify announces posted commit summaries to Slack.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/codex-k8s/commitsum/internal/summary"
)

// Slack posts run reports to an incoming webhook.
type Slack struct {
	webhookURL string
}

// NewSlack returns nil when webhookURL is empty so callers can skip notification.
func NewSlack(webhookURL string) *Slack {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return nil
	}
	return &Slack{webhookURL: webhookURL}
}

// Notify sends one message listing the commented commits. Reports without
// posted comments are not sent.
func (s *Slack) Notify(ctx context.Context, report summary.Report) error {
	if s == nil {
		return nil
	}
	msg, ok := Message(report)
	if !ok {
		return nil
	}
	if err := slack.PostWebhookContext(ctx, s.webhookURL, msg); err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}
	return nil
}

// Message builds the webhook payload for report.
func Message(report summary.Report) (*slack.WebhookMessage, bool) {
	var lines []string
	for _, res := range report.Results {
		if res.Outcome != summary.OutcomeCommented {
			continue
		}
		lines = append(lines, fmt.Sprintf("• `%s` on `%s`", shortSHA(res.SHA), res.Path))
	}
	if len(lines) == 0 {
		return nil, false
	}

	pr := report.PullRequest
	header := fmt.Sprintf("Commit summaries posted on <https://github.com/%s/%s/pull/%d|%s>",
		pr.Owner, pr.Repo, pr.Number, pr.String())
	return &slack.WebhookMessage{
		Text: header + "\n" + strings.Join(lines, "\n"),
	}, true
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
