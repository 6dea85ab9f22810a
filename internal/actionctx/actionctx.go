// Package actionctx resolves the pull request a run targets from the GitHub Actions event payload.
package actionctx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/codex-k8s/commitsum/internal/summary"
)

// Sources lists where the pull request identity may come from.
type Sources struct {
	// EventPath is the GITHUB_EVENT_PATH payload file.
	EventPath string
	// Repo is an explicit owner/name override.
	Repo string
	// PR is an explicit pull request number override.
	PR int
}

type eventPayload struct {
	Number      int `json:"number"`
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
	Repository *struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
}

// Resolve builds the pull request reference. Explicit overrides win over the
// event payload; the payload is not read when both overrides are set.
func Resolve(src Sources) (summary.PullRequestRef, error) {
	var ref summary.PullRequestRef

	if strings.TrimSpace(src.Repo) != "" {
		owner, name, err := ParseRepoSlug(src.Repo)
		if err != nil {
			return ref, err
		}
		ref.Owner, ref.Repo = owner, name
	}
	if src.PR > 0 {
		ref.Number = src.PR
	}

	if ref.Owner == "" || ref.Number == 0 {
		payload, err := loadEvent(src.EventPath)
		if err != nil {
			return ref, err
		}
		if ref.Owner == "" {
			if payload.Repository == nil {
				return ref, &summary.ConfigurationError{Reason: "repository undefined in event payload"}
			}
			ref.Owner = strings.TrimSpace(payload.Repository.Owner.Login)
			ref.Repo = strings.TrimSpace(payload.Repository.Name)
			if ref.Owner == "" || ref.Repo == "" {
				return ref, &summary.ConfigurationError{Reason: "repository owner or name is empty in event payload"}
			}
		}
		if ref.Number == 0 {
			switch {
			case payload.PullRequest != nil && payload.PullRequest.Number > 0:
				ref.Number = payload.PullRequest.Number
			case payload.Number > 0:
				ref.Number = payload.Number
			default:
				return ref, &summary.ConfigurationError{Reason: "pull request number undefined in event payload"}
			}
		}
	}

	return ref, nil
}

func loadEvent(path string) (eventPayload, error) {
	var payload eventPayload
	path = strings.TrimSpace(path)
	if path == "" {
		return payload, &summary.ConfigurationError{Reason: "GITHUB_EVENT_PATH is not set and --repo/--pr were not both given"}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return payload, fmt.Errorf("read event payload %q: %w", path, err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("decode event payload %q: %w", path, err)
	}
	return payload, nil
}

// ParseRepoSlug splits an owner/repo slug.
func ParseRepoSlug(repo string) (owner, name string, err error) {
	repo = strings.TrimSpace(repo)
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", &summary.ConfigurationError{Reason: fmt.Sprintf("invalid repository slug %q, expected owner/repo", repo)}
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
