// Package githubapi implements the pull request operations used by commitsum on top of go-github.
package githubapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v71/github"

	"github.com/codex-k8s/commitsum/internal/summary"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com"

	perPage = 100
)

// Client implements summary.API on top of the GitHub REST API.
type Client struct {
	logger *slog.Logger
	gh     *github.Client
}

// NewClient builds a client authenticated with token. apiURL overrides the REST
// endpoint (GitHub Enterprise); empty means DefaultAPIURL.
func NewClient(logger *slog.Logger, token, apiURL string) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("GitHub token is empty")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gh := github.NewClient(&http.Client{Timeout: 60 * time.Second}).WithAuthToken(token)

	apiURL = strings.TrimSpace(apiURL)
	if apiURL != "" && strings.TrimRight(apiURL, "/") != DefaultAPIURL {
		base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse GitHub API URL %q: %w", apiURL, err)
		}
		gh.BaseURL = base
	}

	return &Client{logger: logger, gh: gh}, nil
}

// ListComments returns every issue comment of the pull request.
func (c *Client) ListComments(ctx context.Context, ref summary.PullRequestRef) ([]summary.Comment, error) {
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}

	var out []summary.Comment
	for {
		page, resp, err := c.gh.Issues.ListComments(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("list issue comments: %w", err)
		}
		for _, comment := range page {
			out = append(out, summary.Comment{Body: comment.GetBody()})
		}
		c.logger.Debug("github issue comments page", "pr", ref.String(), "page", opts.Page, "count", len(page))
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// ListFiles returns the pull request file diffs in API order.
func (c *Client) ListFiles(ctx context.Context, ref summary.PullRequestRef) ([]summary.DiffEntry, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var out []summary.DiffEntry
	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("list pull request files: %w", err)
		}
		for _, f := range page {
			out = append(out, summary.DiffEntry{
				Filename: f.GetFilename(),
				Patch:    f.Patch,
			})
		}
		c.logger.Debug("github pull request files page", "pr", ref.String(), "page", opts.Page, "count", len(page))
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// ListCommits returns the pull request commits in API order.
func (c *Client) ListCommits(ctx context.Context, ref summary.PullRequestRef) ([]summary.Commit, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var out []summary.Commit
	for {
		page, resp, err := c.gh.PullRequests.ListCommits(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("list pull request commits: %w", err)
		}
		for _, commit := range page {
			out = append(out, summary.Commit{SHA: commit.GetSHA()})
		}
		c.logger.Debug("github pull request commits page", "pr", ref.String(), "page", opts.Page, "count", len(page))
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

// GetCommit returns the commit's changed files. Files stays nil when GitHub
// returned no file list at all.
func (c *Client) GetCommit(ctx context.Context, ref summary.PullRequestRef, sha string) (summary.CommitDetail, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var detail summary.CommitDetail
	for {
		commit, resp, err := c.gh.Repositories.GetCommit(ctx, ref.Owner, ref.Repo, sha, opts)
		if err != nil {
			return summary.CommitDetail{}, fmt.Errorf("get commit: %w", err)
		}
		if commit.Files != nil && detail.Files == nil {
			detail.Files = make([]summary.CommitFile, 0, len(commit.Files))
		}
		for _, f := range commit.Files {
			detail.Files = append(detail.Files, summary.CommitFile{Filename: f.GetFilename()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	c.logger.Debug("github commit loaded", "sha", sha, "files", len(detail.Files))
	return detail, nil
}

// CreateReviewComment posts a single review comment on the pull request diff.
func (c *Client) CreateReviewComment(ctx context.Context, ref summary.PullRequestRef, comment summary.ReviewComment) error {
	_, _, err := c.gh.PullRequests.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, &github.PullRequestComment{
		CommitID: github.Ptr(comment.CommitID),
		Path:     github.Ptr(comment.Path),
		Line:     github.Ptr(comment.Line),
		DiffHunk: github.Ptr(comment.DiffHunk),
		Body:     github.Ptr(comment.Body),
	})
	if err != nil {
		return fmt.Errorf("create pull request review comment: %w", err)
	}
	return nil
}

var _ summary.API = (*Client)(nil)
