package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Options tunes a Summarizer.
type Options struct {
	// ContextRadius is the number of patch lines around the anchor; 0 means DefaultContextRadius.
	ContextRadius int
	// DryRun evaluates every commit but does not create comments.
	DryRun bool
}

// Summarizer walks the commits of a pull request and comments on each one once.
type Summarizer struct {
	api       API
	strategy  Strategy
	opts      Options
	logger    *slog.Logger
	processed map[string]struct{}
}

// New constructs a Summarizer. A nil strategy selects FileList.
func New(api API, strategy Strategy, opts Options, logger *slog.Logger) *Summarizer {
	if strategy == nil {
		strategy = FileList{}
	}
	if opts.ContextRadius <= 0 {
		opts.ContextRadius = DefaultContextRadius
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Summarizer{
		api:       api,
		strategy:  strategy,
		opts:      opts,
		logger:    logger,
		processed: make(map[string]struct{}),
	}
}

// Run processes every commit of the pull request in API order.
// The returned report covers the commits evaluated before any error.
func (s *Summarizer) Run(ctx context.Context, ref PullRequestRef) (Report, error) {
	report := Report{PullRequest: ref}

	comments, err := s.api.ListComments(ctx, ref)
	if err != nil {
		return report, fmt.Errorf("list comments for %s: %w", ref, err)
	}
	diffs, err := s.api.ListFiles(ctx, ref)
	if err != nil {
		return report, fmt.Errorf("list files for %s: %w", ref, err)
	}
	commits, err := s.api.ListCommits(ctx, ref)
	if err != nil {
		return report, fmt.Errorf("list commits for %s: %w", ref, err)
	}

	s.logger.Debug("pull request snapshot loaded",
		"pr", ref.String(),
		"comments", len(comments),
		"files", len(diffs),
		"commits", len(commits),
	)

	for _, commit := range commits {
		res, err := s.processCommit(ctx, ref, commit.SHA, comments, diffs)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
		s.logger.Debug("commit evaluated", "sha", res.SHA, "outcome", res.Outcome)
	}

	return report, nil
}

func (s *Summarizer) processCommit(ctx context.Context, ref PullRequestRef, sha string, comments []Comment, diffs []DiffEntry) (CommitResult, error) {
	res := CommitResult{SHA: sha}

	if _, ok := s.processed[sha]; ok {
		res.Outcome = OutcomeAlreadyProcessed
		return res, nil
	}
	if HasMarker(comments, sha) {
		res.Outcome = OutcomeAlreadyCommented
		return res, nil
	}

	detail, err := s.api.GetCommit(ctx, ref, sha)
	if err != nil {
		return res, fmt.Errorf("get commit %s: %w", sha, err)
	}
	if detail.Files == nil {
		return res, &DataError{SHA: sha, Reason: "commit has no file list"}
	}

	files := make([]string, len(detail.Files))
	for i, f := range detail.Files {
		files[i] = f.Filename
	}

	diff, ok := firstMatchingDiff(diffs, files)
	if !ok {
		res.Outcome = OutcomeNoMatchingDiff
		return res, nil
	}
	if diff.Patch == nil {
		res.Outcome = OutcomeNoPatch
		return res, nil
	}
	anchor, ok := FindAnchor(*diff.Patch, s.opts.ContextRadius)
	if !ok {
		res.Outcome = OutcomeNoAddedLine
		return res, nil
	}

	text, err := s.strategy.Summarize(ctx, DiffContext{
		SHA:     sha,
		Files:   files,
		Path:    diff.Filename,
		Hunk:    anchor.Hunk,
		Patches: matchingDiffs(diffs, files),
	})
	if err != nil {
		return res, fmt.Errorf("summarize commit %s: %w", sha, err)
	}
	if strings.TrimSpace(text) == "" {
		text = JoinFiles(files)
	}

	res.Path = diff.Filename
	res.Line = anchor.Line
	res.Body = Marker(sha) + text

	if s.opts.DryRun {
		res.Outcome = OutcomeDryRun
		s.logger.Info("dry run: comment not posted", "sha", sha, "path", res.Path, "line", res.Line)
		return res, nil
	}

	err = s.api.CreateReviewComment(ctx, ref, ReviewComment{
		CommitID: sha,
		Path:     diff.Filename,
		Line:     anchor.Line,
		DiffHunk: anchor.Hunk,
		Body:     res.Body,
	})
	if err != nil {
		return res, fmt.Errorf("create review comment for %s: %w", sha, err)
	}
	s.processed[sha] = struct{}{}
	res.Outcome = OutcomeCommented

	s.logger.Info("summary comment posted", "pr", ref.String(), "sha", sha, "path", res.Path, "line", res.Line)
	return res, nil
}

// firstMatchingDiff returns the first diff entry, in diff order, whose filename is one of files.
func firstMatchingDiff(diffs []DiffEntry, files []string) (DiffEntry, bool) {
	set := fileSet(files)
	for _, d := range diffs {
		if _, ok := set[d.Filename]; ok {
			return d, true
		}
	}
	return DiffEntry{}, false
}

func matchingDiffs(diffs []DiffEntry, files []string) []DiffEntry {
	set := fileSet(files)
	var out []DiffEntry
	for _, d := range diffs {
		if _, ok := set[d.Filename]; ok {
			out = append(out, d)
		}
	}
	return out
}

func fileSet(files []string) map[string]struct{} {
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[f] = struct{}{}
	}
	return set
}
