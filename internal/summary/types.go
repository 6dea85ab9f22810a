// Package summary posts one review comment per pull request commit naming the files it touched.
package summary

import (
	"context"
	"fmt"
)

// PullRequestRef identifies the pull request a run operates on.
type PullRequestRef struct {
	// Owner is the repository owner login.
	Owner string
	// Repo is the repository name.
	Repo string
	// Number is the pull request number.
	Number int
}

// String renders the reference as owner/repo#number.
func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// Comment is an existing issue comment on the pull request.
type Comment struct {
	// Body is the raw markdown body of the comment.
	Body string
}

// DiffEntry is a pull-request-level changed file.
type DiffEntry struct {
	// Filename is the repository-relative path of the file.
	Filename string
	// Patch is the unified diff text; nil when GitHub omits it (binary or oversized files).
	Patch *string
}

// Commit is a commit that belongs to the pull request.
type Commit struct {
	// SHA is the full commit hash.
	SHA string
}

// CommitFile is a file touched by a single commit.
type CommitFile struct {
	// Filename is the repository-relative path of the file.
	Filename string
}

// CommitDetail holds the per-commit data fetched lazily during a run.
type CommitDetail struct {
	// Files lists changed files in API order; nil when the API returned no file list.
	Files []CommitFile
}

// ReviewComment is a single review comment to create.
type ReviewComment struct {
	// CommitID anchors the comment to a commit.
	CommitID string
	// Path is the file the comment is attached to.
	Path string
	// Line is the anchor line index within the patch.
	Line int
	// DiffHunk is the patch context around the anchor line.
	DiffHunk string
	// Body is the markdown body of the comment.
	Body string
}

// API is the subset of the source-control hosting API used by the summarizer.
type API interface {
	ListComments(ctx context.Context, ref PullRequestRef) ([]Comment, error)
	ListFiles(ctx context.Context, ref PullRequestRef) ([]DiffEntry, error)
	ListCommits(ctx context.Context, ref PullRequestRef) ([]Commit, error)
	GetCommit(ctx context.Context, ref PullRequestRef, sha string) (CommitDetail, error)
	CreateReviewComment(ctx context.Context, ref PullRequestRef, comment ReviewComment) error
}
