package summary

import (
	"context"
	"strings"
)

// DiffContext carries everything a Strategy may use to describe one commit.
type DiffContext struct {
	// SHA is the commit being summarized.
	SHA string
	// Files are the commit's changed filenames in API order.
	Files []string
	// Path is the file the comment will be anchored to.
	Path string
	// Hunk is the patch context around the anchor line.
	Hunk string
	// Patches are the pull-request-level diff entries for the commit's files.
	Patches []DiffEntry
}

// Strategy turns a commit's diff context into the text that follows the marker.
type Strategy interface {
	Summarize(ctx context.Context, dc DiffContext) (string, error)
}

// FileList is the default Strategy: it joins the changed filenames.
type FileList struct{}

// Summarize returns the commit filenames joined with ", ".
func (FileList) Summarize(_ context.Context, dc DiffContext) (string, error) {
	return JoinFiles(dc.Files), nil
}

// JoinFiles joins filenames with ", " preserving order.
func JoinFiles(files []string) string {
	return strings.Join(files, ", ")
}
