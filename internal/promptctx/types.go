// Package promptctx defines data structures used to render summary prompt templates.
package promptctx

// CommitSummary is the template context for the commit summary prompt.
type CommitSummary struct {
	// SHA is the full commit hash.
	SHA string
	// Files are the filenames the commit changed, in API order.
	Files []string
	// Patches are the pull request patches for those files.
	Patches []Patch
}

// Patch is one file's unified diff attached to a prompt context.
type Patch struct {
	// Filename is the repository-relative path of the file.
	Filename string
	// Text is the unified diff text.
	Text string
}
