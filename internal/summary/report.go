package summary

// Outcome is the terminal state of a single commit in a run.
type Outcome string

const (
	// OutcomeCommented means a review comment was created.
	OutcomeCommented Outcome = "commented"
	// OutcomeDryRun means a comment would have been created.
	OutcomeDryRun Outcome = "dry-run"
	// OutcomeAlreadyProcessed means the SHA was handled earlier in this run.
	OutcomeAlreadyProcessed Outcome = "already-processed"
	// OutcomeAlreadyCommented means an existing comment carries the marker.
	OutcomeAlreadyCommented Outcome = "already-commented"
	// OutcomeNoMatchingDiff means none of the commit's files appear in the PR diff.
	OutcomeNoMatchingDiff Outcome = "no-matching-diff"
	// OutcomeNoPatch means the matched diff entry has no patch text.
	OutcomeNoPatch Outcome = "no-patch"
	// OutcomeNoAddedLine means the matched patch has no added line to anchor to.
	OutcomeNoAddedLine Outcome = "no-added-line"
)

// CommitResult records how one commit was handled.
type CommitResult struct {
	SHA     string
	Outcome Outcome
	// Path and Line are set when a comment was (or would have been) created.
	Path string
	Line int
	Body string
}

// Report is the per-run list of commit results in evaluation order.
type Report struct {
	PullRequest PullRequestRef
	Results     []CommitResult
}

// Posted returns the SHAs that received a comment.
func (r Report) Posted() []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == OutcomeCommented {
			out = append(out, res.SHA)
		}
	}
	return out
}

// Skipped returns the number of commits that did not receive a comment.
func (r Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome != OutcomeCommented {
			n++
		}
	}
	return n
}
