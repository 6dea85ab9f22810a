// Package prompt renders the text-generation prompt used to summarize a commit.
package prompt

import (
	"embed"
	"fmt"
	"strings"

	"github.com/codex-k8s/commitsum/internal/config"
	"github.com/codex-k8s/commitsum/internal/promptctx"
	"github.com/codex-k8s/commitsum/internal/summary"
)

const commitSummaryTemplate = "templates/commit_summary.tmpl"

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// RenderCommitSummary renders the builtin commit summary prompt for dc and
// truncates it to maxLen characters when maxLen is positive.
func RenderCommitSummary(dc summary.DiffContext, maxLen int) (string, error) {
	raw, err := builtinTemplates.ReadFile(commitSummaryTemplate)
	if err != nil {
		return "", fmt.Errorf("load prompt template %s: %w", commitSummaryTemplate, err)
	}

	data := promptctx.CommitSummary{
		SHA:   dc.SHA,
		Files: dc.Files,
	}
	for _, p := range dc.Patches {
		if p.Patch == nil {
			continue
		}
		data.Patches = append(data.Patches, promptctx.Patch{Filename: p.Filename, Text: *p.Patch})
	}
	if len(data.Patches) == 0 && dc.Hunk != "" {
		data.Patches = append(data.Patches, promptctx.Patch{Filename: dc.Path, Text: dc.Hunk})
	}

	out, err := config.RenderTemplate(commitSummaryTemplate, raw, data, nil)
	if err != nil {
		return "", err
	}
	return Truncate(strings.TrimSpace(string(out)), maxLen), nil
}

// Truncate cuts s to at most maxLen runes. maxLen <= 0 disables truncation.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
