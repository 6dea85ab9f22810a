// Package ghoutput writes GitHub Actions step outputs.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// WriteFile appends outputs to path in key order. Multi-line values use the
// heredoc form (key<<delimiter). An empty path is a no-op.
func WriteFile(path string, values map[string]string) error {
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open GITHUB_OUTPUT %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := strings.ReplaceAll(values[key], "\r", "")
		if !strings.Contains(value, "\n") {
			if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
				return err
			}
			continue
		}
		delim := delimiter(key, value)
		if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delim, value, delim); err != nil {
			return err
		}
	}
	return nil
}

// delimiter picks a heredoc delimiter that does not occur in value.
func delimiter(key, value string) string {
	delim := "COMMITSUM_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_")) + "_EOF"
	for strings.Contains(value, delim) {
		delim += "_"
	}
	return delim
}
