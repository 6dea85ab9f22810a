package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/commitsum/internal/summary"
)

// newMarkerCommand creates "marker" which prints the dedup marker for a commit.
func newMarkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "marker <sha>",
		Short: "Print the comment prefix used to detect an existing summary for a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), summary.Marker(args[0]))
			return err
		},
	}
}
