package cli

import (
	"fmt"

	"pos_snapshots/application/scenarios"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios and the screenshots they write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, sc := range scenarios.All() {
				marker := ""
				if sc.Mutating {
					marker = " [changes app state]"
				}
				fmt.Fprintf(out, "%s: %s%s\n", sc.Name, sc.Description, marker)
				for _, file := range sc.Screenshots() {
					fmt.Fprintf(out, "  %s\n", file)
				}
			}
			return nil
		},
	}
}
