package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check subcommand.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Verify the tree invariants of datasets",
		Long: `Load each FILE and verify the structure of the resulting tree: parent
links, subtree weights, key order and weight balance. The exit status is 1 if
any tree is corrupt and 2 if a file cannot be loaded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				m, _, err := loadMap(cmd, opts, path)
				if err != nil {
					return err
				}
				if err := m.Validate(); err != nil {
					failed++
					opts.Logger.Error("invariant violated", "path", path, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s: %d entries, height %d\n", path, m.Len(), m.Height())
			}
			if failed > 0 {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d of %d datasets failed", failed, len(args))}
			}
			return nil
		},
	}
}
