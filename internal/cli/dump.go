package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDumpCommand creates the dump subcommand.
func NewDumpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print a dataset's tree",
		Long: `Load FILE and print the balanced tree holding it. Text output draws the
tree with each node's weight; json and yaml print the entries in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadMap(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if opts.Format == "text" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), m.Dump())
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, m.Pairs())
		},
	}
}
