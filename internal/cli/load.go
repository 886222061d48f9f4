package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/orderly/internal/config"
	"github.com/dshills/orderly/internal/engine/tree"
)

// loadDataset reads path and applies the --numeric override.
func loadDataset(cmd *cobra.Command, opts *RootOptions, path string) (*config.Dataset, error) {
	d, err := config.Load(opts.FS, path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load dataset", err)
	}
	if cmd.Flags().Changed("numeric") {
		d.Settings.Numeric = opts.Numeric
	}
	return d, nil
}

// loadMap reads path into a new map.
func loadMap(cmd *cobra.Command, opts *RootOptions, path string) (*tree.Map[string, string], *config.Dataset, error) {
	d, err := loadDataset(cmd, opts, path)
	if err != nil {
		return nil, nil, err
	}
	m := d.NewMap(opts.Logger)
	opts.Logger.Debug("dataset loaded",
		"path", path,
		"entries", len(d.Entries),
		"size", m.Len(),
		"numeric", d.Settings.Numeric,
		"duplicates", d.Settings.Duplicates,
	)
	return m, d, nil
}
