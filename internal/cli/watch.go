package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dshills/orderly/internal/config"
	"github.com/dshills/orderly/internal/config/watcher"
	"github.com/dshills/orderly/internal/engine/tree"
	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/metrics"
)

// WatchOptions holds the flags of the watch command.
type WatchOptions struct {
	Debounce    time.Duration
	MetricsAddr string
}

// NewWatchCommand creates the watch subcommand.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	wopts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Print the change events produced by edits to a dataset",
		Long: `Load FILE, print its initial content as a change event, then reload the
file whenever it is written and print the change each reload publishes.
Removed entries are prefixed with "-" and added entries with "+".

With --metrics-addr, change counters and the map size are served in the
Prometheus text format at /metrics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, wopts, args[0])
		},
	}

	cmd.Flags().DurationVar(&wopts.Debounce, "debounce", 100*time.Millisecond, "delay between a write and the reload")
	cmd.Flags().StringVar(&wopts.MetricsAddr, "metrics-addr", "", "serve metrics on this address, e.g. :9090")
	return cmd
}

// session is a watched map and its reload state.
type session struct {
	cmd   *cobra.Command
	opts  *RootOptions
	path  string
	order config.Settings

	m      *tree.Map[string, string]
	keeper *event.Keeper
}

func runWatch(cmd *cobra.Command, opts *RootOptions, wopts *WatchOptions, path string) error {
	m, d, err := loadMap(cmd, opts, path)
	if err != nil {
		return err
	}
	s := &session{
		cmd:    cmd,
		opts:   opts,
		path:   path,
		order:  d.Settings,
		m:      m,
		keeper: event.NewKeeper(),
	}
	s.m.Subscribe(s.keeper, s.print)

	if wopts.MetricsAddr != "" {
		tracker := metrics.Track[entry](s.m, path)
		defer tracker.Close()
		stop := serveMetrics(wopts.MetricsAddr, opts)
		defer stop()
	}

	w, err := watcher.New(path, s.reload,
		watcher.WithDebounce(wopts.Debounce),
		watcher.WithLogger(opts.Logger.With("system", "watcher")),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to watch dataset", err)
	}
	defer w.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Logger.Info("watching", "path", w.Path())
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// print writes one change to the command's output.
func (s *session) print(c event.Change[entry]) {
	if err := writeChange(s.cmd.OutOrStdout(), s.opts.Format, c); err != nil {
		s.opts.Logger.Error("write change", "error", err)
	}
}

// reload re-reads the dataset and swaps it into the map, switching the key
// order when the ordering settings changed. Each reload publishes one change.
func (s *session) reload() error {
	d, err := loadDataset(s.cmd, s.opts, s.path)
	if err != nil {
		return err
	}

	if d.Settings.Duplicates == s.m.Unique() {
		s.opts.Logger.Warn("duplicates setting changed; restart to apply", "path", s.path)
	}
	if d.Settings.Numeric == s.order.Numeric && d.Settings.Collation == s.order.Collation {
		s.m.Replace(d.Pairs())
		return nil
	}
	s.order = d.Settings
	s.m.Rebuild(s.order.Order(), d.Pairs())
	return nil
}

// serveMetrics starts an HTTP server exposing the Prometheus registry and
// returns a function shutting it down.
func serveMetrics(addr string, opts *RootOptions) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			opts.Logger.Error("metrics server", "addr", addr, "error", err)
		}
	}()
	opts.Logger.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			opts.Logger.Warn("metrics server shutdown", "error", err)
		}
	}
}
