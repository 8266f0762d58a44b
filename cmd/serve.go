package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/agentic-research/lumiere/internal/prefs"
	"github.com/agentic-research/lumiere/internal/tokens"
	"github.com/agentic-research/lumiere/internal/viewer"
	"github.com/agentic-research/lumiere/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(o *options) *cobra.Command {
	var watchSources bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the token viewer with on-demand downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.loadDocument(cmd.Context())
			if err != nil {
				return err
			}
			docs := tokens.NewHolder(doc)

			store, closeStore, err := openPrefs(o.cfg.PrefsDB)
			if err != nil {
				return err
			}
			defer closeStore()

			var files []string
			if watchSources {
				if files, err = o.sourceFiles(); err != nil {
					return err
				}
			}

			ln, err := net.Listen("tcp", o.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", o.cfg.Addr, err)
			}
			srv := &http.Server{
				Handler:           viewer.New(docs, prefs.New(store), o.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving tokens at http://%s\n", ln.Addr())

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			if watchSources {
				g.Go(func() error {
					return watch.New(files, watch.DefaultDebounce, func(changed []string) {
						next, err := o.loadDocument(ctx)
						if err != nil {
							o.logger.Error("reload failed", zap.Error(err))
							return
						}
						docs.Swap(next)
						o.logger.Info("document reloaded",
							zap.Strings("files", changed),
							zap.Uint64("version", docs.Version()))
					}, o.logger).Run(ctx)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&o.cfg.Addr, "addr", o.cfg.Addr, "Listen address")
	cmd.Flags().StringVar(&o.cfg.PrefsDB, "prefs-db", o.cfg.PrefsDB, "SQLite file for viewer preferences (default in-memory)")
	cmd.Flags().BoolVarP(&watchSources, "watch", "w", false, "Reload the document when source files change")
	return cmd
}

// openPrefs returns the sqlite store when path is set, else an in-memory
// store.
func openPrefs(path string) (prefs.Store, func(), error) {
	if path == "" {
		return prefs.NewMemoryStore(), func() {}, nil
	}
	s, err := prefs.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}
