package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/config"
	"github.com/agentic-research/lumiere/internal/source"
	"github.com/agentic-research/lumiere/internal/tokens"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options is the state shared by every subcommand. Environment values
// from config seed the flag defaults, so flags override the environment.
type options struct {
	cfg    config.Config
	logger *zap.Logger
	// injected is true when the caller supplied the logger.
	injected bool
}

func newRootCmd(cfg config.Config, logger *zap.Logger) *cobra.Command {
	o := &options{cfg: cfg, logger: logger, injected: logger != nil}

	root := &cobra.Command{
		Use:           "lumiere",
		Short:         "Lumière: design tokens for css, js and json",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.injected {
				return nil
			}
			zc := zap.NewProductionConfig()
			if o.cfg.Verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			o.logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil && !o.injected {
				_ = o.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&o.cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable debug logging")
	pf.StringArrayVar(&o.cfg.Sources, "source", cfg.Sources, "Token source file (repeatable, merged in order)")
	pf.StringArrayVar(&o.cfg.Globs, "glob", cfg.Globs, "Doublestar pattern for token sources (repeatable)")

	root.AddCommand(
		newBuildCmd(o),
		newServeCmd(o),
		newVerifyCmd(o),
		newQueryCmd(o),
		newMCPCmd(o),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = newRootCmd(cfg, nil).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// hasSources reports whether the document comes from files rather than
// the built-in records.
func (o *options) hasSources() bool {
	return len(o.cfg.Sources) > 0 || len(o.cfg.Globs) > 0
}

// loadDocument resolves the configured sources and aggregates them.
func (o *options) loadDocument(ctx context.Context) (*api.Document, error) {
	records, err := source.Resolve(ctx, ".", o.cfg.Sources, o.cfg.Globs)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	doc, err := tokens.Aggregate(records...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("document loaded",
		zap.Int("records", len(records)),
		zap.Strings("categories", doc.Names()))
	return doc, nil
}

// sourceFiles lists the files a watcher should follow.
func (o *options) sourceFiles() ([]string, error) {
	if !o.hasSources() {
		return nil, fmt.Errorf("--watch needs --source or --glob")
	}
	files := append([]string(nil), o.cfg.Sources...)
	found, err := source.Discover(".", o.cfg.Globs)
	if err != nil {
		return nil, err
	}
	return append(files, found...), nil
}
