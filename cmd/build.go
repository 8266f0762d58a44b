package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agentic-research/lumiere/internal/artifact"
	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/watch"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildCmd(o *options) *cobra.Command {
	var watchSources bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the css, js, d.ts and json artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if err := runBuild(ctx, o, out); err != nil {
				return err
			}
			if !watchSources {
				return nil
			}

			files, err := o.sourceFiles()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Watching %d source file(s)...\n", len(files))
			w := watch.New(files, watch.DefaultDebounce, func(changed []string) {
				o.logger.Info("sources changed", zap.Strings("files", changed))
				if err := runBuild(ctx, o, out); err != nil {
					o.logger.Error("rebuild failed", zap.Error(err))
				}
			}, o.logger)
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&o.cfg.OutDir, "out", "o", o.cfg.OutDir, "Output directory")
	cmd.Flags().BoolVarP(&watchSources, "watch", "w", false, "Rebuild when source files change")
	return cmd
}

// runBuild loads the document and writes every artifact under the
// output directory.
func runBuild(ctx context.Context, o *options, out io.Writer) error {
	start := time.Now()
	doc, err := o.loadDocument(ctx)
	if err != nil {
		return err
	}

	sink := artifact.NewFSSink(osfs.New(o.cfg.OutDir), o.logger)
	written, err := artifact.Build(ctx, doc, sink)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	printSummary(out, o.cfg.OutDir, written, time.Since(start))
	return nil
}

func printSummary(out io.Writer, dir string, written []emit.Artifact, took time.Duration) {
	name := color.New(color.Bold)
	size := color.New(color.FgHiBlack)
	for _, a := range written {
		fmt.Fprintf(out, "  %s %s\n", name.Sprint(dir+"/"+a.Name), size.Sprint(humanize.Bytes(uint64(len(a.Body)))))
	}
	color.New(color.FgGreen).Fprintf(out, "Built %d artifacts in %v.\n", len(written), took.Round(time.Millisecond))
}
