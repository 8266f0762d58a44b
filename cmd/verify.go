package cmd

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/artifact"
	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/linter"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

func newVerifyCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check built artifacts against the current document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.loadDocument(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bad := color.New(color.FgRed)
			fs := osfs.New(o.cfg.OutDir)

			var problems []string
			for _, f := range emit.Formats() {
				body, err := artifact.ReadBuilt(fs, f)
				if err != nil {
					problems = append(problems, fmt.Sprintf("%s: %v", f.BuildPath(), err))
					continue
				}
				if err := emit.Validate(f.BuildPath(), body); err != nil {
					problems = append(problems, err.Error())
					continue
				}
				want, err := emit.Render(f, doc)
				if err != nil {
					return err
				}
				if !bytes.Equal(body, want.Body) {
					problems = append(problems, f.BuildPath()+": stale, rebuild required")
					continue
				}
				if f == emit.JSON {
					if err := checkJSON(body, doc); err != nil {
						problems = append(problems, fmt.Sprintf("%s: %v", f.BuildPath(), err))
					}
				}
			}

			if css, err := artifact.ReadBuilt(fs, emit.CSS); err == nil {
				diags, err := linter.Lint(css)
				if err != nil {
					return fmt.Errorf("lint: %w", err)
				}
				warn := color.New(color.FgYellow)
				for _, d := range diags {
					warn.Fprintf(out, "  warning: %s: %s\n", emit.CSS.BuildPath(), d)
				}
			}

			for _, p := range problems {
				bad.Fprintln(out, "  "+p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("verify: %d problem(s) in %s", len(problems), o.cfg.OutDir)
			}
			color.New(color.FgGreen).Fprintf(out, "All %d artifacts in %s are current.\n", len(emit.Formats()), o.cfg.OutDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.cfg.OutDir, "out", "o", o.cfg.OutDir, "Output directory to check")
	return cmd
}

// checkJSON parses the JSON artifact and compares it structurally with
// doc, then checks it against the declaration contract.
func checkJSON(body []byte, doc *api.Document) error {
	v, err := oj.Parse(body)
	if err != nil {
		return err
	}
	parsed, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("top level is %T, want object", v)
	}
	if err := api.Conforms(parsed); err != nil {
		return err
	}
	got := make(map[string]map[string]string, len(parsed))
	for name, c := range parsed {
		entries, _ := c.(map[string]any)
		cat := make(map[string]string, len(entries))
		for k, val := range entries {
			s, _ := val.(string)
			cat[k] = s
		}
		got[name] = cat
	}
	if !maps.EqualFunc(got, doc.Map(), maps.Equal) {
		return fmt.Errorf("content differs from the current document")
	}
	return nil
}
