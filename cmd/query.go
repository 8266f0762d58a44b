package cmd

import (
	"fmt"

	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

func newQueryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "query <jsonpath>",
		Short:   "Evaluate a JSONPath against the token document",
		Example: "  lumiere query '$.lumiere.navy'\n  lumiere query '$.spacing.*'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := jp.ParseString(args[0])
			if err != nil {
				return fmt.Errorf("parse jsonpath: %w", err)
			}
			doc, err := o.loadDocument(cmd.Context())
			if err != nil {
				return err
			}
			data, err := oj.Parse(emit.JSONDocument(doc))
			if err != nil {
				return err
			}
			results := x.Get(data)
			if len(results) == 0 {
				return fmt.Errorf("no match for %s", args[0])
			}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(r, &ojg.Options{Indent: 2, Sort: true}))
			}
			return nil
		},
	}
}
