package cmd

import (
	"github.com/agentic-research/lumiere/internal/mcpserver"
	"github.com/agentic-research/lumiere/internal/tokens"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMCPCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the token document to MCP clients over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := o.loadDocument(cmd.Context())
			if err != nil {
				return err
			}
			o.logger.Debug("mcp server starting", zap.Strings("categories", doc.Names()))
			return mcpserver.Serve(tokens.NewHolder(doc))
		},
	}
}
