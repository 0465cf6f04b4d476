package main

import (
	"github.com/sandevgo/salesdash/internal/providers/sqltool"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the sales query tool over MCP stdio",
	Long:  `Exposes the read-only sales query tool to MCP clients. Logs go to the runtime directory; stdout carries the protocol.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, flushLog := bootstrap(cmd.Context(), true)
		defer flushLog()
		logger := log.FromCtx(ctx)

		a, err := newApp(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("mcp failed")
			return err
		}
		q, dialect, err := a.newQueryTool(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("mcp failed")
			return err
		}

		logger.Info().Str("dialect", dialect.String()).Msg("serving MCP over stdio")
		return sqltool.ServeStdio(sqltool.NewMCPServer(q, dialect))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
