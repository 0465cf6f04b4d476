package sqltool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/pkg/log"
)

// NewMCPServer exposes the query tool to external MCP clients.
func NewMCPServer(q Querier, d Dialect) *server.MCPServer {
	s := server.NewMCPServer(core.AppName, core.AppVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(newTool(d), handleCall(q))
	return s
}

func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func handleCall(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := q.Run(ctx, query)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("mcp query failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(res.String()), nil
	}
}
