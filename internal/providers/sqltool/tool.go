package sqltool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/salesdash/internal/core"
)

const ToolName = "query_sales_db"

func newTool(d Dialect) mcp.Tool {
	desc := "Use this tool whenever you need to access the store sales database.\n" + SalesDataSchema().Describe(d)

	return mcp.NewTool(ToolName,
		mcp.WithDescription(desc),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("A single read-only SQL query"),
		),
	)
}

// Definition is the tool offered to the reasoning service.
func Definition(d Dialect) (core.Tool, error) {
	t := newTool(d)

	params, err := json.Marshal(t.InputSchema)
	if err != nil {
		return core.Tool{}, fmt.Errorf("failed to marshal tool schema: %w", err)
	}

	return core.Tool{
		Type: "function",
		Function: core.Function{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  params,
		},
	}, nil
}

type arguments struct {
	Query string `json:"query"`
}

// ParseArguments extracts the query from a tool call's JSON arguments.
func ParseArguments(raw string) (string, error) {
	var args arguments
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return "", fmt.Errorf("invalid tool arguments: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("invalid tool arguments: query is empty")
	}
	return args.Query, nil
}
