package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/sandevgo/salesdash/internal/core"
)

func TestToGeminiContents(t *testing.T) {
	history := []core.Message{
		{Role: core.RoleSystem, Content: "persona"},
		{Role: core.RoleSystem, Content: "rules"},
		{Role: core.RoleUser, Content: "Top item?"},
		{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{
			ID: "call_0", Function: core.FunctionCall{Name: "query_sales_db", Arguments: `{"query":"SELECT 1"}`},
		}}},
		{Role: core.RoleTool, ToolCallID: "call_0", Content: "Item_Name: Cabbage"},
		{Role: core.RoleAssistant, Content: "Cabbage."},
	}

	system, contents := toGeminiContents(history)
	assert.Equal(t, "persona\n\nrules", system)
	require.Len(t, contents, 4)

	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, "Top item?", contents[0].Parts[0].Text)

	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	require.NotNil(t, contents[1].Parts[0].FunctionCall)
	assert.Equal(t, "query_sales_db", contents[1].Parts[0].FunctionCall.Name)
	assert.Equal(t, "SELECT 1", contents[1].Parts[0].FunctionCall.Args["query"])

	require.NotNil(t, contents[2].Parts[0].FunctionResponse)
	assert.Equal(t, "query_sales_db", contents[2].Parts[0].FunctionResponse.Name)
	assert.Equal(t, "Item_Name: Cabbage", contents[2].Parts[0].FunctionResponse.Response["output"])

	assert.Equal(t, "Cabbage.", contents[3].Parts[0].Text)
}

func TestToGeminiDeclarations(t *testing.T) {
	params := json.RawMessage(`{"type":"object"}`)
	decls := toGeminiDeclarations([]core.Tool{{Function: core.Function{Name: "query_sales_db", Parameters: params}}})

	require.Len(t, decls, 1)
	assert.Equal(t, "query_sales_db", decls[0].Name)
	assert.Equal(t, params, decls[0].ParametersJsonSchema)
}
