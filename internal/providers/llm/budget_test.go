package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/salesdash/internal/core"
)

func byteCount(s string) int { return len(s) }

func TestTrimToBudget(t *testing.T) {
	history := []core.Message{
		{Role: core.RoleUser, Content: "aaaaaaaaaa"},
		{Role: core.RoleAssistant, Content: "bbbbbbbbbb"},
		{Role: core.RoleUser, Content: "cccccccccc"},
		{Role: core.RoleAssistant, Content: "dddddddddd"},
		{Role: core.RoleUser, Content: "eeeee"},
	}

	t.Run("keeps everything under budget", func(t *testing.T) {
		assert.Equal(t, history, TrimToBudget(history, 100, byteCount))
	})

	t.Run("drops the oldest first", func(t *testing.T) {
		got := TrimToBudget(history, 24, byteCount)
		assert.Equal(t, history[3:], got)
	})

	t.Run("always keeps the newest", func(t *testing.T) {
		got := TrimToBudget(history, 1, byteCount)
		assert.Equal(t, history[4:], got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, TrimToBudget(nil, 10, byteCount))
	})
}

func TestTrimToBudget_NoOrphanToolResults(t *testing.T) {
	history := []core.Message{
		{Role: core.RoleAssistant, Content: "zzzzz", ToolCalls: []core.ToolCall{{ID: "1"}}},
		{Role: core.RoleTool, Content: "xxxxxxxxxx", ToolCallID: "1"},
		{Role: core.RoleUser, Content: "yyyyy"},
	}

	got := TrimToBudget(history, 15, byteCount)
	assert.Equal(t, history[2:], got)
}

func TestCountTokens_Empty(t *testing.T) {
	assert.Equal(t, 0, CountTokens(""))
}
