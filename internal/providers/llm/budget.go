package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/salesdash/internal/core"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		// nil on failure; the BPE ranks are fetched on first use
		tk, _ = tiktoken.GetEncoding("cl100k_base")
	})
	return tk
}

// CountTokens estimates the prompt size of text. Without a tokenizer it
// falls back to four bytes per token.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if enc := getTokenizer(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}

// TrimToBudget keeps the most recent messages whose combined size fits in
// budget. The newest message is always kept. A tool result is never kept
// without the assistant call that produced it.
func TrimToBudget(history []core.Message, budget int, count func(string) int) []core.Message {
	if len(history) == 0 {
		return history
	}
	if count == nil {
		count = CountTokens
	}

	start := len(history) - 1
	used := count(history[start].Content)
	for i := start - 1; i >= 0; i-- {
		used += count(history[i].Content)
		if used > budget {
			break
		}
		start = i
	}

	for start < len(history)-1 && history[start].Role == core.RoleTool {
		start++
	}
	return history[start:]
}
