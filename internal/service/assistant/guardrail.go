package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/salesdash/internal/core"
)

type Intent string

const (
	IntentStore    Intent = "store"
	IntentChitChat Intent = "chitchat"
	IntentOffTopic Intent = "off_topic"
)

// classify asks the model which kind of message question is. Unrecognised
// labels count as store questions.
func (a *Assistant) classify(ctx context.Context, question string) (Intent, error) {
	msgs := []core.Message{
		{Role: core.RoleSystem, Content: classifierPrompt},
		{Role: core.RoleUser, Content: question},
	}

	resp, err := a.ai.Chat(ctx, msgs, nil)
	if err != nil {
		return "", fmt.Errorf("failed to classify question: %w", err)
	}
	return parseIntent(resp.Content), nil
}

func parseIntent(label string) Intent {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "off_topic"), strings.Contains(l, "off-topic"), strings.Contains(l, "off topic"):
		return IntentOffTopic
	case strings.Contains(l, "chitchat"), strings.Contains(l, "chit-chat"):
		return IntentChitChat
	default:
		return IntentStore
	}
}

// isRefusal matches the refusal sentence, also when the model corrects
// its spelling.
func isRefusal(text string) bool {
	l := strings.ToLower(text)
	return strings.Contains(l, "kindly ask store related questions") ||
		strings.Contains(l, strings.ToLower(RefusalMessage))
}
