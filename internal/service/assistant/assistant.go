// Package assistant answers store questions with the help of a language
// model that may run one read query against the sales database.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/internal/providers/llm"
	"github.com/sandevgo/salesdash/internal/providers/sqltool"
	"github.com/sandevgo/salesdash/internal/session"
	"github.com/sandevgo/salesdash/pkg/log"
)

type Querier interface {
	Run(ctx context.Context, query string) (sqltool.Result, error)
}

type Options struct {
	Dialect sqltool.Dialect
	// HistoryWindow keeps only the newest messages of the transcript. Zero keeps all.
	HistoryWindow int
	// TokenBudget caps the transcript sent with each question. Zero sends it all.
	TokenBudget int
	// CountTokens defaults to llm.CountTokens.
	CountTokens func(string) int
}

type Assistant struct {
	ai   core.AIProvider
	db   Querier
	tool core.Tool
	opts Options
}

// Reply is the outcome of one turn.
type Reply struct {
	Text      string
	Refused   bool
	ToolCalls int
	Query     string
}

var errNoAnswer = errors.New("model returned no answer")

func New(ai core.AIProvider, db Querier, opts Options) (*Assistant, error) {
	tool, err := sqltool.Definition(opts.Dialect)
	if err != nil {
		return nil, err
	}
	if opts.CountTokens == nil {
		opts.CountTokens = llm.CountTokens
	}

	return &Assistant{
		ai:   ai,
		db:   db,
		tool: tool,
		opts: opts,
	}, nil
}

// Answer runs one turn and records it in s. It always produces a reply;
// failures end in FallbackMessage.
func (a *Assistant) Answer(ctx context.Context, s *session.Session, question string) Reply {
	logger := log.FromCtx(ctx)
	question = strings.TrimSpace(question)

	history := s.Messages()
	s.AppendTurn(core.RoleUser, question)

	reply, err := a.answer(ctx, s, history, question)
	if err != nil {
		logger.Error().Err(err).Str("question", question).Msg("assistant turn failed")
		reply.Text = FallbackMessage
		reply.Refused = false
	}

	logger.Info().
		Bool("refused", reply.Refused).
		Int("tool_calls", reply.ToolCalls).
		Str("query", reply.Query).
		Msg("assistant replied")

	s.AppendTurn(core.RoleAssistant, reply.Text)
	return reply
}

func (a *Assistant) answer(ctx context.Context, s *session.Session, history []core.Message, question string) (Reply, error) {
	var reply Reply

	intent, err := a.classify(ctx, question)
	if err != nil {
		return reply, err
	}
	log.FromCtx(ctx).Debug().Str("intent", string(intent)).Msg("question classified")

	if intent == IntentOffTopic {
		reply.Text = RefusalMessage
		reply.Refused = true
		return reply, nil
	}

	msgs := a.buildMessages(s, history, question)

	resp, err := a.ai.Chat(ctx, msgs, []core.Tool{a.tool})
	if err != nil {
		return reply, fmt.Errorf("decision call failed: %w", err)
	}

	if len(resp.ToolCalls) == 0 {
		return a.finish(reply, resp.Content)
	}

	call, err := a.queryCall(resp.ToolCalls)
	if err != nil {
		return reply, err
	}
	reply.ToolCalls = 1

	query, err := sqltool.ParseArguments(call.Function.Arguments)
	if err != nil {
		return reply, err
	}
	reply.Query = query

	res, err := a.db.Run(ctx, query)
	if err != nil {
		return reply, fmt.Errorf("sales query failed: %w", err)
	}

	msgs = append(msgs,
		core.Message{Role: core.RoleAssistant, Content: resp.Content, ToolCalls: []core.ToolCall{call}},
		core.Message{Role: core.RoleTool, Content: res.String(), ToolCallID: call.ID},
	)

	final, err := a.ai.Chat(ctx, msgs, nil)
	if err != nil {
		return reply, fmt.Errorf("answer call failed: %w", err)
	}
	return a.finish(reply, final.Content)
}

func (a *Assistant) buildMessages(s *session.Session, history []core.Message, question string) []core.Message {
	if w := a.opts.HistoryWindow; w > 0 && len(history) > w {
		history = history[len(history)-w:]
	}
	turns := append(history, core.Message{Role: core.RoleUser, Content: question})
	if a.opts.TokenBudget > 0 {
		turns = llm.TrimToBudget(turns, a.opts.TokenBudget, a.opts.CountTokens)
	}

	msgs := make([]core.Message, 0, len(turns)+1)
	msgs = append(msgs, core.Message{Role: core.RoleSystem, Content: systemPrompt(a.tool.Function.Name, s.Filters())})
	return append(msgs, turns...)
}

// queryCall picks the database call out of the model's tool calls.
func (a *Assistant) queryCall(calls []core.ToolCall) (core.ToolCall, error) {
	for _, c := range calls {
		if c.Function.Name == a.tool.Function.Name {
			return c, nil
		}
	}
	return core.ToolCall{}, fmt.Errorf("model called unknown tool %q", calls[0].Function.Name)
}

func (a *Assistant) finish(reply Reply, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return reply, errNoAnswer
	}
	if isRefusal(text) {
		reply.Text = RefusalMessage
		reply.Refused = true
		return reply, nil
	}
	reply.Text = text
	return reply, nil
}
