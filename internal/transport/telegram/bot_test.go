package telegram

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/service/assistant"
	"github.com/sandevgo/salesdash/internal/service/command"
	"github.com/sandevgo/salesdash/internal/session"
)

type echoAnswerer struct {
	sessions []*session.Session
}

func (e *echoAnswerer) Answer(ctx context.Context, s *session.Session, question string) assistant.Reply {
	e.sessions = append(e.sessions, s)
	return assistant.Reply{Text: "echo: " + question}
}

func newTestBot() (*Bot, *echoAnswerer) {
	ds := sales.NewDataset([]sales.Record{{
		ID: uuid.New(), Year: 2022, Month: 1, ItemName: "Wawa", Category: "Cabbage",
		Kind: sales.KindSale, TotalValue: decimal.NewFromInt(10),
	}})
	store := session.NewStore(ds)
	ai := &echoAnswerer{}
	return &Bot{router: command.NewRouter(ds, store), store: store, ai: ai}, ai
}

func TestBot_Respond(t *testing.T) {
	ctx := context.Background()
	b, ai := newTestBot()

	assert.Equal(t, "echo: how much cabbage?", b.respond(ctx, "telegram-1", "  how much cabbage? "))

	help := b.respond(ctx, "telegram-1", "/start")
	assert.Contains(t, help, "/kpi")

	kpi := b.respond(ctx, "telegram-1", "/kpi@salesbot")
	assert.Contains(t, kpi, "No. of Sales")

	b.respond(ctx, "telegram-2", "hello")
	require.Len(t, ai.sessions, 2)
	assert.NotSame(t, ai.sessions[0], ai.sessions[1])
}

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{name: "short", text: "hello", maxLen: 10, want: []string{"hello"}},
		{name: "newline break", text: "aaaaaa\nbbbbbb", maxLen: 10, want: []string{"aaaaaa", "bbbbbb"}},
		{name: "hard cut", text: strings.Repeat("x", 25), maxLen: 10, want: []string{
			strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5),
		}},
		{name: "two byte runes", text: strings.Repeat("é", 6), maxLen: 5, want: []string{"éé", "éé", "éé"}},
		{name: "emoji", text: "📊📊📊", maxLen: 6, want: []string{"📊", "📊", "📊"}},
		{name: "not inside a tag", text: "<b>bold</b> <i>italic</i>", maxLen: 14, want: []string{"<b>bold</b>", "<i>italic</i>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitHTML(tt.text, tt.maxLen))
		})
	}
}

func TestSplitHTML_AnswerNearLimit(t *testing.T) {
	line := "<b>Cabbage</b> sold (US $) 1,234.56 ≈ 12.5 kg 🥬"
	text := strings.TrimSuffix(strings.Repeat(line+" ", 200), " ")

	parts := splitHTML(text, replyLimit)
	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), replyLimit)
		assert.True(t, utf8.ValidString(p))
		assert.Equal(t, strings.Count(p, "<"), strings.Count(p, ">"), "tag cut in half")
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(parts, " ")))
}

type recordingPoster struct {
	sent []string
	opts [][]any
}

func (r *recordingPoster) Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error) {
	r.sent = append(r.sent, what.(string))
	r.opts = append(r.opts, opts)
	return &tele.Message{}, nil
}

func TestSender_SendAnswer(t *testing.T) {
	out := &recordingPoster{}
	s := newSender(out)

	err := s.sendAnswer(context.Background(), &tele.User{ID: 1}, "Revenue was **(US $) 1,540.50**")
	require.NoError(t, err)

	require.Len(t, out.sent, 1)
	assert.Contains(t, out.sent[0], "<strong>(US $) 1,540.50</strong>")
	assert.Contains(t, out.opts[0], tele.ModeHTML)

	require.NoError(t, s.sendAnswer(context.Background(), &tele.User{ID: 1}, "   "))
	assert.Len(t, out.sent, 1, "blank answers are not sent")
}
