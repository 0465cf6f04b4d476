package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/salesdash/pkg/conv"
	"github.com/sandevgo/salesdash/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// Telegram rejects messages over 4096 characters; keep some slack for entities.
const replyLimit = 4000

// poster is the part of *tele.Bot the replies go through.
type poster interface {
	Send(to tele.Recipient, what any, opts ...any) (*tele.Message, error)
}

type sender struct {
	out poster
}

func newSender(out poster) *sender {
	return &sender{out: out}
}

// sendAnswer renders an assistant answer as Telegram HTML and posts it,
// split into as many messages as the length limit needs.
func (s *sender) sendAnswer(ctx context.Context, to tele.Recipient, answer string) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(answer)))
	if html == "" {
		return nil
	}

	parts := splitHTML(html, replyLimit)
	for i, part := range parts {
		if _, err := s.out.Send(to, part, tele.ModeHTML, tele.NoPreview); err != nil {
			log.FromCtx(ctx).Error().
				Err(err).
				Int("part", i+1).
				Int("parts", len(parts)).
				Int("bytes", len(part)).
				Msg("failed to send answer")
			return fmt.Errorf("failed to send answer part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}

// splitHTML cuts text into pieces of at most limit bytes. Cuts fall on a
// line break or space when one is close enough, never inside a UTF-8
// sequence and never inside a <tag>.
func splitHTML(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := cutPoint(text, limit)
		parts = append(parts, strings.TrimRightFunc(text[:cut], isSpace))
		text = strings.TrimLeftFunc(text[cut:], isSpace)
	}
	if text != "" || len(parts) == 0 {
		parts = append(parts, text)
	}
	return parts
}

// cutPoint expects len(text) > limit.
func cutPoint(text string, limit int) int {
	end := limit
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}

	window := text[:end]
	if open := strings.LastIndexByte(window, '<'); open > strings.LastIndexByte(window, '>') {
		window = window[:open]
	}
	if window == "" {
		// a single tag longer than limit
		if closing := strings.IndexByte(text, '>'); closing >= 0 {
			return closing + 1
		}
		return max(end, 1)
	}

	for _, sep := range []string{"\n", " "} {
		if i := strings.LastIndex(window, sep); i > len(window)/3 {
			return i
		}
	}
	return len(window)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
