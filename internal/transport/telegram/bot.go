package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/internal/service/assistant"
	"github.com/sandevgo/salesdash/internal/session"
	"github.com/sandevgo/salesdash/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Answerer interface {
	Answer(ctx context.Context, s *session.Session, question string) assistant.Reply
}

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	router  core.CmdRouter
	store   *session.Store
	ai      Answerer
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	router core.CmdRouter,
	store *session.Store,
	ai Answerer,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		router:  router,
		store:   store,
		ai:      ai,
		ownerID: cfg.GetTelegramOwnerID(),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	answer := b.respond(ctx, sessionID, c.Text())
	return b.sender.sendAnswer(ctx, c.Recipient(), answer)
}

// respond routes commands and hands everything else to the assistant.
// Turns for one chat never overlap; different chats run in parallel.
func (b *Bot) respond(ctx context.Context, sessionID, text string) string {
	text = strings.TrimSpace(text)
	if text == "/start" {
		text = "/help"
	}

	if out, ok := b.router.Execute(ctx, sessionID, text); ok {
		return out
	}

	var reply assistant.Reply
	b.store.With(sessionID, func(s *session.Session) {
		reply = b.ai.Answer(ctx, s, text)
	})
	log.FromCtx(ctx).Debug().Str("session", sessionID).Bool("refused", reply.Refused).Msg("telegram turn answered")
	return reply.Text
}
