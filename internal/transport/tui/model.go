// Package tui is the terminal dashboard: year and category pickers, the
// dashboard panels and a chat with the assistant.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/service/assistant"
	"github.com/sandevgo/salesdash/internal/service/dashboard"
	"github.com/sandevgo/salesdash/internal/session"
	"github.com/sandevgo/salesdash/pkg/log"
)

const sessionID = "local"

type Answerer interface {
	Answer(ctx context.Context, s *session.Session, question string) assistant.Reply
}

type focus int

const (
	focusYears focus = iota
	focusCategories
	focusChat
	focusCount
)

type replyMsg struct {
	reply assistant.Reply
}

type Model struct {
	ctx    context.Context
	ds     *sales.Dataset
	store  *session.Store
	router core.CmdRouter
	ai     Answerer

	// view and transcript are copies so rendering never waits on a running turn.
	view       dashboard.View
	transcript []session.Turn

	focus      focus
	yearCursor int
	catCursor  int
	input      textinput.Model
	spinner    spinner.Model
	pending    bool

	width  int
	height int
}

func New(ctx context.Context, ds *sales.Dataset, store *session.Store, router core.CmdRouter, ai Answerer) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the store, or /help"
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		ds:      ds,
		store:   store,
		router:  router,
		ai:      ai,
		input:   ti,
		spinner: sp,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-8)
		return m, nil

	case replyMsg:
		m.pending = false
		m.transcript = append(m.transcript, session.Turn{Role: core.RoleAssistant, Text: msg.reply.Text})
		return m, m.input.Focus()

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.cycleFocus(1)
		case "shift+tab":
			return m.cycleFocus(int(focusCount) - 1)
		}
		if m.pending {
			// one turn at a time
			return m, nil
		}
		if m.focus == focusChat {
			return m.updateChat(msg)
		}
		return m.updatePicker(msg)
	}

	if m.focus == focusChat && !m.pending {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) cycleFocus(step int) (tea.Model, tea.Cmd) {
	m.focus = (m.focus + focus(step)) % focusCount
	if m.focus == focusChat && !m.pending {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cursor, size := &m.yearCursor, len(m.view.YearOptions)
	if m.focus == focusCategories {
		cursor, size = &m.catCursor, len(m.view.CategoryOptions)
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
	case "down", "j":
		if *cursor < size-1 {
			*cursor++
		}
	case " ", "enter", "x":
		if size == 0 {
			return m, nil
		}
		m.withSession(func(s *session.Session) {
			if m.focus == focusYears {
				s.ToggleYear(m.view.YearOptions[*cursor])
			} else {
				s.ToggleCategory(m.view.CategoryOptions[*cursor])
			}
		})
	case "a":
		m.withSession(func(s *session.Session) {
			if m.focus == focusYears {
				s.SetYears(m.ds.Years())
			} else {
				s.SetCategories(m.ds.Categories())
			}
		})
	case "n":
		m.withSession(func(s *session.Session) {
			if m.focus == focusYears {
				s.SetYears(nil)
			} else {
				s.SetCategories(nil)
			}
		})
	case "r":
		m.withSession(func(s *session.Session) { s.Reset() })
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.cycleFocus(1)
	case "enter":
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.transcript = append(m.transcript, session.Turn{Role: core.RoleUser, Text: text})

	if out, ok := m.router.Execute(m.ctx, sessionID, text); ok {
		m.transcript = append(m.transcript, session.Turn{Role: core.RoleAssistant, Text: out})
		// commands may change the filters
		m.refresh()
		return m, nil
	}

	m.pending = true
	m.input.Blur()
	return m, tea.Batch(m.spinner.Tick, m.ask(text))
}

// ask runs the blocking assistant turn off the update loop.
func (m Model) ask(question string) tea.Cmd {
	ctx, store, ai := m.ctx, m.store, m.ai
	return func() tea.Msg {
		var reply assistant.Reply
		store.With(sessionID, func(s *session.Session) {
			reply = ai.Answer(ctx, s, question)
		})
		return replyMsg{reply: reply}
	}
}

func (m *Model) withSession(fn func(*session.Session)) {
	m.store.With(sessionID, fn)
	m.refresh()
}

func (m *Model) refresh() {
	var f sales.Filters
	m.store.With(sessionID, func(s *session.Session) { f = s.Filters() })
	m.view = dashboard.Build(m.ds, f)
	log.FromCtx(m.ctx).Debug().
		Ints("years", f.Years).
		Strs("categories", f.Categories).
		Msg("dashboard refreshed")
}
