package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	id    string
	title string
	desc  string
}

// ChoiceStep picks one option from a fixed list.
type ChoiceStep struct {
	prompt  string
	choices []choice
	cursor  int
	apply   func(*InstallState, string)
}

func NewChoiceStep(prompt string, choices []choice, apply func(*InstallState, string)) *ChoiceStep {
	return &ChoiceStep{
		prompt:  prompt,
		choices: choices,
		apply:   apply,
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.choices[s.cursor].id)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	for i, c := range s.choices {
		line := c.title
		if c.desc != "" {
			line += descStyle.Render("  " + c.desc)
		}
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", line)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", line)) + "\n")
		}
	}
	b.WriteString("\n(↑/↓ to move, enter to select, ctrl+c to quit)\n")
	return b.String()
}
