package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep collects one free-form value. An empty answer keeps the
// current value of the field; validate may reject the input.
type InputStep struct {
	prompt   string
	input    textinput.Model
	current  func(*InstallState) string
	apply    func(*InstallState, string) error
	err      error
	required bool
}

type inputOption func(*InputStep)

func withSecret() inputOption {
	return func(s *InputStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

func withPlaceholder(p string) inputOption {
	return func(s *InputStep) {
		s.input.Placeholder = p
	}
}

func withRequired() inputOption {
	return func(s *InputStep) {
		s.required = true
	}
}

func NewInputStep(
	prompt string,
	current func(*InstallState) string,
	apply func(*InstallState, string) error,
	opts ...inputOption,
) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50

	s := &InputStep{
		prompt:  prompt,
		input:   ti,
		current: current,
		apply:   apply,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" && s.current != nil {
			value = s.current(state)
		}
		if value == "" && s.required {
			s.err = errEmptyValue
			return s, nil
		}
		if err := s.apply(state, value); err != nil {
			s.err = err
			return s, nil
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n")
	if s.current != nil {
		if cur := s.current(state); cur != "" && s.input.EchoMode == textinput.EchoNormal {
			b.WriteString(descStyle.Render("current: "+cur) + "\n")
		}
	}
	b.WriteString("\n" + s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(errorStyle.Render(s.err.Error()) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}
