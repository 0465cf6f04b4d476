package installer

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var errEmptyValue = errors.New("a value is required")

// Step represents a single step in the setup wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// conditional skips the wrapped step when when() is false at the time it is reached.
type conditional struct {
	Step
	when func(*InstallState) bool
}

func onlyIf(when func(*InstallState) bool, step Step) Step {
	return conditional{Step: step, when: when}
}

func getSteps() []Step {
	return []Step{
		NewChoiceStep("Select your LLM provider:", []choice{
			{id: config.ProviderOpenAI, title: "OpenAI", desc: "api.openai.com"},
			{id: config.ProviderOpenRouter, title: "OpenRouter", desc: "many hosted models, one key"},
			{id: config.ProviderGemini, title: "Gemini", desc: "Google Gemini API"},
			{id: config.ProviderOllama, title: "Ollama", desc: "local OpenAI-compatible server"},
			{id: config.ProviderCustom, title: "Custom", desc: "any OpenAI-compatible endpoint"},
		}, func(s *InstallState, id string) {
			s.LLM.Provider = id
			if id == config.ProviderGemini {
				s.LLM.Model = "gemini-2.0-flash"
			}
		}),
		onlyIf((*InstallState).needsAPIKey, NewInputStep(
			"Enter your API key:",
			nil,
			func(s *InstallState, v string) error { s.LLM.APIKey = v; return nil },
			withSecret(), withRequired(),
		)),
		onlyIf((*InstallState).needsBaseURL, NewInputStep(
			"Enter the base URL of the OpenAI-compatible API:",
			func(s *InstallState) string { return s.LLM.GetBaseURL() },
			func(s *InstallState, v string) error {
				if _, err := url.ParseRequestURI(v); err != nil {
					return fmt.Errorf("invalid URL: %w", err)
				}
				s.LLM.BaseURL = v
				return nil
			},
			withPlaceholder("http://localhost:11434/v1"), withRequired(),
		)),
		NewInputStep(
			"Model name (enter keeps the current one):",
			func(s *InstallState) string { return s.LLM.Model },
			func(s *InstallState, v string) error { s.LLM.Model = v; return nil },
			withRequired(),
		),
		NewInputStep(
			"Path to the sales CSV (enter keeps the default):",
			func(s *InstallState) string { return "sales_data.csv" },
			func(s *InstallState, v string) error { s.App.DatasetPath = v; return nil },
		),
		NewChoiceStep("Where does the assistant run its SQL queries?", []choice{
			{id: config.DriverSQLite, title: "Local SQLite copy", desc: "seeded from the CSV"},
			{id: config.DriverSQLServer, title: "Azure SQL / SQL Server"},
			{id: config.DriverPostgres, title: "PostgreSQL"},
		}, func(s *InstallState, id string) { s.DB.Driver = id }),
		onlyIf((*InstallState).usesRemoteDB, NewInputStep(
			"Database server host:",
			nil,
			func(s *InstallState, v string) error { s.DB.Server = v; return nil },
			withPlaceholder("myserver.database.windows.net"), withRequired(),
		)),
		onlyIf((*InstallState).usesRemoteDB, NewInputStep(
			"Port (enter for the driver default):",
			nil,
			func(s *InstallState, v string) error {
				if v == "" {
					return nil
				}
				p, err := strconv.Atoi(v)
				if err != nil || p <= 0 || p > 65535 {
					return fmt.Errorf("invalid port %q", v)
				}
				s.DB.Port = p
				return nil
			},
		)),
		onlyIf((*InstallState).usesRemoteDB, NewInputStep(
			"Database name:",
			nil,
			func(s *InstallState, v string) error { s.DB.Name = v; return nil },
			withRequired(),
		)),
		onlyIf((*InstallState).usesRemoteDB, NewInputStep(
			"Database user:",
			nil,
			func(s *InstallState, v string) error { s.DB.User = v; return nil },
			withRequired(),
		)),
		onlyIf((*InstallState).usesRemoteDB, NewInputStep(
			"Database password:",
			nil,
			func(s *InstallState, v string) error { s.DB.Password = v; return nil },
			withSecret(),
		)),
		onlyIf((*InstallState).usesRemoteDB, NewChoiceStep("Encrypt the database connection?", []choice{
			{id: "yes", title: "Yes"},
			{id: "no", title: "No", desc: "local development only"},
		}, func(s *InstallState, id string) { s.DB.Encrypt = id == "yes" })),
		NewChoiceStep("Also answer on Telegram?", []choice{
			{id: "no", title: "No", desc: "terminal dashboard only"},
			{id: "yes", title: "Yes"},
		}, func(s *InstallState, id string) {
			if id == "yes" {
				// placeholder until the token step runs
				s.App.EnableTelegram = true
			}
		}),
		onlyIf(telegramSelected, NewInputStep(
			"Enter your Telegram Bot Token:",
			nil,
			func(s *InstallState, v string) error { s.Telegram.Token = v; return nil },
			withSecret(), withPlaceholder("123456789:ABCDEF..."), withRequired(),
		)),
		onlyIf(telegramSelected, NewInputStep(
			"Enter your Telegram User ID (Owner):",
			nil,
			func(s *InstallState, v string) error {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid user id %q", v)
				}
				s.Telegram.OwnerID = id
				return nil
			},
			withPlaceholder("123456789"), withRequired(),
		)),
		NewSaveEnvStep(),
	}
}

func telegramSelected(s *InstallState) bool {
	return s.App.EnableTelegram
}

type errMsg error
type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	err         error
	width       int
	height      int
}

func initialModel(state *InstallState) model {
	return model{
		steps: getSteps(),
		state: state,
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		m.err = msg
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.err != nil {
			return m, nil
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	current := m.steps[m.currentStep]
	nextStep, cmd := current.Update(msg, m.state, m.width, m.height)
	if nextStep != nil {
		if c, ok := current.(conditional); ok {
			c.Step = nextStep
			m.steps[m.currentStep] = c
		} else {
			m.steps[m.currentStep] = nextStep
		}
		return m, cmd
	}

	return m.advance()
}

// advance moves past the finished step and any conditional steps that do not apply.
func (m model) advance() (tea.Model, tea.Cmd) {
	for {
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		if c, ok := m.steps[m.currentStep].(conditional); ok && !c.when(m.state) {
			continue
		}
		return m, m.steps[m.currentStep].Init()
	}
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	}

	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}

	return titleStyle.Render("Setting up "+core.AppName+" 📊") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes envPath when every step is answered.
func RunWizard(envPath string, force bool) (*InstallState, error) {
	p := tea.NewProgram(initialModel(NewInstallState(envPath, force)), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("setup interrupted")
	}
	if finalModel.err != nil {
		return nil, finalModel.err
	}

	return finalModel.state, nil
}
