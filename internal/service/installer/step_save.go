package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// SaveEnvStep writes the collected answers to the runtime .env file.
type SaveEnvStep struct{}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if _, ok := msg.(nextMsg); !ok {
		return s, nil
	}
	if err := SaveEnv(state); err != nil {
		return s, func() tea.Msg { return errMsg(err) }
	}
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	return fmt.Sprintf("Writing %s...\n", state.EnvPath)
}

// SaveEnv renders the state and writes it. An existing file is kept
// unless state.Force is set.
func SaveEnv(state *InstallState) error {
	if !state.Force {
		if _, err := os.Stat(state.EnvPath); err == nil {
			return fmt.Errorf("%s already exists, rerun with --force to overwrite", state.EnvPath)
		}
	}

	body, err := state.Render()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(state.EnvPath), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}
	// credentials live in this file
	if err := os.WriteFile(state.EnvPath, []byte(body), 0600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	state.Saved = true
	return nil
}
