package installer

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/salesdash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallState_Render(t *testing.T) {
	t.Run("local defaults", func(t *testing.T) {
		s := NewInstallState("", false)
		s.LLM.APIKey = "sk-test"

		body, err := s.Render()
		require.NoError(t, err)

		vars, err := godotenv.Unmarshal(body)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"LLM_PROVIDER":    "openai",
			"LLM_MODEL":       "gpt-3.5-turbo",
			"LLM_API_KEY":     "sk-test",
			"SALES_DB_DRIVER": "sqlite3",
		}, vars)
	})

	t.Run("remote database without encryption", func(t *testing.T) {
		s := NewInstallState("", false)
		s.DB = config.DBConfig{
			Driver:   config.DriverSQLServer,
			Server:   "srv.example.net",
			Name:     "sales",
			User:     "reader",
			Password: "p w#1",
		}

		body, err := s.Render()
		require.NoError(t, err)

		vars, err := godotenv.Unmarshal(body)
		require.NoError(t, err)
		assert.Equal(t, "sqlserver", vars["SALES_DB_DRIVER"])
		assert.Equal(t, "srv.example.net", vars["SALES_DB_SERVER"])
		assert.Equal(t, "p w#1", vars["SALES_DB_PASSWORD"])
		assert.Equal(t, "false", vars["SALES_DB_ENCRYPT"])
	})

	t.Run("telegram enabled by token", func(t *testing.T) {
		s := NewInstallState("", false)
		s.Telegram = config.TelegramConfig{Token: "123:abc", OwnerID: 42}

		body, err := s.Render()
		require.NoError(t, err)

		vars, err := godotenv.Unmarshal(body)
		require.NoError(t, err)
		assert.Equal(t, "true", vars["ENABLE_TELEGRAM"])
		assert.Equal(t, "123:abc", vars["TELEGRAM_TOKEN"])
		assert.Equal(t, "42", vars["TELEGRAM_OWNER_ID"])
	})
}

func TestSaveEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt", ".env")

	s := NewInstallState(path, false)
	require.NoError(t, SaveEnv(s))
	assert.True(t, s.Saved)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	err = SaveEnv(NewInstallState(path, false))
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, SaveEnv(NewInstallState(path, true)))
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msgs to the model. Commands are not run; the save step is
// triggered directly once it is reached.
func drive(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
		wm := m.(model)
		if wm.currentStep < len(wm.steps) {
			if _, ok := wm.steps[wm.currentStep].(*SaveEnvStep); ok {
				m, _ = m.Update(nextMsg{})
			}
		}
	}
	return m
}

func TestWizard_LocalFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	m := drive(t, initialModel(NewInstallState(path, false)),
		key(tea.KeyEnter),                   // OpenAI
		typed("sk-test"), key(tea.KeyEnter), // API key
		key(tea.KeyEnter), // keep model
		key(tea.KeyEnter), // keep dataset
		key(tea.KeyEnter), // local SQLite
		key(tea.KeyEnter), // no Telegram
	)

	final := m.(model)
	require.NoError(t, final.err)
	assert.Equal(t, len(final.steps), final.currentStep)

	vars, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", vars["LLM_PROVIDER"])
	assert.Equal(t, "sk-test", vars["LLM_API_KEY"])
	assert.Equal(t, "gpt-3.5-turbo", vars["LLM_MODEL"])
	assert.Equal(t, "sales_data.csv", vars["SALESDASH_DATASET"])
	assert.Equal(t, "sqlite3", vars["SALES_DB_DRIVER"])
	assert.NotContains(t, vars, "TELEGRAM_TOKEN")
}

func TestWizard_OllamaSkipsKeyAndValidatesURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	m := drive(t, initialModel(NewInstallState(path, false)),
		key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyEnter), // Ollama
	)

	view := m.View()
	assert.Contains(t, view, "base URL")

	m = drive(t, m, typed("not a url"), key(tea.KeyEnter))
	assert.Contains(t, m.View(), "invalid URL")
	assert.Empty(t, m.(model).state.LLM.BaseURL)
}

func TestWizard_RequiredInput(t *testing.T) {
	m := drive(t, initialModel(NewInstallState(filepath.Join(t.TempDir(), ".env"), false)),
		key(tea.KeyEnter), // OpenAI
		key(tea.KeyEnter), // empty API key
	)
	assert.Contains(t, m.View(), errEmptyValue.Error())
	assert.Equal(t, 1, m.(model).currentStep)
}
