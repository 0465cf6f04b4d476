package installer

import (
	"fmt"
	"strings"

	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/pkg/env"
)

// InstallState collects answers as typed config sections, so the saved
// file uses the same env keys the parsers read.
type InstallState struct {
	EnvPath string
	Force   bool

	App      config.AppConfig
	LLM      config.LLMConfig
	DB       config.DBConfig
	Telegram config.TelegramConfig

	Saved bool
}

func NewInstallState(envPath string, force bool) *InstallState {
	return &InstallState{
		EnvPath: envPath,
		Force:   force,
		LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			Model:    "gpt-3.5-turbo",
		},
		DB: config.DBConfig{
			Driver: config.DriverSQLite,
		},
	}
}

func (s *InstallState) usesRemoteDB() bool {
	return s.DB.Driver != config.DriverSQLite
}

func (s *InstallState) needsBaseURL() bool {
	return s.LLM.Provider == config.ProviderOllama || s.LLM.Provider == config.ProviderCustom
}

func (s *InstallState) needsAPIKey() bool {
	return s.LLM.Provider != config.ProviderOllama
}

// Render produces the .env body.
func (s *InstallState) Render() (string, error) {
	s.App.EnableTelegram = s.Telegram.Token != ""

	sections := []any{&s.App, &s.LLM}
	if s.usesRemoteDB() {
		sections = append(sections, &s.DB)
	} else {
		// local file only needs the driver
		sections = append(sections, &config.DBConfig{Driver: s.DB.Driver})
	}
	if s.App.EnableTelegram {
		sections = append(sections, &s.Telegram)
	}

	body, err := env.MarshalEnv(sections...)
	if err != nil {
		return "", fmt.Errorf("render env: %w", err)
	}

	// MarshalEnv drops false, which would let the envDefault turn encryption back on
	if s.usesRemoteDB() && !s.DB.Encrypt {
		body += "SALES_DB_ENCRYPT=false\n"
	}
	return strings.TrimLeft(body, "\n"), nil
}
