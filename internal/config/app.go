package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/salesdash/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SALESDASH_RUNTIME_PATH" envDefault:".salesdash"`
	DatasetPath string `env:"SALESDASH_DATASET" envDefault:"sales_data.csv"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Context Management
	ContextWindowSize  int `env:"CONTEXT_WINDOW_SIZE" envDefault:"20"`
	ContextTokenBudget int `env:"CONTEXT_TOKEN_BUDGET" envDefault:"2000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return &c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatasetPath() string {
	return c.DatasetPath
}

// GetDatabasePath is the local SQLite copy of the dataset used by the query tool.
func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "sales.db")
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "salesdash.log")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
