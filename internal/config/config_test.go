package config

import (
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLLMConfig_Defaults(t *testing.T) {
	c, err := ParseLLMConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, c.Provider)
	assert.Equal(t, "gpt-3.5-turbo", c.Model)
	assert.Equal(t, 300, c.MaxTokens)
	assert.Equal(t, float32(0), c.Temperature)
	assert.Equal(t, 2, c.MaxRetries)
	assert.Equal(t, 60*time.Second, c.Timeout)
}

func TestLLMConfig_GetBaseURL(t *testing.T) {
	assert.Equal(t, "https://openrouter.ai/api/v1", LLMConfig{Provider: ProviderOpenRouter}.GetBaseURL())
	assert.Equal(t, "http://localhost:11434/v1", LLMConfig{Provider: ProviderOllama}.GetBaseURL())
	assert.Equal(t, "", LLMConfig{Provider: ProviderOpenAI}.GetBaseURL())
	assert.Equal(t, "http://proxy/v1", LLMConfig{Provider: ProviderOllama, BaseURL: "http://proxy/v1"}.GetBaseURL())
}

func TestParseDBConfig(t *testing.T) {
	t.Setenv("SALES_DB_DRIVER", "sqlserver")
	t.Setenv("SALES_DB_SERVER", "db.example.com")
	t.Setenv("SALES_DB_NAME", "sales")
	t.Setenv("SALES_DB_USER", "manager")
	t.Setenv("SALES_DB_PASSWORD", "p@ss")
	t.Setenv("SALES_DB_QUERY_TIMEOUT", "5s")

	c, err := ParseDBConfig()
	require.NoError(t, err)

	assert.True(t, c.Encrypt)
	assert.Equal(t, 30*time.Second, c.ConnectTimeout)
	assert.Equal(t, 5*time.Second, c.QueryTimeout)
}

func TestDBConfig_DSN(t *testing.T) {
	t.Run("sqlserver", func(t *testing.T) {
		c := DBConfig{
			Driver: DriverSQLServer, Server: "db.example.com", Name: "sales",
			User: "manager", Password: "p@ss", Encrypt: true, ConnectTimeout: 30 * time.Second,
		}
		dsn, err := c.DSN()
		require.NoError(t, err)

		u, err := url.Parse(dsn)
		require.NoError(t, err)
		assert.Equal(t, "sqlserver", u.Scheme)
		assert.Equal(t, "db.example.com:1433", u.Host)
		assert.Equal(t, "manager", u.User.Username())
		pw, _ := u.User.Password()
		assert.Equal(t, "p@ss", pw)

		q := u.Query()
		assert.Equal(t, "sales", q.Get("database"))
		assert.Equal(t, "true", q.Get("encrypt"))
		assert.Equal(t, "false", q.Get("TrustServerCertificate"))
		assert.Equal(t, "30", q.Get("connection timeout"))
	})

	t.Run("postgres without encryption", func(t *testing.T) {
		c := DBConfig{
			Driver: DriverPostgres, Server: "localhost", Port: 6543, Name: "sales",
			User: "u", Password: "p", ConnectTimeout: 10 * time.Second,
		}
		dsn, err := c.DSN()
		require.NoError(t, err)

		u, err := url.Parse(dsn)
		require.NoError(t, err)
		assert.Equal(t, "localhost:6543", u.Host)
		assert.Equal(t, "/sales", u.Path)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
		assert.Equal(t, "10", u.Query().Get("connect_timeout"))
	})

	t.Run("sqlite is read-only", func(t *testing.T) {
		dsn, err := DBConfig{Driver: DriverSQLite, Name: "/tmp/sales.db"}.DSN()
		require.NoError(t, err)
		assert.Equal(t, "file:/tmp/sales.db?mode=ro", dsn)
	})

	t.Run("errors", func(t *testing.T) {
		for _, c := range []DBConfig{
			{Driver: DriverSQLServer, Name: "sales"},
			{Driver: DriverPostgres, Server: "h"},
			{Driver: DriverSQLite},
			{Driver: "oracle", Server: "h", Name: "n"},
		} {
			_, err := c.DSN()
			assert.Error(t, err, "driver %s", c.Driver)
		}
	})
}

func TestParseAppConfig_ResolvesRuntimePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SALESDASH_RUNTIME_PATH", dir)

	c, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, c.GetRuntimePath())
	assert.Equal(t, filepath.Join(dir, "sales.db"), c.GetDatabasePath())
	assert.Equal(t, dir, GetRuntimePath())
	assert.False(t, c.IsTelegramSelected())
}
