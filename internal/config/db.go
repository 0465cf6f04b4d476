package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/salesdash/pkg/log"
)

const (
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "pgx"
	DriverSQLite    = "sqlite3"
)

type DBConfig struct {
	Driver         string        `env:"SALES_DB_DRIVER" envDefault:"sqlite3"`
	Server         string        `env:"SALES_DB_SERVER"`
	Port           int           `env:"SALES_DB_PORT"`
	Name           string        `env:"SALES_DB_NAME"`
	User           string        `env:"SALES_DB_USER"`
	Password       string        `env:"SALES_DB_PASSWORD"`
	Encrypt        bool          `env:"SALES_DB_ENCRYPT" envDefault:"true"`
	ConnectTimeout time.Duration `env:"SALES_DB_CONNECT_TIMEOUT" envDefault:"30s"`
	QueryTimeout   time.Duration `env:"SALES_DB_QUERY_TIMEOUT" envDefault:"30s"`
}

func NewDBConfig(ctx context.Context) *DBConfig {
	c, err := ParseDBConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse database config")
	}
	return c
}

func ParseDBConfig() (*DBConfig, error) {
	c, err := env.ParseAs[DBConfig]()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DSN builds the connection string for the configured driver.
func (c DBConfig) DSN() (string, error) {
	switch c.Driver {
	case DriverSQLServer:
		return c.sqlServerDSN()
	case DriverPostgres:
		return c.postgresDSN()
	case DriverSQLite:
		if c.Name == "" {
			return "", fmt.Errorf("SALES_DB_NAME must point to the sqlite file")
		}
		// the query tool only reads
		return "file:" + c.Name + "?mode=ro", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
}

func (c DBConfig) sqlServerDSN() (string, error) {
	if c.Server == "" || c.Name == "" {
		return "", fmt.Errorf("SALES_DB_SERVER and SALES_DB_NAME are required for %s", c.Driver)
	}

	port := c.Port
	if port == 0 {
		port = 1433
	}

	q := url.Values{}
	q.Set("database", c.Name)
	if c.Encrypt {
		q.Set("encrypt", "true")
		q.Set("TrustServerCertificate", "false")
	} else {
		q.Set("encrypt", "disable")
	}
	q.Set("connection timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Server, strconv.Itoa(port)),
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}

func (c DBConfig) postgresDSN() (string, error) {
	if c.Server == "" || c.Name == "" {
		return "", fmt.Errorf("SALES_DB_SERVER and SALES_DB_NAME are required for %s", c.Driver)
	}

	port := c.Port
	if port == 0 {
		port = 5432
	}

	q := url.Values{}
	if c.Encrypt {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Server, strconv.Itoa(port)),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}
