package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/internal/providers/llm"
	"github.com/sandevgo/salesdash/internal/providers/sqltool"
	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/internal/service/assistant"
	"github.com/sandevgo/salesdash/internal/service/command"
	"github.com/sandevgo/salesdash/internal/session"
	"github.com/sandevgo/salesdash/internal/storage/sqlite"
	"github.com/sandevgo/salesdash/pkg/log"
)

// app holds what every surface shares.
type app struct {
	cfg    *config.AppConfig
	ds     *sales.Dataset
	store  *session.Store
	router *command.Router
}

// loadEnv reads <runtime>/.env and then ./.env. Variables already set in
// the environment win, and so does the first file.
func loadEnv() {
	for _, path := range []string{config.GetEnvPath(), ".env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
		}
	}
}

func newApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	logger := log.FromCtx(ctx)

	ds, err := sales.LoadCSV(cfg.GetDatasetPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Info().
		Str("path", cfg.GetDatasetPath()).
		Int("records", ds.Len()).
		Ints("years", ds.Years()).
		Msg("dataset loaded")

	store := session.NewStore(ds)
	return &app{
		cfg:    cfg,
		ds:     ds,
		store:  store,
		router: command.NewRouter(ds, store),
	}, nil
}

// newQueryTool connects the assistant's database tool. Without remote
// credentials it reads a local SQLite copy of the dataset, seeding it on
// first use.
func (a *app) newQueryTool(ctx context.Context) (*sqltool.QueryTool, sqltool.Dialect, error) {
	dbCfg := config.NewDBConfig(ctx)

	if dbCfg.Driver == config.DriverSQLite && dbCfg.Name == "" {
		dbCfg.Name = a.cfg.GetDatabasePath()
		if _, err := seedLocal(ctx, dbCfg.Name, a.cfg.GetDatasetPath(), a.ds, false); err != nil {
			return nil, 0, err
		}
	}

	dsn, err := dbCfg.DSN()
	if err != nil {
		return nil, 0, fmt.Errorf("invalid database config: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("driver", dbCfg.Driver).
		Str("server", dbCfg.Server).
		Str("database", dbCfg.Name).
		Msg("query tool configured")

	return sqltool.New(dbCfg.Driver, dsn, dbCfg.QueryTimeout), sqltool.DialectFor(dbCfg.Driver), nil
}

func (a *app) newAssistant(ctx context.Context) (*assistant.Assistant, error) {
	q, dialect, err := a.newQueryTool(ctx)
	if err != nil {
		return nil, err
	}

	ai, err := llm.NewProvider(ctx, config.NewLLMConfig(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	return assistant.New(ai, q, assistant.Options{
		Dialect:       dialect,
		HistoryWindow: a.cfg.ContextWindowSize,
		TokenBudget:   a.cfg.ContextTokenBudget,
	})
}

// seedLocal copies ds, read from csvPath, into the SQLite file at path. A
// copy seeded from the same file version is left alone unless force is set.
func seedLocal(ctx context.Context, path, csvPath string, ds *sales.Dataset, force bool) (int, error) {
	info, err := os.Stat(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat dataset: %w", err)
	}

	db, err := sqlite.NewDB(ctx, path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	repo := sqlite.NewSalesRepository(db)
	if !force {
		current, err := repo.IsCurrent(ctx, ds.Len(), info.ModTime())
		if err != nil {
			return 0, err
		}
		if current {
			log.FromCtx(ctx).Debug().Int("rows", ds.Len()).Str("path", path).Msg("local database up to date")
			return ds.Len(), nil
		}
	}

	return repo.Replace(ctx, ds, info.ModTime())
}

// bootstrap parses the app config and sets up logging. toFile sends the
// log to the runtime directory for commands that own the terminal.
func bootstrap(ctx context.Context, toFile bool) (context.Context, *config.AppConfig, func()) {
	cfg, err := config.ParseAppConfig()

	var flush func()
	if toFile && err == nil {
		ctx, flush = setupFileLogger(ctx, cfg)
	} else {
		ctx, flush = setupLogger(ctx)
	}

	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return ctx, cfg, flush
}
