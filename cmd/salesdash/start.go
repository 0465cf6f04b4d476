package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/internal/transport/telegram"
	"github.com/sandevgo/salesdash/internal/transport/tui"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/sandevgo/salesdash/pkg/srv"
	"github.com/spf13/cobra"
)

var headless bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the dashboard",
	Long:  `Opens the terminal dashboard and chat. With ENABLE_TELEGRAM=true the Telegram bot runs alongside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := context.WithCancel(cmd.Context())
		defer stop()

		ctx, cfg, flushLog := bootstrap(ctx, !headless)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting salesdash")

		a, err := newApp(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize dataset")
		}

		ai, err := a.newAssistant(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize assistant")
		}

		var services []srv.Service
		if cfg.IsTelegramSelected() {
			bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), a.router, a.store, ai)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
			}
			services = append(services, bot)
		}

		if headless {
			if len(services) == 0 {
				return fmt.Errorf("nothing to run: --headless needs ENABLE_TELEGRAM=true")
			}
			srv.StartServices(ctx, services, func(error) { stop() })
			srv.WaitAndShutdown(ctx, services)
			logger.Info().Msg("salesdash has been shut down gracefully")
			return nil
		}

		srv.StartServices(ctx, services, func(error) { stop() })
		err = tui.Run(ctx, tui.New(ctx, a.ds, a.store, a.router, ai))
		stop()
		srv.ShutdownServices(context.WithoutCancel(ctx), services)

		logger.Info().Msg("salesdash has been shut down gracefully")
		return err
	},
}

func init() {
	startCmd.Flags().BoolVar(&headless, "headless", false, "run only the Telegram bot, without the terminal dashboard")
	rootCmd.AddCommand(startCmd)
}
