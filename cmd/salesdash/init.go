package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/internal/service/installer"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Configure the assistant, database and Telegram",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		envPath := config.GetEnvPath()

		state, err := installer.RunWizard(envPath, forceInit)
		if err != nil {
			return err
		}

		// Load the newly created .env file so later commands in this process see it
		if err := godotenv.Load(state.EnvPath); err != nil {
			logger.Warn().Err(err).Str("path", state.EnvPath).Msg("failed to load .env file")
		}

		logger.Info().Str("path", state.EnvPath).Msg("configuration saved")
		logger.Info().Msg("Setup complete! You can now run 'salesdash start'.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
