package main

import (
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Rebuild the local SQLite copy of the dataset",
	Long:  `Replaces the SalesData table in the runtime database with the rows of the configured CSV.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, flushLog := bootstrap(cmd.Context(), false)
		defer flushLog()
		logger := log.FromCtx(ctx)

		a, err := newApp(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("seed failed")
			return err
		}

		n, err := seedLocal(ctx, cfg.GetDatabasePath(), cfg.GetDatasetPath(), a.ds, true)
		if err != nil {
			logger.Error().Err(err).Msg("seed failed")
			return err
		}

		logger.Info().Int("rows", n).Str("path", cfg.GetDatabasePath()).Msg("local database seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
