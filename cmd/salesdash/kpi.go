package main

import (
	"fmt"

	"github.com/sandevgo/salesdash/internal/service/dashboard"
	"github.com/sandevgo/salesdash/internal/session"
	"github.com/sandevgo/salesdash/pkg/conv"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/spf13/cobra"
)

var kpiMarkdown bool

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Print the dashboard numbers",
	Example: `  salesdash kpi
  salesdash kpi --years 2022 --categories Cabbage,Capsicum`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, flushLog := bootstrap(cmd.Context(), true)
		defer flushLog()

		a, err := newApp(ctx, cfg)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("kpi failed")
			return err
		}

		s := session.New(a.ds)
		applyFilterFlags(cmd, s)

		md := dashboard.Build(a.ds, s.Filters()).Markdown()
		if kpiMarkdown {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), conv.MarkdownToText(md))
		return nil
	},
}

func init() {
	addFilterFlags(kpiCmd)
	kpiCmd.Flags().BoolVar(&kpiMarkdown, "markdown", false, "print Markdown instead of plain text")
	rootCmd.AddCommand(kpiCmd)
}
