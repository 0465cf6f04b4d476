package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/salesdash/internal/config"
	"github.com/sandevgo/salesdash/internal/service/ui"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "salesdash",
	Short: "SalesDash: retail sales dashboard with an assistant",
	Long:  `SalesDash shows store KPIs and monthly breakdowns from a sales CSV and answers questions about them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env must be loaded before any config is parsed
		loadEnv()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

// setupFileLogger is for commands that own stdout: the dashboard, the MCP
// server and scripted output.
func setupFileLogger(ctx context.Context, cfg *config.AppConfig) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	ctx, flush, err := log.NewContextWithFileLogger(ctx, cfg.GetLogPath(), isDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging to stdout: %v\n", err)
		return log.NewContextWithLogger(ctx, isDebug)
	}
	return ctx, flush
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
