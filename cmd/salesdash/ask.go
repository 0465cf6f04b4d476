package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/salesdash/internal/session"
	"github.com/sandevgo/salesdash/pkg/conv"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/spf13/cobra"
)

var showQuery bool

var askCmd = &cobra.Command{
	Use:     "ask <question>",
	Short:   "Ask the assistant one question",
	Example: `  salesdash ask "How many kilos of cabbage were returned in 2022?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, flushLog := bootstrap(cmd.Context(), true)
		defer flushLog()
		logger := log.FromCtx(ctx)

		a, err := newApp(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("ask failed")
			return err
		}
		ai, err := a.newAssistant(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("ask failed")
			return err
		}

		s := session.New(a.ds)
		applyFilterFlags(cmd, s)

		reply := ai.Answer(ctx, s, strings.Join(args, " "))
		if showQuery && reply.Query != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "query: %s\n", reply.Query)
		}
		fmt.Fprintln(cmd.OutOrStdout(), conv.MarkdownToText(reply.Text))
		return nil
	},
}

func init() {
	addFilterFlags(askCmd)
	askCmd.Flags().BoolVar(&showQuery, "show-query", false, "print the SQL the assistant ran to stderr")
	rootCmd.AddCommand(askCmd)
}
