package main

import (
	"github.com/sandevgo/salesdash/internal/session"
	"github.com/spf13/cobra"
)

var (
	yearsFlag      []int
	categoriesFlag []string
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&yearsFlag, "years", nil, "years to include (default: all)")
	cmd.Flags().StringSliceVar(&categoriesFlag, "categories", nil, "item categories to include (default: all)")
}

// applyFilterFlags narrows the session to the flags that were given.
func applyFilterFlags(cmd *cobra.Command, s *session.Session) {
	if cmd.Flags().Changed("years") {
		s.SetYears(yearsFlag)
	}
	if cmd.Flags().Changed("categories") {
		s.SetCategories(categoriesFlag)
	}
}
