// Package dashboard turns a dataset and a filter selection into the numbers
// and series every surface renders.
package dashboard

import (
	"github.com/sandevgo/salesdash/internal/sales"
)

type View struct {
	Filters sales.Filters

	// KPIs use both filters.
	KPIs sales.KPIs

	// The breakdowns use the year filter only.
	Monthly      []sales.MonthTotal
	Stacked      []sales.MonthCategoryTotal
	Distribution []sales.CategoryCount

	YearOptions     []int
	CategoryOptions []string
}

func Build(ds *sales.Dataset, f sales.Filters) View {
	both := ds.Filter(f)
	byYear := ds.FilterYears(f.Years)

	return View{
		Filters:         f.Clone(),
		KPIs:            sales.ComputeKPIs(both),
		Monthly:         sales.MonthlyRevenue(byYear),
		Stacked:         sales.MonthlyByCategory(byYear),
		Distribution:    sales.CategoryDistribution(byYear),
		YearOptions:     ds.Years(),
		CategoryOptions: ds.Categories(),
	}
}
