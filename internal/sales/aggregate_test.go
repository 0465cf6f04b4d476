package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(year int, month Month, category string, kind Kind, value string) Record {
	v := decimal.RequireFromString(value)
	return Record{
		ID:         uuid.New(),
		Year:       year,
		Month:      month,
		ItemName:   category + " item",
		Category:   category,
		Kind:       kind,
		TotalValue: v,
		Quantity:   v.Div(decimal.NewFromInt(2)),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture() *Dataset {
	return NewDataset([]Record{
		rec(2021, 1, "Cabbage", KindSale, "100"),
		rec(2021, 1, "Cabbage", KindReturn, "-20"),
		rec(2021, 3, "Capsicum", KindSale, "50.5"),
		rec(2022, 3, "Cabbage", KindSale, "10"),
		rec(2022, 12, "Solanum", KindReturn, "-4.25"),
		rec(2022, 12, "Solanum", KindSale, "7"),
	})
}

func TestComputeKPIs_CabbageExample(t *testing.T) {
	ds := NewDataset([]Record{
		rec(2021, 1, "Cabbage", KindSale, "100"),
		rec(2021, 1, "Cabbage", KindReturn, "-20"),
	})

	k := ComputeKPIs(ds.Filter(Filters{Years: []int{2021}, Categories: []string{"Cabbage"}}))

	assert.Equal(t, 1, k.SaleCount)
	assert.Equal(t, 1, k.ReturnCount)
	assert.True(t, k.SaleRevenue.Equal(dec("100")), "sale revenue = %s", k.SaleRevenue)
	assert.True(t, k.ReturnLoss.Equal(dec("-20")), "return loss = %s", k.ReturnLoss)
}

func TestComputeKPIs_MatchesPartition(t *testing.T) {
	ds := fixture()
	filters := []Filters{
		{Years: []int{2021}, Categories: []string{"Cabbage", "Capsicum"}},
		{Years: []int{2021, 2022}, Categories: []string{"Solanum"}},
		{Years: []int{2022}, Categories: []string{"Cabbage", "Capsicum", "Solanum"}},
	}

	for _, f := range filters {
		view := ds.Filter(f)
		k := ComputeKPIs(view)

		var sales, returns int
		saleSum, returnSum := decimal.Zero, decimal.Zero
		for _, r := range view.Records() {
			if r.Kind == KindSale {
				sales++
				saleSum = saleSum.Add(r.TotalValue)
			} else {
				returns++
				returnSum = returnSum.Add(r.TotalValue)
			}
		}

		assert.Equal(t, sales, k.SaleCount)
		assert.Equal(t, returns, k.ReturnCount)
		assert.True(t, saleSum.Equal(k.SaleRevenue))
		assert.True(t, returnSum.Equal(k.ReturnLoss))
	}
}

func TestFilter_EmptySelection(t *testing.T) {
	ds := fixture()

	tests := []struct {
		name string
		f    Filters
	}{
		{name: "no years", f: Filters{Categories: ds.Categories()}},
		{name: "no categories", f: Filters{Years: ds.Years()}},
		{name: "nothing", f: Filters{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ds.Filter(tt.f)
			assert.Equal(t, 0, view.Len())

			k := ComputeKPIs(view)
			assert.Zero(t, k.SaleCount)
			assert.Zero(t, k.ReturnCount)
			assert.True(t, k.SaleRevenue.IsZero())
			assert.True(t, k.ReturnLoss.IsZero())

			monthly := MonthlyRevenue(view)
			require.Len(t, monthly, 12)
			for _, m := range monthly {
				assert.True(t, m.Total.IsZero())
			}
			assert.Empty(t, CategoryDistribution(view))
		})
	}

	assert.Equal(t, 0, ds.FilterYears(nil).Len())
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	ds := fixture()
	before := ds.Records()

	_ = ds.Filter(Filters{Years: []int{2022}, Categories: []string{"Solanum"}})
	_ = ds.FilterYears([]int{2021})
	_ = ComputeKPIs(ds)
	_ = MonthlyByCategory(ds)

	assert.Equal(t, before, ds.Records())
}

func TestFilterYears_Idempotent(t *testing.T) {
	ds := fixture()
	years := []int{2022}

	once := ds.FilterYears(years)
	twice := once.FilterYears(years)

	assert.Equal(t, once.Records(), twice.Records())
	assert.Equal(t, 3, once.Len())
}

func TestMonthlyRevenue_TwelveOrderedBuckets(t *testing.T) {
	monthly := MonthlyRevenue(fixture().FilterYears([]int{2021}))

	require.Len(t, monthly, 12)
	for i, m := range monthly {
		assert.Equal(t, Month(i+1), m.Month)
	}
	assert.Equal(t, "Jan", monthly[0].Month.String())
	assert.Equal(t, "Dec", monthly[11].Month.String())
	assert.True(t, monthly[0].Total.Equal(dec("80")))
	assert.True(t, monthly[2].Total.Equal(dec("50.5")))
	assert.True(t, monthly[5].Total.IsZero())
}

func TestMonthlyByCategory(t *testing.T) {
	stacked := MonthlyByCategory(fixture().FilterYears([]int{2021, 2022}))

	require.Len(t, stacked, 12)
	for i, b := range stacked {
		assert.Equal(t, Month(i+1), b.Month)
	}

	march := stacked[2].Totals
	require.Len(t, march, 2)
	assert.Equal(t, "Cabbage", march[0].Category)
	assert.True(t, march[0].Total.Equal(dec("10")))
	assert.Equal(t, "Capsicum", march[1].Category)

	dec12 := stacked[11].Totals
	require.Len(t, dec12, 1)
	assert.True(t, dec12[0].Total.Equal(dec("2.75")))

	assert.Empty(t, stacked[6].Totals)
}

func TestCategoryDistribution_SumsToTotal(t *testing.T) {
	view := fixture().FilterYears([]int{2021, 2022})
	dist := CategoryDistribution(view)

	total := 0
	for _, c := range dist {
		total += c.Count
	}
	assert.Equal(t, view.Len(), total)

	assert.Equal(t, []CategoryCount{
		{Category: "Cabbage", Count: 3},
		{Category: "Solanum", Count: 2},
		{Category: "Capsicum", Count: 1},
	}, dist)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("Sep")
	require.NoError(t, err)
	assert.Equal(t, Month(9), m)

	_, err = ParseMonth("sep")
	assert.Error(t, err)

	assert.Len(t, Months(), 12)
	assert.Equal(t, "Month(13)", Month(13).String())
}

func TestMonthly_SkipsRecordsWithoutMonth(t *testing.T) {
	ds := NewDataset([]Record{
		{Year: 2021, Kind: KindSale, Category: "Cabbage", TotalValue: dec("5")},
		rec(2021, 13, "Cabbage", KindSale, "7"),
		rec(2021, 2, "Cabbage", KindSale, "3"),
	})

	var revenue []MonthTotal
	require.NotPanics(t, func() { revenue = MonthlyRevenue(ds) })
	require.Len(t, revenue, 12)
	assert.True(t, revenue[1].Total.Equal(dec("3")))
	for i, mt := range revenue {
		if i != 1 {
			assert.True(t, mt.Total.IsZero(), mt.Month.String())
		}
	}

	var stacked []MonthCategoryTotal
	require.NotPanics(t, func() { stacked = MonthlyByCategory(ds) })
	require.Len(t, stacked, 12)
	require.Len(t, stacked[1].Totals, 1)
	assert.True(t, stacked[1].Totals[0].Total.Equal(dec("3")))
	assert.Empty(t, stacked[0].Totals)

	assert.False(t, Month(0).Valid())
	assert.Equal(t, "Month(13)", Month(13).String())
}
