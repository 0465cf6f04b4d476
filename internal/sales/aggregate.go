package sales

import (
	"sort"

	"github.com/shopspring/decimal"
)

// KPIs are the four headline numbers. ReturnLoss is the signed sum of
// return values and is therefore zero or negative.
type KPIs struct {
	SaleCount   int
	ReturnCount int
	SaleRevenue decimal.Decimal
	ReturnLoss  decimal.Decimal
}

func ComputeKPIs(d *Dataset) KPIs {
	k := KPIs{SaleRevenue: decimal.Zero, ReturnLoss: decimal.Zero}
	d.Each(func(r Record) {
		switch r.Kind {
		case KindSale:
			k.SaleCount++
			k.SaleRevenue = k.SaleRevenue.Add(r.TotalValue)
		case KindReturn:
			k.ReturnCount++
			k.ReturnLoss = k.ReturnLoss.Add(r.TotalValue)
		}
	})
	return k
}

type MonthTotal struct {
	Month Month
	Total decimal.Decimal
}

// MonthlyRevenue sums total value per month. The result always has twelve
// buckets in calendar order; months without data are zero. Records with
// no valid month are left out.
func MonthlyRevenue(d *Dataset) []MonthTotal {
	var sums [12]decimal.Decimal
	d.Each(func(r Record) {
		if !r.Month.Valid() {
			return
		}
		sums[r.Month-1] = sums[r.Month-1].Add(r.TotalValue)
	})

	out := make([]MonthTotal, 0, 12)
	for _, m := range Months() {
		out = append(out, MonthTotal{Month: m, Total: sums[m-1]})
	}
	return out
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type MonthCategoryTotal struct {
	Month  Month
	Totals []CategoryTotal // sorted by category; only categories with data
}

// MonthlyByCategory sums total value per (month, category) for the stacked
// breakdown. Twelve buckets in calendar order.
func MonthlyByCategory(d *Dataset) []MonthCategoryTotal {
	var sums [12]map[string]decimal.Decimal
	d.Each(func(r Record) {
		if !r.Month.Valid() {
			return
		}
		i := r.Month - 1
		if sums[i] == nil {
			sums[i] = make(map[string]decimal.Decimal)
		}
		sums[i][r.Category] = sums[i][r.Category].Add(r.TotalValue)
	})

	out := make([]MonthCategoryTotal, 0, 12)
	for _, m := range Months() {
		bucket := MonthCategoryTotal{Month: m}
		for cat, total := range sums[m-1] {
			bucket.Totals = append(bucket.Totals, CategoryTotal{Category: cat, Total: total})
		}
		sort.Slice(bucket.Totals, func(i, j int) bool {
			return bucket.Totals[i].Category < bucket.Totals[j].Category
		})
		out = append(out, bucket)
	}
	return out
}

type CategoryCount struct {
	Category string
	Count    int
}

// CategoryDistribution counts records per category, largest first.
func CategoryDistribution(d *Dataset) []CategoryCount {
	counts := make(map[string]int)
	d.Each(func(r Record) { counts[r.Category]++ })

	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
