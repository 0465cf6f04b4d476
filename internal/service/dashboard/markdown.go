package dashboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Markdown renders the view as a compact report for chat surfaces.
func (v View) Markdown() string {
	var b strings.Builder

	b.WriteString("**Sales Dashboard**\n\n")
	fmt.Fprintf(&b, "Years: %s\n", joinInts(v.Filters.Years))
	fmt.Fprintf(&b, "Categories: %s\n\n", joinOrNone(v.Filters.Categories))

	fmt.Fprintf(&b, "No. of Sales: **%s**\n", Count(v.KPIs.SaleCount))
	fmt.Fprintf(&b, "No. of Returns: **%s**\n", Count(v.KPIs.ReturnCount))
	fmt.Fprintf(&b, "Total Sales Revenue: **%s**\n", Currency(v.KPIs.SaleRevenue))
	fmt.Fprintf(&b, "Total Returns Loss: **%s**\n\n", Currency(v.KPIs.ReturnLoss))

	b.WriteString("**Monthly Revenue**\n")
	for _, m := range v.Monthly {
		fmt.Fprintf(&b, "- %s: %s\n", m.Month, Amount(m.Total))
	}

	b.WriteString("\n**Sales By Category**\n")
	if len(v.Distribution) == 0 {
		b.WriteString("- no data\n")
	}
	for _, c := range v.Distribution {
		fmt.Fprintf(&b, "- %s: %s\n", c.Category, Count(c.Count))
	}

	return b.String()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return joinOrNone(parts)
}

func joinOrNone(xs []string) string {
	if len(xs) == 0 {
		return "none"
	}
	return strings.Join(xs, ", ")
}
