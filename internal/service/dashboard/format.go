package dashboard

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Currency renders d as "(US $) 1,234.56", keeping the sign.
func Currency(d decimal.Decimal) string {
	return "(US $) " + Amount(d)
}

// Amount renders d with thousands separators and two decimals.
func Amount(d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + humanize.Comma(n) + "." + frac
}

func Count(n int) string {
	return humanize.Comma(int64(n))
}
