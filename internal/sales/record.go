// Package sales holds the in-memory transaction dataset and the
// filter and aggregation operations the dashboard is built from.
package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindSale   Kind = "sale"
	KindReturn Kind = "return"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSale, KindReturn:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Month is a calendar month, 1 (Jan) through 12 (Dec).
type Month int

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Months lists the canonical month order used by every monthly series.
func Months() []Month {
	out := make([]Month, len(monthNames))
	for i := range monthNames {
		out[i] = Month(i + 1)
	}
	return out
}

func ParseMonth(name string) (Month, error) {
	for i, n := range monthNames {
		if n == name {
			return Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown month name %q", name)
}

func (m Month) Valid() bool {
	return m >= 1 && int(m) <= len(monthNames)
}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

type Record struct {
	ID         uuid.UUID
	Date       time.Time
	Time       string
	Year       int
	Month      Month
	Day        int
	WeekDay    string
	ItemCode   string
	ItemName   string
	Category   string
	Quantity   decimal.Decimal // kg, negative for returns
	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal // negative for returns
	Kind       Kind
	Discount   bool
}
