package sales

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMalformed = errors.New("malformed sales data")

const dateLayout = "2006-01-02"

// Header names as exported by the point-of-sale system.
const (
	colID        = "Transaction_Id"
	colDate      = "Date"
	colTime      = "Time"
	colYear      = "Year"
	colMonthName = "Month_Name"
	colDay       = "Day"
	colItemCode  = "Item_Code"
	colQuantity  = "Quantity_Sold_kilo"
	colUnitPrice = "Unit_Selling_Price_RMB/kg"
	colKind      = "Sale_or_Return"
	colDiscount  = "Discount_Yes/No"
	colTotal     = "Tota_Selling_Value"
	colItemName  = "Item_Name"
	colCategory  = "Item_Category"
	colMonth     = "Month"
	colWeekDay   = "Week_Day"
)

// Header is the full export header in column order. The SalesData table
// uses the same names.
var Header = []string{
	colID, colDate, colTime, colYear, colMonthName, colDay, colItemCode, colQuantity,
	colUnitPrice, colKind, colDiscount, colTotal, colItemName, colCategory, colMonth, colWeekDay,
}

var requiredColumns = []string{
	colID, colDate, colTime, colYear, colMonthName, colDay, colItemCode, colQuantity,
	colUnitPrice, colKind, colDiscount, colTotal, colItemName, colCategory,
}

// headerAliases maps corrected spellings onto the exported header names.
var headerAliases = map[string]string{
	"Total_Selling_Value": colTotal,
	"Unit_Selling_Price":  colUnitPrice,
	"Discount":            colDiscount,
}

func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV parses the whole input and validates the dataset invariants.
// Any violation aborts the load.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = len(header)

	var records []Record
	seen := make(map[uuid.UUID]int)
	categoryOf := make(map[string]string)

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}

		if prev, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("%w: line %d: duplicate transaction id %s (first seen on line %d)", ErrMalformed, line, rec.ID, prev)
		}
		seen[rec.ID] = line

		if cat, ok := categoryOf[rec.ItemName]; ok && cat != rec.Category {
			return nil, fmt.Errorf("%w: line %d: item %q belongs to both %q and %q", ErrMalformed, line, rec.ItemName, cat, rec.Category)
		}
		categoryOf[rec.ItemName] = rec.Category

		records = append(records, rec)
	}

	return NewDataset(records), nil
}

func indexHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if canonical, ok := headerAliases[name]; ok {
			name = canonical
		}
		idx[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		rec Record
		err error
	)

	if rec.ID, err = uuid.Parse(get(colID)); err != nil {
		return rec, fmt.Errorf("%s: %v", colID, err)
	}
	if rec.Date, err = time.Parse(dateLayout, get(colDate)); err != nil {
		return rec, fmt.Errorf("%s: %v", colDate, err)
	}
	rec.Time = get(colTime)
	if rec.Year, err = strconv.Atoi(get(colYear)); err != nil {
		return rec, fmt.Errorf("%s: %v", colYear, err)
	}
	if rec.Month, err = ParseMonth(get(colMonthName)); err != nil {
		return rec, err
	}
	if m := get(colMonth); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return rec, fmt.Errorf("%s: %v", colMonth, err)
		}
		if Month(n) != rec.Month {
			return rec, fmt.Errorf("month %d does not match month name %s", n, rec.Month)
		}
	}
	if rec.Day, err = strconv.Atoi(get(colDay)); err != nil {
		return rec, fmt.Errorf("%s: %v", colDay, err)
	}
	rec.WeekDay = get(colWeekDay)
	rec.ItemCode = get(colItemCode)
	rec.ItemName = get(colItemName)
	rec.Category = get(colCategory)
	if rec.ItemName == "" || rec.Category == "" {
		return rec, fmt.Errorf("item name and category are required")
	}

	if rec.Quantity, err = decimal.NewFromString(get(colQuantity)); err != nil {
		return rec, fmt.Errorf("%s: %v", colQuantity, err)
	}
	if rec.UnitPrice, err = decimal.NewFromString(get(colUnitPrice)); err != nil {
		return rec, fmt.Errorf("%s: %v", colUnitPrice, err)
	}
	if rec.TotalValue, err = decimal.NewFromString(get(colTotal)); err != nil {
		return rec, fmt.Errorf("%s: %v", colTotal, err)
	}
	if rec.Kind, err = ParseKind(strings.ToLower(get(colKind))); err != nil {
		return rec, err
	}
	if rec.Discount, err = parseYesNo(get(colDiscount)); err != nil {
		return rec, fmt.Errorf("%s: %v", colDiscount, err)
	}

	if err := checkSign(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// checkSign enforces that returns carry non-positive amounts and sales non-negative ones.
func checkSign(rec Record) error {
	switch rec.Kind {
	case KindReturn:
		if rec.Quantity.IsPositive() || rec.TotalValue.IsPositive() {
			return fmt.Errorf("return %s has positive quantity or value", rec.ID)
		}
	case KindSale:
		if rec.Quantity.IsNegative() || rec.TotalValue.IsNegative() {
			return fmt.Errorf("sale %s has negative quantity or value", rec.ID)
		}
	}
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected Yes or No, got %q", s)
	}
}
