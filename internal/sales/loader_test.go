package sales

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Transaction_Id,Date,Time,Year,Month_Name,Day,Item_Code,Quantity_Sold_kilo,Unit_Selling_Price_RMB/kg,Sale_or_Return,Discount_Yes/No,Tota_Selling_Value,Item_Name,Item_Category,Month,Week_Day\n"

const sampleCSV = header +
	"b37d41fd-f893-4374-99a6-ebe6816c5674,2022-11-18,19:57:49,2022,Nov,18,102900000000000.0,-9.082,2.0,return,No,-18.164,Powcan Mountain Chinese Cabbage,Flower/Leaf/Veg.,11,Friday\n" +
	"f9274bdf-64f9-480f-8918-13f74c379fd5,2021-03-07,13:35:17,2021,Mar,7,102900000000000.0,-6.505,6.0,return,No,-39.03,Yellow Xincai (1),Flower/Leaf/Veg.,3,Sunday\n" +
	"0d5d4c4e-6b8a-4c61-9f0e-6f7bb0a1c001,2021-03-08,10:01:00,2021,Mar,8,102900005115762,1.5,8.0,sale,Yes,12.0,Wuhu Green Pepper,Capsicum,3,Monday\n"

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	recs := ds.Records()
	first := recs[0]
	assert.Equal(t, "b37d41fd-f893-4374-99a6-ebe6816c5674", first.ID.String())
	assert.Equal(t, 2022, first.Year)
	assert.Equal(t, Month(11), first.Month)
	assert.Equal(t, KindReturn, first.Kind)
	assert.False(t, first.Discount)
	assert.True(t, first.TotalValue.Equal(decimal.RequireFromString("-18.164")))
	assert.Equal(t, "Friday", first.WeekDay)

	third := recs[2]
	assert.Equal(t, KindSale, third.Kind)
	assert.True(t, third.Discount)
	assert.Equal(t, "Capsicum", third.Category)

	assert.Equal(t, []int{2021, 2022}, ds.Years())
	assert.Equal(t, []string{"Capsicum", "Flower/Leaf/Veg."}, ds.Categories())
}

func TestReadCSV_OptionalColumnsAndAliases(t *testing.T) {
	in := "Transaction_Id,Date,Time,Year,Month_Name,Day,Item_Code,Quantity_Sold_kilo,Unit_Selling_Price,Sale_or_Return,Discount,Total_Selling_Value,Item_Name,Item_Category\n" +
		"0d5d4c4e-6b8a-4c61-9f0e-6f7bb0a1c001,2021-03-08,10:01:00,2021,Mar,8,1,1.5,8.0,Sale,no,12.0,Wuhu Green Pepper,Capsicum\n"

	ds, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, KindSale, ds.Records()[0].Kind)
}

func TestReadCSV_Errors(t *testing.T) {
	row := func(id, month, qty, kind, value, item, cat string) string {
		return id + ",2021-03-08,10:01:00,2021," + month + ",8,1," + qty + ",8.0," + kind + ",No," + value + "," + item + "," + cat + ",3,Monday\n"
	}
	const id1 = "0d5d4c4e-6b8a-4c61-9f0e-6f7bb0a1c001"
	const id2 = "0d5d4c4e-6b8a-4c61-9f0e-6f7bb0a1c002"

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty input", input: "", wantMsg: "missing header"},
		{name: "missing column", input: "Transaction_Id,Date\n", wantMsg: "missing columns"},
		{name: "bad uuid", input: header + row("nope", "Mar", "1", "sale", "8", "A", "X"), wantMsg: "Transaction_Id"},
		{name: "bad month name", input: header + row(id1, "March", "1", "sale", "8", "A", "X"), wantMsg: "unknown month name"},
		{name: "month number mismatch", input: header + row(id1, "Apr", "1", "sale", "8", "A", "X"), wantMsg: "does not match"},
		{name: "unknown kind", input: header + row(id1, "Mar", "1", "refund", "8", "A", "X"), wantMsg: "unknown transaction kind"},
		{name: "positive return", input: header + row(id1, "Mar", "1", "return", "8", "A", "X"), wantMsg: "positive quantity or value"},
		{name: "negative sale", input: header + row(id1, "Mar", "-1", "sale", "-8", "A", "X"), wantMsg: "negative quantity or value"},
		{name: "bad decimal", input: header + row(id1, "Mar", "abc", "sale", "8", "A", "X"), wantMsg: "Quantity_Sold_kilo"},
		{name: "duplicate id", input: header + row(id1, "Mar", "1", "sale", "8", "A", "X") + row(id1, "Mar", "1", "sale", "8", "A", "X"), wantMsg: "duplicate transaction id"},
		{name: "item in two categories", input: header + row(id1, "Mar", "1", "sale", "8", "A", "X") + row(id2, "Mar", "1", "sale", "8", "A", "Y"), wantMsg: "belongs to both"},
		{name: "short row", input: header + "a,b,c\n", wantMsg: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
