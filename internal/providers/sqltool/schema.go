package sqltool

import (
	"fmt"
	"strings"
)

type Column struct {
	Name string
	Type string
}

// Schema is what the assistant knows about the queried table.
type Schema struct {
	Table   string
	Columns []Column
	Samples [][]string
}

func SalesDataSchema() Schema {
	return Schema{
		Table: "SalesData",
		Columns: []Column{
			{"Transaction_Id", "text"},
			{"Date", "date"},
			{"Time", "time"},
			{"Year", "integer"},
			{"Month_Name", "text"},
			{"Day", "integer"},
			{"Item_Code", "text"},
			{"Quantity_Sold_kilo", "real"},
			{"Unit_Selling_Price_RMB/kg", "real"},
			{"Sale_or_Return", "text"},
			{"Discount_Yes/No", "text"},
			{"Tota_Selling_Value", "real"},
			{"Item_Name", "text"},
			{"Item_Category", "text"},
			{"Month", "integer"},
			{"Week_Day", "text"},
		},
		Samples: [][]string{
			{"b37d41fd-f893-4374-99a6-ebe6816c5674", "2022-11-18", "19:57:49", "2022", "Nov", "18", "102900000000000.0", "-9.082", "2.0", "return", "No", "-18.164", "Powcan Mountain Chinese Cabbage", "Flower/Leaf/Veg.", "11", "Friday"},
			{"f9274bdf-64f9-480f-8918-13f74c379fd5", "2021-03-07", "13:35:17", "2021", "Mar", "7", "102900000000000.0", "-6.505", "6.0", "return", "No", "-39.03", "Yellow Xincai (1)", "Flower/Leaf/Veg.", "3", "Sunday"},
		},
	}
}

func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Describe renders the schema for the tool description.
func (s Schema) Describe(d Dialect) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Input must be a single valid %s query against the table called '%s'.\n\n", d, s.Table)

	b.WriteString("Columns:\n")
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "- %s (%s)\n", d.QuoteIdent(c.Name), c.Type)
	}

	b.WriteString("\nSample rows:\n")
	b.WriteString(strings.Join(s.ColumnNames(), ","))
	b.WriteString("\n")
	for _, row := range s.Samples {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if d.UsesTop() {
		fmt.Fprintf(&b, "%s does not support LIMIT. To return the 10 most sold items use TOP instead:\n", d)
	} else {
		b.WriteString("To return the 10 most sold items:\n")
	}
	b.WriteString(d.TopExample(s.Table, 10))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Write column names exactly as listed, quoting them as shown (for example SUM(%s)). ",
		d.QuoteIdent("Tota_Selling_Value"))
	b.WriteString("Tota_Selling_Value is the sale value and is spelled that way in the table.\n")
	b.WriteString("Sale_or_Return is 'sale' or 'return'; returns carry negative quantity and value. ")
	b.WriteString("Item_Name is the specific product while Item_Category is a broad category containing many products, ")
	b.WriteString("so filter on Item_Category when asked about a category.\n")
	b.WriteString("Only the first row of the result is returned, so aggregate in SQL.")

	return b.String()
}
