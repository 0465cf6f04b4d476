package sqltool

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/salesdash/internal/config"
)

// Dialect decides how the assistant is told to write "top N" queries.
type Dialect int

const (
	DialectSQLServer Dialect = iota
	DialectPostgres
	DialectSQLite
)

func DialectFor(driver string) Dialect {
	switch driver {
	case config.DriverPostgres:
		return DialectPostgres
	case config.DriverSQLite:
		return DialectSQLite
	default:
		return DialectSQLServer
	}
}

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "PostgreSQL"
	case DialectSQLite:
		return "SQLite"
	default:
		return "Azure SQL"
	}
}

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteIdent returns name as the engine expects it in a query. Names that are
// plain identifiers stay bare.
func (d Dialect) QuoteIdent(name string) string {
	if plainIdent.MatchString(name) {
		return name
	}
	if d == DialectSQLServer {
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// UsesTop reports whether the engine limits rows with SELECT TOP N instead of LIMIT.
func (d Dialect) UsesTop() bool {
	return d == DialectSQLServer
}

// TopExample is a worked query returning the n best-selling items.
func (d Dialect) TopExample(table string, n int) string {
	if d.UsesTop() {
		return fmt.Sprintf(
			"SELECT TOP %d Item_Name, SUM(Quantity_Sold_kilo) AS Total_Quantity_Sold\nFROM %s\nGROUP BY Item_Name\nORDER BY Total_Quantity_Sold DESC;",
			n, table)
	}
	return fmt.Sprintf(
		"SELECT Item_Name, SUM(Quantity_Sold_kilo) AS Total_Quantity_Sold\nFROM %s\nGROUP BY Item_Name\nORDER BY Total_Quantity_Sold DESC\nLIMIT %d;",
		table, n)
}
