// Package sqltool runs free-form read queries against the sales database on
// behalf of the assistant. Each call opens its own connection and returns at
// most one row.
package sqltool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/salesdash/pkg/log"
)

type Querier interface {
	Run(ctx context.Context, query string) (Result, error)
}

// Result is the first row of a query.
type Result struct {
	Columns []string
	Values  []any
	Found   bool
	// More reports that the query produced further rows which were discarded.
	More bool
}

func (r Result) String() string {
	if !r.Found {
		return "The query returned no rows."
	}

	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = fmt.Sprintf("%s: %s", r.Columns[i], formatValue(v))
	}

	out := strings.Join(parts, ", ")
	if r.More {
		out += "\n(Only the first row is returned. Aggregate or use a top-1 query if more rows are needed.)"
	}
	return out
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(x)
	}
}

type QueryTool struct {
	driver  string
	dsn     string
	timeout time.Duration
}

func New(driver, dsn string, timeout time.Duration) *QueryTool {
	return &QueryTool{driver: driver, dsn: dsn, timeout: timeout}
}

// Run executes query verbatim on a fresh connection and reads the first row.
// The query is not validated.
func (t *QueryTool) Run(ctx context.Context, query string) (Result, error) {
	logger := log.FromCtx(ctx)

	if strings.TrimSpace(query) == "" {
		return Result{}, fmt.Errorf("%w: empty query", ErrQuery)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()

	db, err := sql.Open(t.driver, t.dsn)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return Result{}, classify(ctx, ErrConnection, err)
	}

	res, err := firstRow(ctx, db, query)
	if err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("sales query failed")
		return Result{}, err
	}

	logger.Debug().
		Str("query", query).
		Bool("found", res.Found).
		Bool("more", res.More).
		Dur("took", time.Since(start)).
		Msg("sales query done")

	return res, nil
}

func firstRow(ctx context.Context, db *sql.DB, query string) (Result, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Result{}, classify(ctx, ErrQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, classify(ctx, ErrQuery, err)
	}

	res := Result{Columns: cols}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Result{}, classify(ctx, ErrQuery, err)
		}
		return res, nil
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return Result{}, classify(ctx, ErrQuery, err)
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}

	res.Values = values
	res.Found = true
	res.More = rows.Next()

	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Result{}, classify(ctx, ErrQuery, err)
	}
	return res, nil
}
