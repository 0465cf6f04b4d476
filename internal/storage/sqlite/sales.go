package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/salesdash/internal/sales"
	"github.com/sandevgo/salesdash/pkg/log"
)

type SalesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// Replace swaps the whole table contents for ds in one transaction and
// remembers the modification time of the file ds was read from.
func (r *SalesRepository) Replace(ctx context.Context, ds *sales.Dataset, sourceModTime time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM SalesData`); err != nil {
		return 0, fmt.Errorf("failed to clear sales data: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO SalesData (
			Transaction_Id, Date, Time, Year, Month_Name, Day, Item_Code, Quantity_Sold_kilo,
			"Unit_Selling_Price_RMB/kg", Sale_or_Return, "Discount_Yes/No", Tota_Selling_Value, Item_Name,
			Item_Category, Month, Week_Day
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var n int
	for _, rec := range ds.Records() {
		discount := "No"
		if rec.Discount {
			discount = "Yes"
		}

		_, err := stmt.ExecContext(ctx,
			rec.ID.String(), rec.Date.Format("2006-01-02"), rec.Time, rec.Year, rec.Month.String(), rec.Day,
			rec.ItemCode, rec.Quantity.InexactFloat64(), rec.UnitPrice.InexactFloat64(), string(rec.Kind),
			discount, rec.TotalValue.InexactFloat64(), rec.ItemName, rec.Category, int(rec.Month), rec.WeekDay,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", rec.ID, err)
		}
		n++
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO SeedState (id, source_mod_time) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET source_mod_time = excluded.source_mod_time, seeded_at = CURRENT_TIMESTAMP`,
		sourceModTime.UnixNano(),
	); err != nil {
		return 0, fmt.Errorf("failed to record seed state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sales data: %w", err)
	}

	log.FromCtx(ctx).Info().Int("rows", n).Msg("sales data seeded")
	return n, nil
}

func (r *SalesRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM SalesData`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sales data: %w", err)
	}
	return n, nil
}

// IsCurrent reports whether the table holds rows records seeded from a file
// last modified at sourceModTime.
func (r *SalesRepository) IsCurrent(ctx context.Context, rows int, sourceModTime time.Time) (bool, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	if n != rows {
		return false, nil
	}

	var seeded int64
	err = r.db.QueryRowContext(ctx, `SELECT source_mod_time FROM SeedState WHERE id = 1`).Scan(&seeded)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read seed state: %w", err)
	}
	return seeded == sourceModTime.UnixNano(), nil
}
