package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/dbx"
	"github.com/shopspring/decimal"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Record(ctx context.Context, s models.NetWorthSnapshot, src Source) error {
	day := models.Day(s.AsOf()).Format(models.DateLayout)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (day, as_of, total_assets, total_liabilities, stocks, crypto, real_estate, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			as_of = excluded.as_of,
			total_assets = excluded.total_assets,
			total_liabilities = excluded.total_liabilities,
			stocks = excluded.stocks,
			crypto = excluded.crypto,
			real_estate = excluded.real_estate,
			source = excluded.source
	`, day, s.AsOf().UTC().Format(time.RFC3339Nano),
		s.TotalAssets(), s.TotalLiabilities(),
		s.Amount(models.CategoryStocks), s.Amount(models.CategoryCrypto), s.Amount(models.CategoryRealEstate),
		string(src))
	if err != nil {
		return fmt.Errorf("failed to record snapshot[%s]: %w", day, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, from, to time.Time) ([]models.HistoryPoint, error) {
	var lo, hi string
	if !from.IsZero() {
		lo = models.Day(from).Format(models.DateLayout)
	}
	if !to.IsZero() {
		hi = models.Day(to).Format(models.DateLayout)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT day, total_assets, total_liabilities
		FROM snapshots
		WHERE (? = '' OR day >= ?) AND (? = '' OR day <= ?)
		ORDER BY day
	`, lo, lo, hi, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryPoint
	for rows.Next() {
		var day string
		var assets, liabilities decimal.Decimal
		if err := rows.Scan(&day, &assets, &liabilities); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		d, err := models.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		out = append(out, models.HistoryPoint{
			Date:        d,
			NetWorth:    assets.Sub(liabilities),
			Assets:      assets,
			Liabilities: liabilities,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Latest(ctx context.Context) (models.NetWorthSnapshot, bool, error) {
	var asOf string
	var liabilities, stocks, crypto, realEstate decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT as_of, total_liabilities, stocks, crypto, real_estate
		FROM snapshots ORDER BY day DESC LIMIT 1
	`).Scan(&asOf, &liabilities, &stocks, &crypto, &realEstate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NetWorthSnapshot{}, false, nil
	}
	if err != nil {
		return models.NetWorthSnapshot{}, false, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	at, err := models.ParseTimestamp(asOf)
	if err != nil {
		return models.NetWorthSnapshot{}, false, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return models.NewNetWorthSnapshot(at, map[models.Category]decimal.Decimal{
		models.CategoryStocks:      stocks,
		models.CategoryCrypto:      crypto,
		models.CategoryRealEstate:  realEstate,
		models.CategoryLiabilities: liabilities,
	}), true, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
