// Package prices provides the price reference: current prices and configured
// ceiling prices per fund.
package prices

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// Repository handles price-reference database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new price-reference repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "prices").Logger(),
	}
}

// Get returns the price info for one fund. sql.ErrNoRows surfaces as-is so
// the resolver can distinguish "not found" from real failures.
func (r *Repository) Get(ctx context.Context, fundCode string) (domain.PriceInfo, error) {
	query := "SELECT fund_code, current_price, ceiling_price FROM price_reference WHERE fund_code = ?"

	var info domain.PriceInfo
	var ceiling sql.NullFloat64

	err := r.db.QueryRowContext(ctx, query, fundCode).Scan(&info.FundCode, &info.CurrentPrice, &ceiling)
	if err != nil {
		return domain.PriceInfo{}, err
	}

	if ceiling.Valid {
		value := ceiling.Float64
		info.CeilingPrice = &value
	}
	return info, nil
}

// Upsert inserts or replaces the price reference for a fund.
// Pass a nil ceiling to clear a configured ceiling price.
func (r *Repository) Upsert(ctx context.Context, info domain.PriceInfo) error {
	query := `
		INSERT INTO price_reference (fund_code, current_price, ceiling_price, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fund_code) DO UPDATE SET
			current_price = excluded.current_price,
			ceiling_price = excluded.ceiling_price,
			updated_at = excluded.updated_at`

	var ceiling interface{}
	if info.CeilingPrice != nil {
		ceiling = *info.CeilingPrice
	}

	_, err := r.db.ExecContext(ctx, query, info.FundCode, info.CurrentPrice, ceiling, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert price reference %s: %w", info.FundCode, err)
	}
	return nil
}
