// Package targets provides access to the target-allocation model.
// Sector-tag normalization lives here: the decision engine only ever sees
// clean tags.
package targets

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// Repository handles target-allocation database operations.
// Implements domain.TargetSource.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new target-allocation repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "targets").Logger(),
	}
}

// GetModel returns the target-allocation model for a portfolio with sector
// tags already normalized. An empty result means no model is configured.
func (r *Repository) GetModel(ctx context.Context, portfolioID string) ([]domain.TargetAllocation, error) {
	query := "SELECT fund_code, sector_tag, ideal_pct FROM target_allocations WHERE portfolio_id = ? ORDER BY fund_code"

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query target allocations: %w", err)
	}
	defer rows.Close()

	var targets []domain.TargetAllocation
	for rows.Next() {
		var t domain.TargetAllocation
		if err := rows.Scan(&t.FundCode, &t.SectorTag, &t.IdealPct); err != nil {
			return nil, fmt.Errorf("failed to scan target allocation: %w", err)
		}
		t.SectorTag = NormalizeSector(t.SectorTag)
		targets = append(targets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating target allocations: %w", err)
	}

	return targets, nil
}

// Upsert inserts or replaces one target-model entry
func (r *Repository) Upsert(ctx context.Context, portfolioID string, target domain.TargetAllocation) error {
	query := `
		INSERT INTO target_allocations (portfolio_id, fund_code, sector_tag, ideal_pct, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id, fund_code) DO UPDATE SET
			sector_tag = excluded.sector_tag,
			ideal_pct = excluded.ideal_pct,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, portfolioID, target.FundCode, target.SectorTag, target.IdealPct, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert target allocation %s: %w", target.FundCode, err)
	}
	return nil
}
