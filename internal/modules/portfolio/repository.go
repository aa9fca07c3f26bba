// Package portfolio provides access to stored fund positions.
package portfolio

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// PositionRepository handles position database operations.
// Implements domain.PositionSource.
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "portfolio").Logger(),
	}
}

// GetByPortfolio returns all positions held in a portfolio
func (r *PositionRepository) GetByPortfolio(ctx context.Context, portfolioID string) ([]domain.Position, error) {
	query := "SELECT fund_code, name, current_value FROM positions WHERE portfolio_id = ? ORDER BY fund_code"

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		var pos domain.Position
		if err := rows.Scan(&pos.FundCode, &pos.Name, &pos.CurrentValue); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Upsert inserts or replaces a position
func (r *PositionRepository) Upsert(ctx context.Context, portfolioID string, pos domain.Position) error {
	query := `
		INSERT INTO positions (portfolio_id, fund_code, name, current_value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id, fund_code) DO UPDATE SET
			name = excluded.name,
			current_value = excluded.current_value,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, portfolioID, pos.FundCode, pos.Name, pos.CurrentValue, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert position %s: %w", pos.FundCode, err)
	}
	return nil
}

// Delete removes a position from a portfolio
func (r *PositionRepository) Delete(ctx context.Context, portfolioID, fundCode string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM positions WHERE portfolio_id = ? AND fund_code = ?",
		portfolioID, fundCode,
	)
	if err != nil {
		return fmt.Errorf("failed to delete position %s: %w", fundCode, err)
	}
	return nil
}
