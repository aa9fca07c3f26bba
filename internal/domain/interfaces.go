package domain

import "context"

// PositionSource supplies the current holdings of a portfolio.
// Implementations live outside the engine (database repository, broker
// adapter); the engine only reads.
type PositionSource interface {
	GetByPortfolio(ctx context.Context, portfolioID string) ([]Position, error)
}

// TargetSource supplies the target-allocation model for a portfolio.
// Sector-tag normalization (free-text labels, legacy aliases) is this
// collaborator's concern; the engine receives clean tags.
type TargetSource interface {
	GetModel(ctx context.Context, portfolioID string) ([]TargetAllocation, error)
}

// PriceResolver resolves price information for a single fund.
// A false return means the fund has no usable price data; callers degrade
// that fund locally instead of failing the batch.
type PriceResolver interface {
	Resolve(fundCode string) (PriceInfo, bool)
}
