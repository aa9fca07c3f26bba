package prices

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// Resolver adapts the price-reference repository to a per-fund lookup.
// Implements domain.PriceResolver. Any lookup failure returns false: the
// engine degrades that single fund instead of failing the batch.
type Resolver struct {
	repo *Repository
	log  zerolog.Logger
}

// NewResolver creates a new price resolver
func NewResolver(repo *Repository, log zerolog.Logger) *Resolver {
	return &Resolver{
		repo: repo,
		log:  log.With().Str("service", "price_resolver").Logger(),
	}
}

// Resolve returns price info for a fund, false when unavailable
func (r *Resolver) Resolve(fundCode string) (domain.PriceInfo, bool) {
	info, err := r.repo.Get(context.Background(), fundCode)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.log.Warn().Err(err).Str("fund", fundCode).Msg("Price lookup failed")
		}
		return domain.PriceInfo{}, false
	}
	return info, true
}
