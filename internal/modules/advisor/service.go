package advisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rcastro/fundwise/internal/modules/allocation"
	"github.com/rcastro/fundwise/internal/modules/discount"
	"github.com/rcastro/fundwise/internal/modules/imbalance"
	"github.com/rcastro/fundwise/internal/modules/prioritization"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// Service runs the full recommendation pipeline for a portfolio.
// The computation itself is pure and stateless: every call rebuilds all
// derived records from the inputs, so concurrent calls need no locking.
type Service struct {
	positions   domain.PositionSource
	targets     domain.TargetSource
	prices      domain.PriceResolver
	imbalance   *imbalance.Calculator
	discount    *discount.Calculator
	prioritizer *prioritization.Engine
	allocator   *allocation.Engine
	log         zerolog.Logger

	// Injectable for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewService creates a new advisor service.
func NewService(
	positions domain.PositionSource,
	targets domain.TargetSource,
	prices domain.PriceResolver,
	log zerolog.Logger,
) *Service {
	return &Service{
		positions:   positions,
		targets:     targets,
		prices:      prices,
		imbalance:   imbalance.NewCalculator(log),
		discount:    discount.NewCalculator(log),
		prioritizer: prioritization.NewEngine(log),
		allocator:   allocation.NewEngine(log),
		log:         log.With().Str("service", "advisor").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Recommend computes a complete contribution recommendation.
// Configuration problems (no target model, no weights, bad budget) surface as
// typed errors; missing price data for individual funds degrades locally and
// never aborts the run.
func (s *Service) Recommend(
	ctx context.Context,
	portfolioID string,
	amount float64,
	cfg Config,
) (*domain.Recommendation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, allocation.ErrInvalidBudget
	}

	positions, targets, err := s.fetchInputs(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrNoTargetModel
	}

	values := make([]float64, len(positions))
	positionValues := make(map[string]float64, len(positions))
	for i, pos := range positions {
		values[i] = pos.CurrentValue
		positionValues[pos.FundCode] = pos.CurrentValue
	}
	totalValue := floats.Sum(values)

	imbalances := s.imbalance.Calculate(positions, targets, totalValue)

	codes := make([]string, len(imbalances))
	for i, rec := range imbalances {
		codes[i] = rec.FundCode
	}
	discounts := s.discount.Calculate(codes, s.prices)

	prioritized := s.prioritizer.Prioritize(imbalances, discounts, cfg.WeightImbalance, cfg.WeightDiscount)
	prioritized = capBuyNow(prioritized, cfg.MaxFundsLimit)

	rec, err := s.allocator.Allocate(allocation.Request{
		ID:             s.newID(),
		Prioritized:    prioritized,
		PositionValues: positionValues,
		PortfolioTotal: totalValue,
		Budget:         amount,
		Strategy:       cfg.Strategy(),
		TolerancePct:   cfg.ImbalanceTolerancePct,
		Snapshot: domain.ConfigSnapshot{
			WeightImbalance:       cfg.WeightImbalance,
			WeightDiscount:        cfg.WeightDiscount,
			Strategy:              cfg.Strategy(),
			ImbalanceTolerancePct: cfg.ImbalanceTolerancePct,
			MaxFundsLimit:         cfg.MaxFundsLimit,
			ContributionAmount:    amount,
		},
		GeneratedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("portfolio", portfolioID).
		Str("recommendation", rec.ID).
		Float64("amount", amount).
		Int("allocations", len(rec.Allocations)).
		Msg("Recommendation generated")

	return rec, nil
}

// fetchInputs loads positions and the target model concurrently; the two
// sources have no dependency on each other.
func (s *Service) fetchInputs(ctx context.Context, portfolioID string) ([]domain.Position, []domain.TargetAllocation, error) {
	var (
		wg        sync.WaitGroup
		positions []domain.Position
		targets   []domain.TargetAllocation
		posErr    error
		tgtErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		positions, posErr = s.positions.GetByPortfolio(ctx, portfolioID)
	}()
	go func() {
		defer wg.Done()
		targets, tgtErr = s.targets.GetModel(ctx, portfolioID)
	}()
	wg.Wait()

	if posErr != nil {
		return nil, nil, fmt.Errorf("failed to load positions: %w", posErr)
	}
	if tgtErr != nil {
		return nil, nil, fmt.Errorf("failed to load target model: %w", tgtErr)
	}
	return positions, targets, nil
}

// capBuyNow drops BUY_NOW funds beyond the configured limit before the
// allocation pass. Waiting and do-not-invest funds always pass through.
func capBuyNow(prioritized []domain.PrioritizedFund, limit int) []domain.PrioritizedFund {
	if limit <= 0 {
		return prioritized
	}

	kept := make([]domain.PrioritizedFund, 0, len(prioritized))
	buyNow := 0
	for _, f := range prioritized {
		if f.Status == domain.FundStatusBuyNow {
			buyNow++
			if buyNow > limit {
				continue
			}
		}
		kept = append(kept, f)
	}
	return kept
}
