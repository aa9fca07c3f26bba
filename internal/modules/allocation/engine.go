// Package allocation distributes a contribution budget across prioritized
// funds under whole-unit purchase rounding.
package allocation

import (
	"errors"
	"math"
	"time"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// AlgorithmVersion tags every recommendation with the allocation algorithm
// revision that produced it.
const AlgorithmVersion = "2.1.0"

// ErrInvalidBudget is returned when the contribution budget is zero or
// negative.
var ErrInvalidBudget = errors.New("contribution budget must be positive")

// Request carries everything one allocation run needs. All fields are
// read-only inputs; the engine holds no state between runs.
type Request struct {
	ID             string
	Prioritized    []domain.PrioritizedFund
	PositionValues map[string]float64 // fund code -> current value held
	PortfolioTotal float64
	Budget         float64
	Strategy       domain.Strategy
	TolerancePct   float64
	Snapshot       domain.ConfigSnapshot
	GeneratedAt    time.Time
}

// Engine runs budget-constrained allocation passes.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new allocation engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("engine", "allocation").Logger(),
	}
}

// Allocate distributes the contribution budget across the BUY_NOW funds and
// assembles the final recommendation. Only BUY_NOW funds receive money;
// waiting and above-target funds pass through untouched for reporting.
func (e *Engine) Allocate(req Request) (*domain.Recommendation, error) {
	if req.Budget <= 0 {
		return nil, ErrInvalidBudget
	}

	var buyNow, waiting, aboveTarget []domain.PrioritizedFund
	for _, f := range req.Prioritized {
		switch f.Status {
		case domain.FundStatusBuyNow:
			buyNow = append(buyNow, f)
		case domain.FundStatusWaitForDiscount:
			waiting = append(waiting, f)
		default:
			aboveTarget = append(aboveTarget, f)
		}
	}

	// Gaps are measured against the projected total, so a full contribution
	// can close them without overshooting.
	projectedTotal := req.PortfolioTotal + req.Budget
	gaps := make([]float64, len(buyNow))
	for i, f := range buyNow {
		idealValue := f.IdealPct / 100 * projectedTotal
		gaps[i] = math.Max(0, idealValue-req.PositionValues[f.FundCode])
	}

	var allocations []domain.AllocationResult
	var remaining float64

	switch req.Strategy {
	case domain.StrategyProportional:
		allocations, remaining = e.allocateProportional(buyNow, gaps, req, projectedTotal)
	default:
		allocations, remaining = e.allocateSequential(buyNow, gaps, req, projectedTotal)
	}

	invested := make([]float64, len(allocations))
	for i, a := range allocations {
		invested[i] = a.AmountToInvest
	}
	totalInvested := floats.Sum(invested)

	equilibrium := true
	for _, a := range allocations {
		if math.Abs(a.PostContributionPct-a.IdealPct) > req.TolerancePct {
			equilibrium = false
			break
		}
	}

	summary := domain.Summary{
		TotalInvested:         totalInvested,
		RecommendedFundsCount: len(allocations),
		EquilibriumReached:    equilibrium,
	}
	if remaining > 0 {
		leftover := remaining
		summary.LeftoverAmount = &leftover
	}

	e.log.Info().
		Float64("budget", req.Budget).
		Float64("total_invested", totalInvested).
		Int("allocations", len(allocations)).
		Float64("leftover", remaining).
		Str("strategy", string(req.Strategy)).
		Msg("Allocation pass complete")

	return &domain.Recommendation{
		ID:               req.ID,
		Allocations:      allocations,
		WaitingFunds:     waiting,
		AboveTargetFunds: aboveTarget,
		Summary:          summary,
		Configuration:    req.Snapshot,
		GeneratedAt:      req.GeneratedAt,
		AlgorithmVersion: AlgorithmVersion,
	}, nil
}

// allocateSequential funds gaps strictly in rank order. The loop stops only
// when the budget is exhausted: a fund whose amount rounds down to zero units
// is skipped without consuming budget and the next fund is still considered.
func (e *Engine) allocateSequential(
	buyNow []domain.PrioritizedFund,
	gaps []float64,
	req Request,
	projectedTotal float64,
) ([]domain.AllocationResult, float64) {
	var results []domain.AllocationResult
	remaining := req.Budget

	for i, fund := range buyNow {
		if remaining <= 0 {
			break
		}

		amount := math.Min(gaps[i], remaining)
		result, ok := buildResult(fund, amount, req.PositionValues[fund.FundCode], projectedTotal)
		if !ok {
			continue
		}

		results = append(results, result)
		remaining -= result.AmountToInvest
	}

	return results, remaining
}

// allocateProportional splits the budget across all gaps pro rata in a single
// pass, clamping each slice to the fund's gap and to the remaining budget.
func (e *Engine) allocateProportional(
	buyNow []domain.PrioritizedFund,
	gaps []float64,
	req Request,
	projectedTotal float64,
) ([]domain.AllocationResult, float64) {
	var results []domain.AllocationResult
	remaining := req.Budget
	sumOfGaps := floats.Sum(gaps)

	for i, fund := range buyNow {
		var share float64
		if sumOfGaps > 0 {
			share = gaps[i] / sumOfGaps
		}

		amount := math.Min(req.Budget*share, math.Min(gaps[i], remaining))
		result, ok := buildResult(fund, amount, req.PositionValues[fund.FundCode], projectedTotal)
		if !ok {
			continue
		}

		results = append(results, result)
		remaining -= result.AmountToInvest
	}

	return results, remaining
}

// buildResult rounds an amount down to whole units at the fund's current
// price. Returns false when nothing can be bought, in which case the caller
// must leave the budget untouched.
func buildResult(
	fund domain.PrioritizedFund,
	amount float64,
	currentValue float64,
	projectedTotal float64,
) (domain.AllocationResult, bool) {
	if amount <= 0 || fund.CurrentPrice <= 0 {
		return domain.AllocationResult{}, false
	}

	units := int64(math.Floor(amount / fund.CurrentPrice))
	if units == 0 {
		return domain.AllocationResult{}, false
	}

	actual := float64(units) * fund.CurrentPrice

	var postPct float64
	if projectedTotal > 0 {
		postPct = (currentValue + actual) / projectedTotal * 100
	}

	return domain.AllocationResult{
		FundCode:            fund.FundCode,
		Name:                fund.Name,
		Rank:                fund.Rank,
		AmountToInvest:      actual,
		UnitsToBuy:          units,
		UnitPrice:           fund.CurrentPrice,
		PostContributionPct: postPct,
		IdealPct:            fund.IdealPct,
	}, true
}
