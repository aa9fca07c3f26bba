// Package domain provides core domain models and types.
package domain

import "time"

// Position represents a fund holding inside a portfolio.
// Owned by the external portfolio store; read-only input for the engine.
type Position struct {
	FundCode     string  `json:"fund_code"`
	Name         string  `json:"name"`
	CurrentValue float64 `json:"current_value"`
}

// TargetAllocation represents one entry of the target-allocation model.
// Sector tags arrive already normalized by the target-model store.
type TargetAllocation struct {
	FundCode  string  `json:"fund_code"`
	SectorTag string  `json:"sector_tag"`
	IdealPct  float64 `json:"ideal_pct"`
}

// PriceInfo holds the current price and the configured ceiling price for a fund.
// CeilingPrice is nil when no ceiling is configured; that is a valid state,
// not an error.
type PriceInfo struct {
	FundCode     string   `json:"fund_code"`
	CurrentPrice float64  `json:"current_price"`
	CeilingPrice *float64 `json:"ceiling_price,omitempty"`
}

// DiscountStatus classifies a fund's price relative to its ceiling price
type DiscountStatus string

const (
	// DiscountStatusNoCeiling - no ceiling price configured (or ceiling <= 0)
	DiscountStatusNoCeiling DiscountStatus = "NO_CEILING"
	// DiscountStatusDiscounted - current price below ceiling
	DiscountStatusDiscounted DiscountStatus = "DISCOUNTED"
	// DiscountStatusNotDiscounted - current price at or above ceiling
	DiscountStatusNotDiscounted DiscountStatus = "NOT_DISCOUNTED"
)

// FundStatus is the investment decision for a fund in a single run.
// Statuses are recomputed from scratch on every invocation; there is no
// persisted state machine and no history-based transition.
type FundStatus string

const (
	FundStatusBuyNow          FundStatus = "BUY_NOW"
	FundStatusWaitForDiscount FundStatus = "WAIT_FOR_DISCOUNT"
	FundStatusDoNotInvest     FundStatus = "DO_NOT_INVEST"
)

// Strategy selects how the contribution budget is distributed.
type Strategy string

const (
	// StrategySequential fully funds the highest-priority gap before moving on
	StrategySequential Strategy = "SEQUENTIAL"
	// StrategyProportional splits the budget across all gaps pro rata
	StrategyProportional Strategy = "PROPORTIONAL"
)

// FundImbalance compares a fund's current portfolio weight against its target
// weight. Built fresh on every computation; never persisted.
type FundImbalance struct {
	FundCode   string  `json:"fund_code"`
	Name       string  `json:"name"`
	SectorTag  string  `json:"sector_tag"`
	CurrentPct float64 `json:"current_pct"`
	IdealPct   float64 `json:"ideal_pct"`
	// Imbalance is ideal minus current, in percentage points.
	// Positive = underweight, negative = overweight.
	Imbalance         float64 `json:"imbalance"`
	PriorityImbalance float64 `json:"priority_imbalance"`
	// InTargetModel is false for held funds absent from the target model.
	// They land in the same DO_NOT_INVEST bucket as overweight funds but
	// carry a different justification.
	InTargetModel bool `json:"in_target_model"`
}

// FundDiscount compares a fund's current price against its ceiling price.
type FundDiscount struct {
	FundCode         string         `json:"fund_code"`
	CurrentPrice     float64        `json:"current_price"`
	CeilingPrice     *float64       `json:"ceiling_price,omitempty"`
	DiscountPct      *float64       `json:"discount_pct,omitempty"`
	Status           DiscountStatus `json:"status"`
	PriorityDiscount float64        `json:"priority_discount"`
}

// PrioritizedFund merges imbalance and discount data with the final score,
// status and rank for one fund.
type PrioritizedFund struct {
	FundCode          string         `json:"fund_code"`
	Name              string         `json:"name"`
	SectorTag         string         `json:"sector_tag"`
	CurrentPct        float64        `json:"current_pct"`
	IdealPct          float64        `json:"ideal_pct"`
	Imbalance         float64        `json:"imbalance"`
	PriorityImbalance float64        `json:"priority_imbalance"`
	CurrentPrice      float64        `json:"current_price"`
	DiscountPct       *float64       `json:"discount_pct,omitempty"`
	DiscountStatus    DiscountStatus `json:"discount_status"`
	Score             float64        `json:"score"`
	Status            FundStatus     `json:"status"`
	// Rank is assigned only within BUY_NOW, contiguous starting at 1.
	Rank          int    `json:"rank,omitempty"`
	Justification string `json:"justification"`
}

// AllocationResult is one concrete purchase recommendation.
// Invariant: AmountToInvest == UnitsToBuy * unit price, no fractional units.
type AllocationResult struct {
	FundCode            string  `json:"fund_code"`
	Name                string  `json:"name"`
	Rank                int     `json:"rank"`
	AmountToInvest      float64 `json:"amount_to_invest"`
	UnitsToBuy          int64   `json:"units_to_buy"`
	UnitPrice           float64 `json:"unit_price"`
	PostContributionPct float64 `json:"post_contribution_pct"`
	IdealPct            float64 `json:"ideal_pct"`
}

// Summary aggregates the outcome of one allocation run.
type Summary struct {
	TotalInvested         float64  `json:"total_invested"`
	RecommendedFundsCount int      `json:"recommended_funds_count"`
	EquilibriumReached    bool     `json:"equilibrium_reached"`
	LeftoverAmount        *float64 `json:"leftover_amount,omitempty"`
}

// ConfigSnapshot echoes the exact parameters a recommendation was computed
// with, so the output is self-describing.
type ConfigSnapshot struct {
	WeightImbalance       float64  `json:"weight_imbalance"`
	WeightDiscount        float64  `json:"weight_discount"`
	Strategy              Strategy `json:"strategy"`
	ImbalanceTolerancePct float64  `json:"imbalance_tolerance_pct"`
	MaxFundsLimit         int      `json:"max_funds_limit"`
	ContributionAmount    float64  `json:"contribution_amount"`
}

// Recommendation is the complete output of one contribution-allocation run.
type Recommendation struct {
	ID               string             `json:"id"`
	Allocations      []AllocationResult `json:"allocations"`
	WaitingFunds     []PrioritizedFund  `json:"waiting_funds"`
	AboveTargetFunds []PrioritizedFund  `json:"above_target_funds"`
	Summary          Summary            `json:"summary"`
	Configuration    ConfigSnapshot     `json:"configuration"`
	GeneratedAt      time.Time          `json:"generated_at"`
	AlgorithmVersion string             `json:"algorithm_version"`
}
