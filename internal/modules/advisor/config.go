// Package advisor orchestrates the contribution recommendation pipeline:
// imbalance and discount calculation, prioritization and budget allocation.
package advisor

import (
	"fmt"

	"github.com/rcastro/fundwise/internal/domain"
)

// Config holds the parameters of one recommendation run. Explicit, validated
// fields only; there is deliberately no free-form option bag.
type Config struct {
	// WeightImbalance and WeightDiscount are expressed 0-100 and
	// conventionally sum to 100 (not enforced).
	WeightImbalance float64 `json:"weight_imbalance"`
	WeightDiscount  float64 `json:"weight_discount"`
	// MaxFundsLimit caps how many BUY_NOW funds enter the allocation pass.
	// 0 = unlimited.
	MaxFundsLimit int `json:"max_funds_limit"`
	// SequentialAllocation selects the sequential strategy; false selects
	// proportional.
	SequentialAllocation  bool    `json:"sequential_allocation"`
	ImbalanceTolerancePct float64 `json:"imbalance_tolerance_pct"`
}

// Validate range-checks every field.
func (c Config) Validate() error {
	if c.WeightImbalance < 0 || c.WeightImbalance > 100 {
		return fmt.Errorf("%w: weight_imbalance %.2f outside [0, 100]", ErrInvalidConfig, c.WeightImbalance)
	}
	if c.WeightDiscount < 0 || c.WeightDiscount > 100 {
		return fmt.Errorf("%w: weight_discount %.2f outside [0, 100]", ErrInvalidConfig, c.WeightDiscount)
	}
	if c.WeightImbalance == 0 && c.WeightDiscount == 0 {
		return ErrNoWeights
	}
	if c.ImbalanceTolerancePct < 0 {
		return fmt.Errorf("%w: imbalance_tolerance_pct %.2f must be >= 0", ErrInvalidConfig, c.ImbalanceTolerancePct)
	}
	if c.MaxFundsLimit < 0 {
		return fmt.Errorf("%w: max_funds_limit %d must be >= 0", ErrInvalidConfig, c.MaxFundsLimit)
	}
	return nil
}

// Strategy maps the boolean flag to the closed strategy enumeration.
func (c Config) Strategy() domain.Strategy {
	if c.SequentialAllocation {
		return domain.StrategySequential
	}
	return domain.StrategyProportional
}
